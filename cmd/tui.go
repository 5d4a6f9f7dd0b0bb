package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/prepiz/internal/app"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/screens/home"
	"github.com/abhisek/prepiz/internal/screens/welcome"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive dashboard (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp builds dependencies and launches the TUI. Without start screens it
// opens on the welcome splash; otherwise home sits under the start screens.
func runApp(cmd *cobra.Command, start ...func(d *deps) screen.Screen) error {
	d, err := buildDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := context.Background()
	pref, err := d.settings.Theme(ctx)
	if err != nil {
		d.logger.Warn("load theme preference", zap.Error(err))
	}
	theme.Apply(string(pref))

	newHome := func() screen.Screen {
		return home.New(home.Deps{
			Dashboard:    d.dashboard,
			Catalog:      d.bank,
			Runner:       d.practice,
			Syllabus:     d.syllabus,
			Attempts:     d.store.Attempts(),
			Preferences:  d.settings,
			QuizDefaults: d.quizDefaults(),
		})
	}

	if len(start) > 0 {
		screens := make([]screen.Screen, len(start))
		for i, f := range start {
			screens[i] = f(d)
		}
		return app.Run(newHome(), d.status, d.logger, screens...)
	}

	name, err := d.settings.Username(ctx)
	if err != nil {
		d.logger.Warn("load username", zap.Error(err))
	}
	return app.Run(welcome.New(newHome, name), d.status, d.logger)
}

// status feeds the header: username and current streak.
func (d *deps) status(ctx context.Context) (layout.Status, error) {
	name, err := d.settings.Username(ctx)
	if err != nil {
		return layout.Status{}, err
	}
	streak, err := d.usage.Streak(ctx)
	if err != nil {
		return layout.Status{}, err
	}
	return layout.Status{Username: name, Streak: streak}, nil
}
