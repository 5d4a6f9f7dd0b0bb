package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/prepiz/assets"
	"github.com/abhisek/prepiz/internal/config"
	"github.com/abhisek/prepiz/internal/dashboard"
	"github.com/abhisek/prepiz/internal/logging"
	"github.com/abhisek/prepiz/internal/practice"
	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/settings"
	"github.com/abhisek/prepiz/internal/store"
	"github.com/abhisek/prepiz/internal/syllabus"
	"github.com/abhisek/prepiz/internal/usage"
)

// deps is everything a command can reach, built once per invocation.
type deps struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *store.Store
	assets    fs.FS
	bank      *questionbank.Loader
	syllabus  *syllabus.Tracker
	usage     *usage.Tracker
	settings  *settings.Service
	practice  *practice.Service
	dashboard *dashboard.Aggregator
}

// buildDeps loads config, opens the store and wires the services. The TUI
// owns the terminal, so only non-interactive commands log to stderr.
func buildDeps(cmd *cobra.Command, interactive bool) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("assets"); p != "" {
		cfg.AssetsDir = p
	}

	opts := logging.Options{}
	if !interactive {
		opts.Console = cmd.ErrOrStderr()
	}
	logger, err := logging.New(cfg.Log, opts)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{cfg: cfg, logger: logger, store: st}
	if err := d.wire(ctx); err != nil {
		d.Close()
		return nil, err
	}
	logger.Debug("dependencies ready", zap.String("db", dbPath), zap.String("assets", cfg.AssetsDir))
	return d, nil
}

func (d *deps) wire(ctx context.Context) error {
	d.assets = assets.FS
	if d.cfg.AssetsDir != "" {
		d.assets = os.DirFS(d.cfg.AssetsDir)
	}

	activity := d.store.Activity()
	d.bank = questionbank.NewLoader(d.assets, d.logger)

	subjects, err := syllabus.Load(d.assets, syllabus.DefaultPath)
	if err != nil {
		d.logger.Warn("load syllabus", zap.String("file", syllabus.DefaultPath), zap.Error(err))
		subjects = nil
	}
	d.syllabus = syllabus.NewTracker(subjects, d.store.Tracking(), activity, d.logger)
	if err := d.syllabus.Sync(ctx); err != nil {
		return fmt.Errorf("sync syllabus: %w", err)
	}

	d.usage = usage.NewTracker(d.store.Usage())
	d.settings = settings.NewService(d.store.Preferences(), activity, d.logger)
	d.practice = practice.NewService(d.bank, d.store.Attempts(), d.usage, activity, d.logger)
	d.dashboard = dashboard.New(d.store.Attempts(), d.store.Tracking(), activity, d.usage, dashboard.Config{
		RecentLimit:   d.cfg.Dashboard.RecentLimit,
		WeakLimit:     d.cfg.Dashboard.WeakLimit,
		WeakThreshold: d.cfg.Quiz.WeakThreshold,
		UpcomingLimit: d.cfg.Dashboard.UpcomingLimit,
		ActivityLimit: d.cfg.Dashboard.ActivityLimit,
	})
	return nil
}

// quizDefaults is the configured question count and time budget.
func (d *deps) quizDefaults() quiz.Config {
	return quiz.Config{QuestionCount: d.cfg.Quiz.QuestionCount, Duration: d.cfg.Quiz.Duration}
}

// Close flushes the logger and closes the store.
func (d *deps) Close() error {
	_ = d.logger.Sync()
	return d.store.Close()
}

// resolveDBPath returns the configured path, creating its directory, or
// the default XDG path.
func resolveDBPath(configured string) (string, error) {
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
