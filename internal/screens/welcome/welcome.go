// Package welcome is the splash screen shown when the TUI starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 300 * time.Millisecond
	phase2End    = 900 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const owlArt = `  ╭─────────────╮
  │    ,___,    │
  │    (O,O)    │
  │    /)_)     │
  │  ───""───   │
  │  ▤ GS I-IV  │
  ╰─────────────╯`

// sparkle frames cycle around the owl
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before moving on to the home
// screen. Any key skips it.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	greeting     string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced
// by homeFactory. username, when set, is greeted under the tagline.
func New(homeFactory func() screen.Screen, username string) *WelcomeScreen {
	w := &WelcomeScreen{homeFactory: homeFactory}
	if username != "" {
		w.greeting = "Welcome back, " + username + "."
	}
	return w
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.ReplaceCmd(w.homeFactory())
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(owlArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for i, pair := range map[int][2]string{0: {s1, s2}, 3: {s2, s1}, 6: {s1, s2}} {
			if i < len(lines) {
				lines[i] = pair[0] + "  " + lines[i] + "  " + pair[1]
			}
		}
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(Tagline))
		if w.greeting != "" {
			sections = append(sections, lipgloss.NewStyle().Foreground(theme.Secondary).Render(w.greeting))
		}
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
