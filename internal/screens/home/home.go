// Package home is the dashboard and main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/dashboard"
	qz "github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/screens/history"
	quizscreen "github.com/abhisek/prepiz/internal/screens/quiz"
	settingsscreen "github.com/abhisek/prepiz/internal/screens/settings"
	"github.com/abhisek/prepiz/internal/screens/setup"
	syllabusscreen "github.com/abhisek/prepiz/internal/screens/syllabus"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/layout"
)

// SummaryLoader computes the dashboard. dashboard.Aggregator implements it.
type SummaryLoader interface {
	Summary(ctx context.Context) (*dashboard.Summary, error)
}

// Deps are the services reachable from the home screen. A nil dependency
// disables its menu entry.
type Deps struct {
	Dashboard    SummaryLoader
	Catalog      setup.Catalog
	Runner       quizscreen.Runner
	Syllabus     syllabusscreen.Tracker
	Attempts     history.Lister
	Preferences  settingsscreen.Preferences
	QuizDefaults qz.Config
}

type summaryMsg struct {
	summary *dashboard.Summary
	err     error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps    Deps
	menu    components.Menu
	labels  []string
	summary *dashboard.Summary
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	items := []components.MenuItem{
		{Label: "START TEST", Disabled: deps.Catalog == nil || deps.Runner == nil, Action: func() tea.Cmd {
			return router.PushCmd(setup.New(deps.Catalog, deps.Runner, deps.QuizDefaults))
		}},
		{Label: "SYLLABUS", Disabled: deps.Syllabus == nil, Action: func() tea.Cmd {
			return router.PushCmd(syllabusscreen.New(deps.Syllabus))
		}},
		{Label: "HISTORY", Disabled: deps.Attempts == nil, Action: func() tea.Cmd {
			return router.PushCmd(history.New(deps.Attempts))
		}},
		{Label: "SETTINGS", Disabled: deps.Preferences == nil, Action: func() tea.Cmd {
			return router.PushCmd(settingsscreen.New(deps.Preferences))
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	for _, it := range items {
		h.labels = append(h.labels, it.Label)
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Refresh reloads the dashboard when the screen becomes active again.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	if h.deps.Dashboard == nil {
		return nil
	}
	loader := h.deps.Dashboard
	return func() tea.Msg {
		s, err := loader.Summary(context.Background())
		return summaryMsg{summary: s, err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		h.loaded = true
		if msg.err != nil {
			h.errMsg = "Could not load your progress: " + msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.summary = msg.summary
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer.
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)

	summary := h.summary
	if summary == nil {
		summary = &dashboard.Summary{}
	}

	disabled := make(map[int]bool)
	for i, it := range h.menu.Items {
		disabled[i] = it.Disabled
	}

	if compact {
		cw := min(max(width-6, 20), 60)
		sections := []string{
			renderTitle(cw, true),
			renderStatsBar(summary, cw, true),
			renderMenuCompact(h.labels, h.menu.Selected, cw, disabled),
		}
		if note := h.note(cw); note != "" {
			sections = append(sections, note)
		}
		return renderFrame(strings.Join(sections, "\n\n"), width, height)
	}

	side := 30
	wide := min(width-side-10, 70)

	left := []string{
		renderMascotBox(moodOf(summary), side),
		renderMenu(h.labels, h.menu.Selected, side, disabled),
	}
	right := []string{
		renderStatsBar(summary, wide, false),
		renderSubjects(summary.Subjects, wide),
		renderTests(summary, wide),
		renderUpcoming(summary.Upcoming, wide),
		renderActivity(summary.Activity, wide),
	}
	if note := h.note(wide); note != "" {
		right = append([]string{note}, right...)
	}

	body := joinColumns(strings.Join(left, "\n\n"), strings.Join(right, "\n"), 4)
	content := renderTitle(side+wide+4, false) + "\n\n" + body
	return renderFrame(content, width, height)
}

func (h *HomeScreen) note(cw int) string {
	switch {
	case h.errMsg != "":
		return renderWarning(h.errMsg, cw)
	case !h.loaded && h.deps.Dashboard != nil:
		return renderDim("Loading your progress…", cw)
	}
	return ""
}
