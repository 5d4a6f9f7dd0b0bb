package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/ui/layout"
)

// StatusFunc loads the header status. It runs off the UI loop.
type StatusFunc func(ctx context.Context) (layout.Status, error)

type statusMsg struct {
	status layout.Status
	err    error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	inits      []tea.Cmd
	loadStatus StatusFunc
	status     layout.Status
	logger     *zap.Logger
	width      int
	height     int
}

// NewAppModel creates an AppModel rooted at root with the start screens
// pushed on top of it. loadStatus may be nil.
func NewAppModel(root screen.Screen, loadStatus StatusFunc, logger *zap.Logger, start ...screen.Screen) AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := router.New(root)
	inits := []tea.Cmd{root.Init()}
	for _, s := range start {
		inits = append(inits, r.Push(s))
	}
	return AppModel{
		router:     r,
		inits:      inits,
		loadStatus: loadStatus,
		logger:     logger.Named("tui"),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(append(m.inits, m.refreshStatus())...)
}

func (m AppModel) refreshStatus() tea.Cmd {
	if m.loadStatus == nil {
		return nil
	}
	load := m.loadStatus
	return func() tea.Msg {
		st, err := load(context.Background())
		return statusMsg{status: st, err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.logger.Warn("load header status", zap.Error(msg.err))
			return m, nil
		}
		m.status = msg.status
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.PopCmd
			}
			return m, nil
		}

	case router.PopScreenMsg, router.PopToRootMsg, router.ReplaceScreenMsg:
		// Attempts, streak and username may have changed underneath.
		return m, tea.Batch(m.router.Update(msg), m.refreshStatus())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(root screen.Screen, loadStatus StatusFunc, logger *zap.Logger, start ...screen.Screen) error {
	p := tea.NewProgram(NewAppModel(root, loadStatus, logger, start...))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
