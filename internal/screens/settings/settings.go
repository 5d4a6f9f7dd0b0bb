// Package settings edits the username and colour theme.
package settings

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/screen"
	prefs "github.com/abhisek/prepiz/internal/settings"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// Preferences is the settings store the screen edits.
type Preferences interface {
	Username(ctx context.Context) (string, error)
	SetUsername(ctx context.Context, name string) error
	Theme(ctx context.Context) (prefs.Theme, error)
	SetTheme(ctx context.Context, t prefs.Theme) error
}

var themes = []prefs.Theme{prefs.ThemeSystem, prefs.ThemeLight, prefs.ThemeDark}

const (
	fieldUsername = iota
	fieldTheme
	fieldCount
)

type loadedMsg struct {
	username string
	theme    prefs.Theme
	err      error
}

type savedMsg struct {
	field int
	err   error
}

// SettingsScreen has two fields: a username input and a theme switch.
type SettingsScreen struct {
	prefs   Preferences
	input   components.TextInput
	theme   prefs.Theme
	focus   int
	loaded  bool
	themeOK bool
	errMsg  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen.
func New(p Preferences) *SettingsScreen {
	return &SettingsScreen{
		prefs: p,
		input: components.NewTextInput(prefs.DefaultUsername, "", 40),
		theme: prefs.ThemeSystem,
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	p := s.prefs
	return tea.Batch(s.input.Init(), func() tea.Msg {
		ctx := context.Background()
		name, err := p.Username(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		t, err := p.Theme(ctx)
		return loadedMsg{username: name, theme: t, err: err}
	})
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.focus == fieldTheme {
		return []layout.KeyHint{
			{Key: "←→", Description: "Change theme"},
			{Key: "Tab", Description: "Next field"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save name"},
		{Key: "Tab", Description: "Next field"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.input.Model.SetValue(msg.username)
		s.theme = msg.theme
		return s, nil

	case savedMsg:
		switch {
		case msg.field == fieldUsername && msg.err != nil:
			s.input.Reject(msg.err.Error())
		case msg.field == fieldUsername:
			s.input.Accept()
		case msg.err != nil:
			s.errMsg = msg.err.Error()
		default:
			s.themeOK = true
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			s.focus = (s.focus + 1) % fieldCount
			if s.focus == fieldUsername {
				return s, s.input.Model.Focus()
			}
			s.input.Model.Blur()
			return s, nil
		}

		if s.focus == fieldTheme {
			switch msg.String() {
			case "left", "h":
				return s, s.cycleTheme(-1)
			case "right", "l", "enter", "space", " ":
				return s, s.cycleTheme(1)
			}
			return s, nil
		}

		if msg.String() == "enter" {
			return s, s.saveUsername()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) saveUsername() tea.Cmd {
	name := strings.TrimSpace(s.input.Value())
	p := s.prefs
	return func() tea.Msg {
		return savedMsg{field: fieldUsername, err: p.SetUsername(context.Background(), name)}
	}
}

// cycleTheme moves to the neighbouring theme, applies it at once and
// stores it in the background.
func (s *SettingsScreen) cycleTheme(step int) tea.Cmd {
	i := 0
	for j, t := range themes {
		if t == s.theme {
			i = j
		}
	}
	s.theme = themes[(i+step+len(themes))%len(themes)]
	s.themeOK = false
	theme.Apply(string(s.theme))

	t, p := s.theme, s.prefs
	return func() tea.Msg {
		return savedMsg{field: fieldTheme, err: p.SetTheme(context.Background(), t)}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading settings...")
	}
	cw := min(components.ContentWidth(width), 60)

	label := func(text string, focused bool) string {
		st := lipgloss.NewStyle().Foreground(theme.TextDim)
		if focused {
			st = st.Foreground(theme.Primary).Bold(true)
		}
		return st.Render(text)
	}

	var b strings.Builder
	b.WriteString(label("Name", s.focus == fieldUsername))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString(label("Theme", s.focus == fieldTheme))
	b.WriteString("\n")

	var opts []string
	for _, t := range themes {
		name := strings.ToUpper(string(t[:1])) + string(t[1:])
		if t == s.theme {
			opts = append(opts, theme.Selected.Render("● "+name))
		} else {
			opts = append(opts, lipgloss.NewStyle().Foreground(theme.TextDim).Render("○ "+name))
		}
	}
	b.WriteString(strings.Join(opts, "   "))
	if s.themeOK {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓ saved"))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card("Preferences", b.String(), cw))
}
