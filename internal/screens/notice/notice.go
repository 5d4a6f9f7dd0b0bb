// Package notice shows a centred message, used for empty states and
// errors that end a flow.
package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// Kind selects the colour of the heading.
type Kind int

const (
	Info Kind = iota
	Warning
	Failure
)

// NoticeScreen is a message with a heading. Any of Enter, Esc or q goes back.
type NoticeScreen struct {
	title   string
	heading string
	body    string
	kind    Kind
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a NoticeScreen.
func New(title, heading, body string, kind Kind) *NoticeScreen {
	return &NoticeScreen{title: title, heading: heading, body: body, kind: kind}
}

// NoContent is shown when a quiz scope has no questions.
func NoContent(scope string) *NoticeScreen {
	return New("Test", "No questions available",
		"There are no questions for "+scope+" yet.\nPick another subject, unit or paper.", Info)
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return n, router.PopCmd
		}
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	color := theme.Primary
	switch n.kind {
	case Warning:
		color = theme.Warning
	case Failure:
		color = theme.Error
	}
	heading := lipgloss.NewStyle().Foreground(color).Bold(true).Render(n.heading)
	body := lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(n.body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, heading, "", body))
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
}
