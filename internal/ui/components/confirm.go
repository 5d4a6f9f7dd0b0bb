package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/ui/theme"
)

// ConfirmResult is the outcome of a key press on a Confirm dialog.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// Confirm is a yes/no dialog. Y and N answer directly, left/right move
// between the buttons and Enter picks the focused one. Esc means no.
type Confirm struct {
	Prompt string
	Yes    string
	No     string
	onYes  bool
}

// NewConfirm creates a dialog focused on the No button.
func NewConfirm(prompt, yes, no string) Confirm {
	return Confirm{Prompt: prompt, Yes: yes, No: no}
}

// Update handles a key press and reports the decision, if any.
func (c Confirm) Update(msg tea.Msg) (Confirm, ConfirmResult) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, ConfirmPending
	}
	switch kmsg.String() {
	case "y", "Y":
		return c, ConfirmYes
	case "n", "N", "esc":
		return c, ConfirmNo
	case "left", "right", "tab", "h", "l":
		c.onYes = !c.onYes
	case "enter":
		if c.onYes {
			return c, ConfirmYes
		}
		return c, ConfirmNo
	}
	return c, ConfirmPending
}

// View renders the prompt above the two buttons.
func (c Confirm) View(width int) string {
	yes, no := theme.ButtonInactive.Render(c.Yes), theme.ButtonActive.Render(c.No)
	if c.onYes {
		yes, no = theme.ButtonActive.Render(c.Yes), theme.ButtonInactive.Render(c.No)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, yes, "   ", no)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Align(lipgloss.Center).Render(c.Prompt))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))
	return b.String()
}
