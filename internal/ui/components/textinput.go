package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Prepiz styling and an inline
// validation message.
type TextInput struct {
	Model    textinput.Model
	errMsg   string
	accepted bool
}

// NewTextInput creates a focused text input.
func NewTextInput(placeholder, value string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the underlying input and clears any
// previous verdict once the user types.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.errMsg = ""
		t.accepted = false
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input followed by its verdict.
func (t TextInput) View() string {
	view := t.Model.View()
	switch {
	case t.errMsg != "":
		view += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.errMsg)
	case t.accepted:
		view += "  " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓ saved")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Accept marks the value as stored.
func (t *TextInput) Accept() {
	t.accepted = true
	t.errMsg = ""
}

// Reject shows msg next to the input.
func (t *TextInput) Reject(msg string) {
	t.accepted = false
	t.errMsg = msg
}
