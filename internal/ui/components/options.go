package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/ui/theme"
)

// OptionLabel returns the letter shown before option i: A, B, C...
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// OptionIndex maps a pressed key to an option index. Digits 1-9 and the
// letters a-i (either case) are accepted.
func OptionIndex(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var i int
	switch {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'i':
		i = int(c - 'a')
	case c >= 'A' && c <= 'I':
		i = int(c - 'A')
	default:
		return 0, false
	}
	return i, i < n
}

// OptionList renders the options of a question with a cursor and the
// chosen option highlighted. With Reveal set the correct option is shown in
// green and a wrong choice in red.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen
	Correct int // only used when Reveal is set
	Reveal  bool
}

// NewOptionList creates an OptionList with nothing chosen.
func NewOptionList(options []string, chosen int) OptionList {
	cursor := max(chosen, 0)
	return OptionList{Options: options, Cursor: cursor, Chosen: chosen, Correct: -1}
}

// Update moves the cursor. Choosing is left to the owning screen.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || o.Reveal {
		return o, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	}
	return o, nil
}

// View renders one option per line.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && !o.Reveal {
			prefix = "▸ "
		}
		mark := "( )"
		if i == o.Chosen {
			mark = "(●)"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, OptionLabel(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
		switch {
		case o.Reveal && i == o.Correct:
			style = style.Foreground(theme.Success).Bold(true)
		case o.Reveal && i == o.Chosen:
			style = style.Foreground(theme.Error).Bold(true)
		case o.Reveal:
			style = style.Foreground(theme.TextDim)
		case i == o.Chosen:
			style = style.Foreground(theme.Secondary).Bold(true)
		case i == o.Cursor:
			style = style.Foreground(theme.Primary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
