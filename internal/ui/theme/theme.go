package theme

import (
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
)

// Palette is the set of colors every style is built from.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Warning   color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

// Dark is the default palette, saffron and teal on deep navy.
var Dark = Palette{
	Primary:   lipgloss.Color("#F59E0B"),
	Secondary: lipgloss.Color("#14B8A6"),
	Accent:    lipgloss.Color("#38BDF8"),
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#F43F5E"),
	Warning:   lipgloss.Color("#FACC15"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	Bg:        lipgloss.Color("#0F172A"),
	BgCard:    lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
}

// Light suits terminals with a pale background.
var Light = Palette{
	Primary:   lipgloss.Color("#B45309"),
	Secondary: lipgloss.Color("#0F766E"),
	Accent:    lipgloss.Color("#0369A1"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Warning:   lipgloss.Color("#A16207"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#475569"),
	Bg:        lipgloss.Color("#F8FAFC"),
	BgCard:    lipgloss.Color("#E2E8F0"),
	Border:    lipgloss.Color("#CBD5E1"),
}

// Active colors. Screens read these at render time.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Warning   color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Styles rebuilt by Use.
var (
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Body       lipgloss.Style
	Hint       lipgloss.Style
	Header     lipgloss.Style
	Footer     lipgloss.Style
	Card       lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
	Marked     lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func init() {
	Use(Dark)
}

// Use makes p the active palette.
func Use(p Palette) {
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error, Warning = p.Success, p.Error, p.Warning
	Text, TextDim = p.Text, p.TextDim
	Bg, BgCard, Border = p.Bg, p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Marked = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Bg).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}

// Apply selects the palette for a theme preference: "light", "dark" or
// "system". System follows COLORFGBG when the terminal sets it and falls
// back to dark.
func Apply(pref string) {
	switch strings.ToLower(pref) {
	case "light":
		Use(Light)
	case "system":
		if lightTerminal() {
			Use(Light)
		} else {
			Use(Dark)
		}
	default:
		Use(Dark)
	}
}

// lightTerminal reads the background index from COLORFGBG ("fg;bg").
func lightTerminal() bool {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return false
	}
	parts := strings.Split(v, ";")
	switch parts[len(parts)-1] {
	case "7", "15":
		return true
	default:
		return false
	}
}
