// Package review walks through a finished attempt one question at a time.
package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/scoring"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// Filter narrows the questions shown.
type Filter int

const (
	FilterAll Filter = iota
	FilterWrong
	FilterSkipped
	FilterMarked
)

func (f Filter) String() string {
	switch f {
	case FilterWrong:
		return "wrong"
	case FilterSkipped:
		return "skipped"
	case FilterMarked:
		return "marked"
	default:
		return "all"
	}
}

func (f Filter) match(it scoring.ReviewItem) bool {
	switch f {
	case FilterWrong:
		return it.Status == scoring.StatusWrong
	case FilterSkipped:
		return it.Status == scoring.StatusSkipped
	case FilterMarked:
		return it.Answer.MarkedForReview
	default:
		return true
	}
}

// ReviewScreen shows each question with the chosen and correct option,
// the explanation and the marks it earned.
type ReviewScreen struct {
	heading string
	items   []scoring.ReviewItem
	visible []int // indexes into items passing the filter
	pos     int
	filter  Filter
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen. heading is shown above every question,
// usually the scope and date of the attempt.
func New(heading string, items []scoring.ReviewItem) *ReviewScreen {
	s := &ReviewScreen{heading: heading, items: items}
	s.applyFilter(FilterAll)
	return s
}

func (s *ReviewScreen) applyFilter(f Filter) {
	s.filter = f
	s.visible = s.visible[:0]
	for i, it := range s.items {
		if f.match(it) {
			s.visible = append(s.visible, i)
		}
	}
	s.pos = 0
}

// Current returns the question under the cursor.
func (s *ReviewScreen) Current() (scoring.ReviewItem, bool) {
	if len(s.visible) == 0 {
		return scoring.ReviewItem{}, false
	}
	return s.items[s.visible[s.pos]], true
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Question"},
		{Key: "F", Description: "Filter: " + s.filter.String()},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "right", "l", "n":
		if s.pos < len(s.visible)-1 {
			s.pos++
		}
	case "left", "h", "p":
		if s.pos > 0 {
			s.pos--
		}
	case "home", "g":
		s.pos = 0
	case "end", "G":
		s.pos = max(len(s.visible)-1, 0)
	case "f":
		s.applyFilter((s.filter + 1) % 4)
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	it, ok := s.Current()
	if !ok {
		msg := "No questions to review."
		if s.filter != FilterAll {
			msg = fmt.Sprintf("No %s questions. Press F to change the filter.", s.filter)
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(msg))
	}

	var b strings.Builder
	b.WriteString(layout.Centered(theme.Subtitle.Render(s.heading), width))
	b.WriteString("\n\n")

	header := fmt.Sprintf("Question %d of %d", it.Index+1, len(s.items))
	if s.filter != FilterAll {
		header += fmt.Sprintf("  (%d/%d %s)", s.pos+1, len(s.visible), s.filter)
	}
	status := statusStyle(it.Status).Render(it.Status.String() + "  " + it.MarksLabel())
	if it.Answer.MarkedForReview {
		status += "  " + theme.Marked.Render("⚑ marked")
	}

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(header) + "   " + status)
	card.WriteString("\n\n")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 4).Render(it.Question.Text))
	card.WriteString("\n\n")
	card.WriteString(optionList(it).View(cw - 4))
	if it.Question.Explanation != "" {
		card.WriteString("\n")
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Explanation"))
		card.WriteString("\n")
		card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).Render(it.Question.Explanation))
	}

	b.WriteString(layout.Centered(components.Card("", card.String(), cw), width))
	return b.String()
}

func optionList(it scoring.ReviewItem) components.OptionList {
	texts := make([]string, len(it.Question.Options))
	chosen, correct := -1, -1
	for i, o := range it.Question.Options {
		texts[i] = o.Text
		if o.ID == it.Answer.SelectedOption {
			chosen = i
		}
		if o.ID == it.Question.CorrectAnswer {
			correct = i
		}
	}
	l := components.NewOptionList(texts, chosen)
	l.Correct = correct
	l.Reveal = true
	return l
}

func statusStyle(st scoring.Status) lipgloss.Style {
	switch st {
	case scoring.StatusCorrect:
		return theme.Correct
	case scoring.StatusWrong:
		return theme.Incorrect
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	}
}
