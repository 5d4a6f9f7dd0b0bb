// Package syllabus browses Subject > Unit > Sub-topic > Item and toggles
// item completion.
package syllabus

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/screen"
	syl "github.com/abhisek/prepiz/internal/syllabus"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// Tracker is the syllabus state the screen reads and changes.
type Tracker interface {
	Subjects() []syl.Subject
	SetCompleted(ctx context.Context, itemID string, done bool) error
}

type level int

const (
	levelSubjects level = iota
	levelUnits
	levelSubTopics
	levelItems
)

type toggledMsg struct {
	subjects []syl.Subject
	err      error
}

// row is one line of the current level.
type row struct {
	name      string
	completed int
	total     int
	detail    string
	itemID    string
	done      bool
}

// SyllabusScreen is the four-level syllabus browser.
type SyllabusScreen struct {
	tracker  Tracker
	subjects []syl.Subject
	level    level
	path     [3]int // chosen subject, unit, sub-topic
	cursor   [4]int
	offset   int
	errMsg   string
}

var _ screen.Screen = (*SyllabusScreen)(nil)
var _ screen.KeyHintProvider = (*SyllabusScreen)(nil)
var _ screen.EscapeHandler = (*SyllabusScreen)(nil)

// New creates a SyllabusScreen at the subject level.
func New(tracker Tracker) *SyllabusScreen {
	return &SyllabusScreen{tracker: tracker, subjects: tracker.Subjects()}
}

func (s *SyllabusScreen) Init() tea.Cmd {
	return nil
}

func (s *SyllabusScreen) Title() string {
	return "Syllabus"
}

// HandlesEscape keeps Esc inside the screen until the top level.
func (s *SyllabusScreen) HandlesEscape() bool {
	return s.level > levelSubjects
}

func (s *SyllabusScreen) KeyHints() []layout.KeyHint {
	if s.level == levelItems {
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle done"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Esc", Description: "Up"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
	}
	if s.level > levelSubjects {
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Up"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SyllabusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case toggledMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.subjects = msg.subjects
		return s, nil

	case tea.KeyPressMsg:
		rows := s.rows()
		cur := &s.cursor[s.level]
		switch msg.String() {
		case "up", "k":
			if *cur > 0 {
				*cur--
			}
		case "down", "j":
			if *cur < len(rows)-1 {
				*cur++
			}
		case "enter", "right", "l":
			if s.level == levelItems {
				return s, s.toggle(rows)
			}
			if len(rows) > 0 {
				s.path[s.level] = *cur
				s.level++
				s.cursor[s.level] = 0
				s.offset = 0
			}
		case "space", " ":
			if s.level == levelItems {
				return s, s.toggle(rows)
			}
		case "esc", "left", "h", "backspace":
			if s.level > levelSubjects {
				s.level--
				s.offset = 0
			}
		}
	}
	return s, nil
}

func (s *SyllabusScreen) toggle(rows []row) tea.Cmd {
	i := s.cursor[levelItems]
	if i >= len(rows) {
		return nil
	}
	r := rows[i]
	tracker := s.tracker
	return func() tea.Msg {
		if err := tracker.SetCompleted(context.Background(), r.itemID, !r.done); err != nil {
			return toggledMsg{err: err}
		}
		return toggledMsg{subjects: tracker.Subjects()}
	}
}

// rows lists the entries of the current level.
func (s *SyllabusScreen) rows() []row {
	var out []row
	switch s.level {
	case levelSubjects:
		for _, sub := range s.subjects {
			out = append(out, row{
				name: sub.Name, completed: sub.CompletedItems(), total: sub.TotalItems(),
				detail: fmt.Sprintf("%s · %d units · %d flashcards", sub.Paper, sub.TotalUnits(), sub.TotalFlashcards()),
			})
		}
	case levelUnits:
		for _, u := range s.subject().Units {
			out = append(out, row{
				name: u.Name, completed: u.CompletedItems(), total: u.TotalItems(),
				detail: fmt.Sprintf("%d sub-topics · %d flashcards", u.TotalSubTopics(), u.TotalFlashcards()),
			})
		}
	case levelSubTopics:
		for _, st := range s.unit().SubTopics {
			out = append(out, row{
				name: st.Name, completed: st.CompletedItems(), total: st.TotalItems(),
				detail: fmt.Sprintf("%d flashcards", st.TotalFlashcards()),
			})
		}
	case levelItems:
		for _, it := range s.subTopic().Items {
			done := 0
			if it.Completed {
				done = 1
			}
			out = append(out, row{
				name: it.Name, completed: done, total: 1, itemID: it.ID, done: it.Completed,
				detail: fmt.Sprintf("%d flashcards", it.SuggestedFlashcards),
			})
		}
	}
	return out
}

func (s *SyllabusScreen) subject() syl.Subject {
	if s.path[0] < len(s.subjects) {
		return s.subjects[s.path[0]]
	}
	return syl.Subject{}
}

func (s *SyllabusScreen) unit() syl.Unit {
	if units := s.subject().Units; s.path[1] < len(units) {
		return units[s.path[1]]
	}
	return syl.Unit{}
}

func (s *SyllabusScreen) subTopic() syl.SubTopic {
	if sts := s.unit().SubTopics; s.path[2] < len(sts) {
		return sts[s.path[2]]
	}
	return syl.SubTopic{}
}

func (s *SyllabusScreen) breadcrumb() string {
	parts := []string{"Syllabus"}
	if s.level > levelSubjects {
		parts = append(parts, s.subject().Name)
	}
	if s.level > levelUnits {
		parts = append(parts, s.unit().Name)
	}
	if s.level > levelSubTopics {
		parts = append(parts, s.subTopic().Name)
	}
	return strings.Join(parts, " › ")
}

func (s *SyllabusScreen) View(width, height int) string {
	if len(s.subjects) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No syllabus loaded.")
	}

	cw := components.ContentWidth(width)
	rows := s.rows()
	cursor := s.cursor[s.level]

	var b strings.Builder
	b.WriteString(layout.Centered(lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(s.breadcrumb()), width))
	b.WriteString("\n")
	if s.errMsg != "" {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Width(cw).Foreground(theme.Error).Render(s.errMsg), width))
	}
	b.WriteString("\n")

	perRow := 2
	if s.level == levelItems {
		perRow = 1
	}
	visible := max((height-3)/perRow, 1)
	if cursor < s.offset {
		s.offset = cursor
	}
	if cursor >= s.offset+visible {
		s.offset = cursor - visible + 1
	}

	for i := s.offset; i < len(rows) && i < s.offset+visible; i++ {
		b.WriteString(layout.Centered(s.renderRow(rows[i], i == cursor, cw), width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *SyllabusScreen) renderRow(r row, selected bool, cw int) string {
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	prefix := "  "
	if selected {
		nameStyle = nameStyle.Foreground(theme.Primary).Bold(true)
		prefix = "▸ "
	}
	detail := lipgloss.NewStyle().Foreground(theme.TextDim).Render(r.detail)

	if s.level == levelItems {
		box := "[ ]"
		if r.done {
			box = theme.Correct.Render("[✓]")
		}
		line := prefix + box + " " + nameStyle.Render(r.name) + "  " + detail
		return lipgloss.NewStyle().Width(cw).Render(line)
	}

	head := prefix + nameStyle.Render(r.name) + "  " + detail
	bar := components.NewProgressBar("", float64(syl.Percent(r.completed, r.total)), true, cw-14).View()
	counts := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %d/%d", r.completed, r.total))
	return lipgloss.NewStyle().Width(cw).Render(head + "\n    " + bar + counts)
}
