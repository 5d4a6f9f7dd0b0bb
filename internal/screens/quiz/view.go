package quiz

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// lowTime is when the timer turns red.
const lowTime = time.Minute

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.sess == nil:
		body = theme.Subtitle.Render("Loading questions…")
	case s.done:
		body = theme.Subtitle.Render("Scoring your answers…")
	default:
		body = s.sessionView(cw)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuizScreen) sessionView(cw int) string {
	q, _ := s.sess.Current()
	answered, marked := s.sess.Counts()

	var b strings.Builder
	b.WriteString(s.statusBar(answered, marked, cw))
	b.WriteString("\n\n")

	if s.grid {
		b.WriteString(components.Card("Questions", s.gridView(), cw))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(legend()))
		return b.String()
	}

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 4).Render(q.Text))
	card.WriteString("\n\n")
	card.WriteString(s.options.View(cw - 4))
	if a, ok := s.sess.Answer(q.ID); ok && a.MarkedForReview {
		card.WriteString("\n")
		card.WriteString(theme.Marked.Render("⚑ Marked for review"))
	}
	title := fmt.Sprintf("Question %d of %d", s.sess.Index()+1, s.sess.Len())
	if q.TopicTag != "" {
		title += " · " + q.TopicTag
	}
	b.WriteString(components.Card(title, card.String(), cw))

	if s.dialog != dialogNone {
		b.WriteString("\n")
		b.WriteString(s.confirm.View(cw))
	} else if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}
	return b.String()
}

func (s *QuizScreen) statusBar(answered, marked, cw int) string {
	left := theme.Subtitle.Render(fmt.Sprintf("Answered %d/%d  ·  Marked %d", answered, s.sess.Len(), marked))

	remaining := s.sess.Remaining()
	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	if remaining <= lowTime {
		timerStyle = timerStyle.Foreground(theme.Error)
	}
	right := timerStyle.Render("⏱ " + Clock(remaining))

	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (s *QuizScreen) gridView() string {
	var rows []string
	var row []string
	for _, c := range s.sess.Grid() {
		row = append(row, s.cell(c))
		if len(row) == GridColumns {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

func (s *QuizScreen) cell(c qz.Cell) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case c.Marked:
		style = style.Foreground(theme.Warning)
	case c.Answered:
		style = style.Foreground(theme.Success)
	}
	label := fmt.Sprintf(" %2d ", c.Index+1)
	if c.Index == s.gridPos {
		label = fmt.Sprintf("[%2d]", c.Index+1)
		style = style.Bold(true)
	}
	return style.Render(label)
}

func legend() string {
	return lipgloss.NewStyle().Foreground(theme.Success).Render("■ answered") + "   " +
		lipgloss.NewStyle().Foreground(theme.Warning).Render("■ marked") + "   " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("■ not answered")
}

// Clock formats d as m:ss, rounding partial seconds up.
func Clock(d time.Duration) string {
	d = max(d, 0)
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

