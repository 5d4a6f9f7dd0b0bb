// Package result shows the score of a finished quiz and offers the review.
package result

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/practice"
	"github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/scoring"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/screens/review"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// Saver persists a finished quiz. practice.Service implements it.
type Saver interface {
	Complete(ctx context.Context, out *quiz.Outcome) (*practice.Result, error)
}

type savedMsg struct {
	res *practice.Result
	err error
}

// ResultScreen shows the breakdown of one outcome.
type ResultScreen struct {
	res     *practice.Result
	saveErr error
	saver   Saver
	saving  bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. saveErr is the error of the first save
// attempt, if any; the user can retry it from this screen.
func New(res *practice.Result, saveErr error, saver Saver) *ResultScreen {
	return &ResultScreen{res: res, saveErr: saveErr, saver: saver}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "R", Description: "Review answers"},
		{Key: "Enter", Description: "Home"},
	}
	if !s.res.Saved {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Retry save"})
	}
	return hints
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		s.saveErr = msg.err
		if msg.err == nil && msg.res != nil {
			s.res = msg.res
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			out := s.res.Outcome
			items := scoring.Review(out.Questions, out.Answers)
			return s, router.PushCmd(review.New(out.Scope.Label(), items))
		case "s":
			if s.res.Saved || s.saving || s.saver == nil {
				return s, nil
			}
			s.saving = true
			return s, s.save()
		case "enter", "q":
			return s, router.PopToRootCmd
		}
	}
	return s, nil
}

func (s *ResultScreen) save() tea.Cmd {
	out := s.res.Outcome
	saver := s.saver
	return func() tea.Msg {
		res, err := saver.Complete(context.Background(), out)
		return savedMsg{res: res, err: err}
	}
}

func (s *ResultScreen) View(width, height int) string {
	out := s.res.Outcome
	bd := out.Breakdown
	cw := min(components.ContentWidth(width), 60)

	heading := "Test submitted"
	if out.Reason == quiz.PhaseTimedOut {
		heading = "Time's up!"
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(heading))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(out.Scope.Label()))
	b.WriteString("\n\n")

	pctStyle := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(bd.Percentage))
	score := lipgloss.JoinHorizontal(lipgloss.Top,
		components.Stat(fmt.Sprintf("%.2f / %.0f", bd.RawScore, bd.MaxScore), "score", cw/2),
		lipgloss.NewStyle().Width(cw/2).Align(lipgloss.Center).Render(
			pctStyle.Render(fmt.Sprintf("%.1f%%", bd.Percentage))+"\n"+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("percentage")),
	)
	b.WriteString(layout.Centered(components.Card("", score, cw), width))
	b.WriteString("\n\n")

	counts := fmt.Sprintf("%s   %s   %s",
		theme.Correct.Render(fmt.Sprintf("✓ %d correct", bd.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("✗ %d wrong", bd.Wrong)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("– %d skipped", bd.Skipped)),
	)
	b.WriteString(layout.Centered(counts, width))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Time taken %s of %s", clock(out.Elapsed), clock(out.Budget))), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(s.saveLine(), width))
	return b.String()
}

func (s *ResultScreen) saveLine() string {
	switch {
	case s.saving:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Saving...")
	case s.res.Saved:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("Saved to your history")
	case s.saveErr != nil:
		return theme.Marked.Render("Could not save this attempt: " + s.saveErr.Error() + ". Press S to retry.")
	default:
		return theme.Marked.Render("This attempt is not saved. Press S to save.")
	}
}

func scoreColor(pct float64) color.Color {
	switch {
	case pct >= 60:
		return theme.Success
	case pct >= 40:
		return theme.Warning
	default:
		return theme.Error
	}
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
