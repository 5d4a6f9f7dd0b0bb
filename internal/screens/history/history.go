package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/practice"
	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/screens/notice"
	"github.com/abhisek/prepiz/internal/screens/review"
	"github.com/abhisek/prepiz/internal/store"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// Limit is the number of attempts listed.
const Limit = 50

// Lister returns stored attempts, newest first.
type Lister interface {
	Recent(ctx context.Context, limit int) ([]store.AttemptRecord, error)
}

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

// HistoryScreen lists past attempts and opens their review.
type HistoryScreen struct {
	attempts Lister
	records  []store.AttemptRecord
	selected int
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Refresher = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(attempts Lister) *HistoryScreen {
	return &HistoryScreen{attempts: attempts}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) Refresh() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	attempts := s.attempts
	return func() tea.Msg {
		recs, err := attempts.Recent(context.Background(), Limit)
		return historyLoadedMsg{Attempts: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Review"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.records = msg.Attempts
			s.selected = min(s.selected, max(len(s.records)-1, 0))
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.openReview()
		}
	}
	return s, nil
}

func (s *HistoryScreen) openReview() tea.Cmd {
	if s.selected >= len(s.records) {
		return nil
	}
	rec := s.records[s.selected]
	items, err := practice.Review(rec)
	if err != nil {
		return router.PushCmd(notice.New("Review", "Cannot open this attempt", err.Error(), notice.Failure))
	}
	heading := fmt.Sprintf("%s · %s", attemptLabel(rec), rec.CreatedAt.Format("Jan 02, 2006 15:04"))
	return router.PushCmd(review.New(heading, items))
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No tests taken yet. Start one from the home screen!")
	}

	rows := max(height-2, 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}

	var b strings.Builder
	b.WriteString("\n")
	for i := s.offset; i < len(s.records) && i < s.offset+rows; i++ {
		rec := s.records[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-28s  %2d Qs  %2d✓ %2d✗ %2d–  %5.1f%%  %s",
			prefix,
			rec.CreatedAt.Format("Jan 02, 2006"),
			truncate(attemptLabel(rec), 28),
			rec.TotalQuestions, rec.CorrectCount, rec.WrongCount, rec.SkippedCount,
			rec.Percentage,
			duration(rec.TimeTakenSecs),
		)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// attemptLabel names the scope of a stored attempt.
func attemptLabel(rec store.AttemptRecord) string {
	switch {
	case rec.Paper != "":
		return rec.Paper
	case rec.Unit != "":
		return rec.Subject + " / " + rec.Unit
	default:
		return rec.Subject
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func duration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
