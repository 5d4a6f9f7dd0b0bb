// Package quiz is the timed test screen.
package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/practice"
	"github.com/abhisek/prepiz/internal/questionbank"
	qz "github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/screens/notice"
	"github.com/abhisek/prepiz/internal/screens/result"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/layout"
)

// Runner starts sessions and stores their outcome. practice.Service
// implements it.
type Runner interface {
	Begin(ctx context.Context, scope questionbank.Scope, cfg qz.Config) (*qz.Session, error)
	Complete(ctx context.Context, out *qz.Outcome) (*practice.Result, error)
}

type dialog int

const (
	dialogNone dialog = iota
	dialogSubmit
	dialogExit
)

// GridColumns is the number of cells per row of the question grid.
const GridColumns = 10

// QuizScreen runs one quiz session.
type QuizScreen struct {
	runner  Runner
	scope   questionbank.Scope
	cfg     qz.Config
	sess    *qz.Session
	options components.OptionList
	shownID string // question the option list was built for
	dialog  dialog
	confirm components.Confirm
	grid    bool
	gridPos int
	done    bool // outcome produced, waiting for the runner
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen that starts a session for scope when pushed.
func New(runner Runner, scope questionbank.Scope, cfg qz.Config) *QuizScreen {
	return &QuizScreen{runner: runner, scope: scope, cfg: cfg}
}

func (s *QuizScreen) Init() tea.Cmd {
	runner, scope, cfg := s.runner, s.scope, s.cfg
	return func() tea.Msg {
		sess, err := runner.Begin(context.Background(), scope, cfg)
		return startedMsg{Session: sess, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	return "Test · " + s.scope.Label()
}

// HandlesEscape asks before abandoning an active session and ignores Esc
// while the outcome is being saved.
func (s *QuizScreen) HandlesEscape() bool {
	return s.active() || s.done
}

func (s *QuizScreen) active() bool {
	return s.sess != nil && s.sess.Phase() == qz.PhaseActive && !s.done
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case !s.active():
		return nil
	case s.dialog != dialogNone:
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	case s.grid:
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Enter", Description: "Go to question"},
			{Key: "Esc", Description: "Close grid"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "M", Description: "Mark"},
		{Key: "X", Description: "Clear"},
		{Key: "G", Description: "Grid"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Exit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case timerTickMsg:
		return s.handleTick()

	case completedMsg:
		s.sess.Close()
		return s, router.ReplaceCmd(result.New(msg.Result, msg.Err, s.runner))

	case tea.KeyPressMsg:
		if !s.active() {
			return s, nil
		}
		if s.dialog != dialogNone {
			return s.handleDialog(msg)
		}
		if s.grid {
			return s.handleGridKey(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, qz.ErrNoContent) {
		return s, router.ReplaceCmd(notice.NoContent(s.scope.Label()))
	}
	if msg.Err != nil {
		return s, router.ReplaceCmd(notice.New("Test", "Could not start the test", msg.Err.Error(), notice.Failure))
	}
	s.sess = msg.Session
	s.syncOptions()
	return s, tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(qz.TickInterval, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *QuizScreen) handleTick() (screen.Screen, tea.Cmd) {
	if !s.active() {
		return s, nil
	}
	out, timedOut := s.sess.Tick()
	if timedOut {
		return s, s.finish(out)
	}
	return s, tickCmd()
}

// finish hands the outcome to the runner off the UI loop.
func (s *QuizScreen) finish(out *qz.Outcome) tea.Cmd {
	s.done = true
	s.dialog = dialogNone
	s.grid = false
	runner := s.runner
	return func() tea.Msg {
		res, err := runner.Complete(context.Background(), out)
		if res == nil {
			res = &practice.Result{Outcome: out}
		}
		return completedMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	q, _ := s.sess.Current()

	if i, ok := components.OptionIndex(key, len(q.Options)); ok {
		s.choose(i)
		return s, nil
	}

	switch key {
	case "up", "down", "k", "j":
		s.options, _ = s.options.Update(msg)
	case "enter", "space", " ":
		s.choose(s.options.Cursor)
	case "right", "n", "l":
		s.sess.Next()
	case "left", "p", "h":
		s.sess.Prev()
	case "x", "backspace", "delete":
		s.setErr(s.sess.ClearResponse())
	case "m":
		s.setErr(s.sess.ToggleReview())
	case "g":
		s.grid = true
		s.gridPos = s.sess.Index()
		return s, nil
	case "s":
		s.openDialog(dialogSubmit)
		return s, nil
	case "esc":
		s.openDialog(dialogExit)
		return s, nil
	}
	s.syncOptions()
	return s, nil
}

func (s *QuizScreen) choose(i int) {
	q, ok := s.sess.Current()
	if !ok || i < 0 || i >= len(q.Options) {
		return
	}
	s.setErr(s.sess.Select(q.Options[i].ID))
	s.options.Chosen = i
	s.options.Cursor = i
}

func (s *QuizScreen) setErr(err error) {
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
}

// syncOptions rebuilds the option list when the current question changed
// and refreshes the chosen option.
func (s *QuizScreen) syncOptions() {
	q, ok := s.sess.Current()
	if !ok {
		return
	}
	chosen := -1
	if a, ok := s.sess.Answer(q.ID); ok {
		for i, o := range q.Options {
			if o.ID == a.SelectedOption {
				chosen = i
			}
		}
	}
	if q.ID != s.shownID {
		texts := make([]string, len(q.Options))
		for i, o := range q.Options {
			texts[i] = o.Text
		}
		s.options = components.NewOptionList(texts, chosen)
		s.shownID = q.ID
		return
	}
	s.options.Chosen = chosen
}

func (s *QuizScreen) openDialog(d dialog) {
	s.dialog = d
	switch d {
	case dialogSubmit:
		answered, _ := s.sess.Counts()
		prompt := "Submit the test?"
		if left := s.sess.Len() - answered; left > 0 {
			prompt = "Submit the test? " + plural(left, "question") + " unanswered."
		}
		s.confirm = components.NewConfirm(prompt, "Submit", "Keep going")
	case dialogExit:
		s.confirm = components.NewConfirm("Leave the test? Your answers will be lost.", "Leave", "Stay")
	}
}

func (s *QuizScreen) handleDialog(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	var res components.ConfirmResult
	s.confirm, res = s.confirm.Update(msg)
	switch res {
	case components.ConfirmNo:
		s.dialog = dialogNone
	case components.ConfirmYes:
		d := s.dialog
		s.dialog = dialogNone
		if d == dialogExit {
			s.sess.Close()
			return s, router.PopCmd
		}
		out, err := s.sess.Submit()
		if err != nil {
			// The timer got there first; its outcome is already on the way.
			return s, nil
		}
		return s, s.finish(out)
	}
	return s, nil
}

func (s *QuizScreen) handleGridKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	n := s.sess.Len()
	switch msg.String() {
	case "right", "l":
		s.gridPos = min(s.gridPos+1, n-1)
	case "left", "h":
		s.gridPos = max(s.gridPos-1, 0)
	case "down", "j":
		if s.gridPos+GridColumns < n {
			s.gridPos += GridColumns
		}
	case "up", "k":
		if s.gridPos-GridColumns >= 0 {
			s.gridPos -= GridColumns
		}
	case "enter", "space", " ":
		s.sess.Jump(s.gridPos)
		s.grid = false
		s.syncOptions()
	case "esc", "g":
		s.grid = false
	}
	return s, nil
}
