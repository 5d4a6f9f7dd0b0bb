package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/practice"
	"github.com/abhisek/prepiz/internal/questionbank"
	qz "github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screens/notice"
	"github.com/abhisek/prepiz/internal/screens/result"
)

type fakeRunner struct {
	questions []questionbank.Question
	beginErr  error
	completed []*qz.Outcome
}

func (f *fakeRunner) Begin(_ context.Context, scope questionbank.Scope, cfg qz.Config) (*qz.Session, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	sess := qz.New(scope, cfg.Duration, qz.WithID("test-session"))
	if err := sess.Start(f.questions); err != nil {
		return sess, err
	}
	return sess, nil
}

func (f *fakeRunner) Complete(_ context.Context, out *qz.Outcome) (*practice.Result, error) {
	f.completed = append(f.completed, out)
	return &practice.Result{Outcome: out, AttemptID: 1, Saved: true}, nil
}

func testQuestions() []questionbank.Question {
	opts := []questionbank.Option{
		{ID: "a", Text: "Alpha"},
		{ID: "b", Text: "Bravo"},
		{ID: "c", Text: "Charlie"},
		{ID: "d", Text: "Delta"},
	}
	return []questionbank.Question{
		{ID: "q1", Text: "Which article abolishes untouchability?", Options: opts, CorrectAnswer: "b", Marks: 2, TopicTag: "Constitution"},
		{ID: "q2", Text: "Who presides over the Rajya Sabha?", Options: opts, CorrectAnswer: "c", Marks: 2, TopicTag: "Parliament"},
		{ID: "q3", Text: "Money bills originate in?", Options: opts, CorrectAnswer: "a", Marks: 2, TopicTag: "Parliament"},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func started(t *testing.T, runner *fakeRunner, budget time.Duration) *QuizScreen {
	t.Helper()
	s := New(runner, questionbank.SubjectScope("polity"), qz.Config{QuestionCount: 3, Duration: budget})
	msg := s.Init()()
	_, cmd := s.Update(msg)
	if cmd == nil {
		t.Fatal("expected the timer to start")
	}
	if s.sess == nil || s.sess.Phase() != qz.PhaseActive {
		t.Fatal("session not active after start")
	}
	return s
}

func replacedWith(t *testing.T, cmd tea.Cmd) router.ReplaceScreenMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	got := cmd()
	msg, ok := got.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", got)
	}
	return msg
}

func TestNoContentReplacesWithNotice(t *testing.T) {
	runner := &fakeRunner{}
	s := New(runner, questionbank.UnitScope("polity", "Nothing"), qz.DefaultConfig())
	_, cmd := s.Update(s.Init()())

	msg := replacedWith(t, cmd)
	if _, ok := msg.Screen.(*notice.NoticeScreen); !ok {
		t.Errorf("replaced with %T, want notice", msg.Screen)
	}
}

func TestBeginFailureReplacesWithNotice(t *testing.T) {
	runner := &fakeRunner{beginErr: errors.New("disk on fire")}
	s := New(runner, questionbank.SubjectScope("polity"), qz.DefaultConfig())
	_, cmd := s.Update(s.Init()())

	msg := replacedWith(t, cmd)
	if _, ok := msg.Screen.(*notice.NoticeScreen); !ok {
		t.Errorf("replaced with %T, want notice", msg.Screen)
	}
}

func TestAnswerNavigateAndMark(t *testing.T) {
	s := started(t, &fakeRunner{questions: testQuestions()}, time.Minute)

	s.Update(keyPress('2'))
	if a, _ := s.sess.Answer("q1"); a.SelectedOption != "b" {
		t.Errorf("q1 answer = %q, want b", a.SelectedOption)
	}
	if s.options.Chosen != 1 {
		t.Errorf("chosen = %d, want 1", s.options.Chosen)
	}

	s.Update(specialKey(tea.KeyRight))
	if s.sess.Index() != 1 {
		t.Fatalf("index = %d, want 1", s.sess.Index())
	}
	if s.options.Chosen != -1 {
		t.Errorf("new question shows chosen %d, want none", s.options.Chosen)
	}

	s.Update(keyPress('c'))
	s.Update(keyPress('x'))
	s.Update(keyPress('m'))
	a, _ := s.sess.Answer("q2")
	if a.SelectedOption != "" || !a.MarkedForReview {
		t.Errorf("q2 = %+v, want cleared and marked", a)
	}

	s.Update(specialKey(tea.KeyLeft))
	if s.sess.Index() != 0 || s.options.Chosen != 1 {
		t.Errorf("back on q1: index %d chosen %d", s.sess.Index(), s.options.Chosen)
	}

	answered, marked := s.sess.Counts()
	if answered != 1 || marked != 1 {
		t.Errorf("counts = %d answered %d marked, want 1 and 1", answered, marked)
	}
}

func TestCursorAndEnterSelect(t *testing.T) {
	s := started(t, &fakeRunner{questions: testQuestions()}, time.Minute)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))
	if a, _ := s.sess.Answer("q1"); a.SelectedOption != "c" {
		t.Errorf("answer = %q, want c", a.SelectedOption)
	}
}

func TestGridJump(t *testing.T) {
	s := started(t, &fakeRunner{questions: testQuestions()}, time.Minute)

	s.Update(keyPress('g'))
	if !s.grid {
		t.Fatal("grid not open")
	}
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyEnter))
	if s.grid {
		t.Error("grid still open after jump")
	}
	if s.sess.Index() != 2 {
		t.Errorf("index = %d, want 2", s.sess.Index())
	}
	if q, _ := s.sess.Current(); s.shownID != q.ID {
		t.Errorf("options built for %q, current is %q", s.shownID, q.ID)
	}
}

func TestSubmitFlow(t *testing.T) {
	runner := &fakeRunner{questions: testQuestions()}
	s := started(t, runner, time.Minute)
	s.Update(keyPress('b'))

	s.Update(keyPress('s'))
	if s.dialog != dialogSubmit {
		t.Fatal("submit dialog not shown")
	}
	if !strings.Contains(s.confirm.Prompt, "2 questions unanswered") {
		t.Errorf("prompt = %q", s.confirm.Prompt)
	}

	// N keeps the session going.
	s.Update(keyPress('n'))
	if s.dialog != dialogNone || s.sess.Phase() != qz.PhaseActive {
		t.Fatal("declining submit changed the session")
	}

	s.Update(keyPress('s'))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	if s.sess.Phase() != qz.PhaseSubmitted {
		t.Errorf("phase = %v, want submitted", s.sess.Phase())
	}
	if !s.HandlesEscape() {
		t.Error("esc should be swallowed while saving")
	}

	_, cmd = s.Update(cmd())
	if len(runner.completed) != 1 {
		t.Fatalf("Complete called %d times, want 1", len(runner.completed))
	}
	if s.sess.Phase() != qz.PhaseClosed {
		t.Errorf("phase after completion = %v, want closed", s.sess.Phase())
	}
	if got := runner.completed[0].Breakdown.Correct; got != 1 {
		t.Errorf("correct = %d, want 1", got)
	}
	msg := replacedWith(t, cmd)
	if _, ok := msg.Screen.(*result.ResultScreen); !ok {
		t.Errorf("replaced with %T, want result", msg.Screen)
	}
}

func TestTimerRunsOut(t *testing.T) {
	runner := &fakeRunner{questions: testQuestions()}
	s := started(t, runner, 2*time.Second)

	_, cmd := s.Update(timerTickMsg(time.Now()))
	if cmd == nil || s.done {
		t.Fatal("first tick should reschedule")
	}
	if s.sess.Remaining() != time.Second {
		t.Errorf("remaining = %v, want 1s", s.sess.Remaining())
	}

	_, cmd = s.Update(timerTickMsg(time.Now()))
	if !s.done {
		t.Fatal("second tick should end the session")
	}
	if s.sess.Phase() != qz.PhaseTimedOut {
		t.Errorf("phase = %v, want timed out", s.sess.Phase())
	}

	// Keys are ignored once the outcome is on its way.
	if _, c := s.Update(keyPress('s')); c != nil || s.dialog != dialogNone {
		t.Error("submit allowed after time out")
	}

	s.Update(cmd())
	if len(runner.completed) != 1 || runner.completed[0].Reason != qz.PhaseTimedOut {
		t.Errorf("completed = %+v", runner.completed)
	}

	// A stale tick does nothing.
	if _, c := s.Update(timerTickMsg(time.Now())); c != nil {
		t.Error("stale tick rescheduled the timer")
	}
}

func TestExitConfirmAbandons(t *testing.T) {
	runner := &fakeRunner{questions: testQuestions()}
	s := started(t, runner, time.Minute)

	if !s.HandlesEscape() {
		t.Fatal("active session should handle esc")
	}
	s.Update(specialKey(tea.KeyEscape))
	if s.dialog != dialogExit {
		t.Fatal("exit dialog not shown")
	}
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
	if s.sess.Phase() != qz.PhaseClosed {
		t.Errorf("phase = %v, want closed", s.sess.Phase())
	}
	if len(runner.completed) != 0 {
		t.Error("abandoned session was saved")
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59 * time.Second, "0:59"},
		{90 * time.Second, "1:30"},
		{30 * time.Minute, "30:00"},
		{1500 * time.Millisecond, "0:02"},
	}
	for _, tt := range tests {
		if got := Clock(tt.d); got != tt.want {
			t.Errorf("Clock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestViewRendersQuestion(t *testing.T) {
	s := started(t, &fakeRunner{questions: testQuestions()}, time.Minute)
	view := s.View(100, 30)
	for _, want := range []string{"Question 1 of 3", "Constitution", "untouchability", "Bravo", "1:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
