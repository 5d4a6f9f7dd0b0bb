package quiz

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhisek/prepiz/internal/questionbank"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testQuestions(n int) []questionbank.Question {
	qs := make([]questionbank.Question, n)
	for i := range qs {
		qs[i] = questionbank.Question{
			ID:            fmt.Sprintf("q%d", i),
			Options:       []questionbank.Option{{ID: "a"}, {ID: "b"}},
			CorrectAnswer: "a",
			Marks:         2,
		}
	}
	return qs
}

func activeSession(t *testing.T, n int, budget time.Duration) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
	s := New(questionbank.SubjectScope("polity"), budget, WithClock(clock.Now), WithID("sess"))
	if err := s.Start(testQuestions(n)); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s, clock
}

func TestNewIsLoading(t *testing.T) {
	s := New(questionbank.SubjectScope("polity"), time.Minute)
	if s.Phase() != PhaseLoading {
		t.Errorf("phase = %v, want loading", s.Phase())
	}
	if s.ID() == "" {
		t.Error("expected generated session ID")
	}
	if err := s.Select("a"); !errors.Is(err, ErrNotActive) {
		t.Errorf("select before start: err = %v, want ErrNotActive", err)
	}
}

func TestStartRecordsStartTime(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
	s := New(questionbank.SubjectScope("polity"), 30*time.Minute, WithClock(clock.Now))

	// Loading latency must not count against the budget.
	clock.Advance(5 * time.Second)
	if err := s.Start(testQuestions(3)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.StartedAt().Equal(clock.Now()) {
		t.Errorf("started at %v, want %v", s.StartedAt(), clock.Now())
	}
	if s.Remaining() != 30*time.Minute {
		t.Errorf("remaining = %v, want 30m", s.Remaining())
	}
	if err := s.Start(testQuestions(3)); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second start: err = %v, want ErrAlreadyStarted", err)
	}
}

func TestStartEmptyIsNoContent(t *testing.T) {
	s := New(questionbank.UnitScope("polity", "Nothing"), time.Minute)
	if err := s.Start(nil); !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
	if s.Phase() != PhaseNoContent {
		t.Errorf("phase = %v, want no_content", s.Phase())
	}
	if _, err := s.Submit(); !errors.Is(err, ErrNotActive) {
		t.Errorf("submit: err = %v, want ErrNotActive", err)
	}
	if out, ok := s.Tick(); ok || out != nil {
		t.Error("tick on no-content session produced an outcome")
	}
}

func TestNavigationClamps(t *testing.T) {
	s, _ := activeSession(t, 3, time.Minute)

	if got := s.Prev(); got != 0 {
		t.Errorf("prev at start = %d, want 0", got)
	}
	s.Next()
	s.Next()
	if got := s.Next(); got != 2 {
		t.Errorf("next past end = %d, want 2", got)
	}
	if got := s.Jump(-5); got != 0 {
		t.Errorf("jump(-5) = %d, want 0", got)
	}
	if got := s.Jump(99); got != 2 {
		t.Errorf("jump(99) = %d, want 2", got)
	}
	if got := s.Jump(1); got != 1 {
		t.Errorf("jump(1) = %d, want 1", got)
	}
	q, ok := s.Current()
	if !ok || q.ID != "q1" {
		t.Errorf("current = %s, want q1", q.ID)
	}
}

func TestSelectPreservesReviewFlag(t *testing.T) {
	s, _ := activeSession(t, 2, time.Minute)

	if _, ok := s.Answer("q0"); ok {
		t.Fatal("answer exists before any interaction")
	}
	if err := s.MarkForReview(true); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := s.Select("b"); err != nil {
		t.Fatalf("select: %v", err)
	}
	a, _ := s.Answer("q0")
	if a.SelectedOption != "b" || !a.MarkedForReview {
		t.Errorf("answer = %+v, want b + marked", a)
	}

	if err := s.Select("z"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("select unknown: err = %v", err)
	}
}

func TestMarkPreservesSelection(t *testing.T) {
	s, _ := activeSession(t, 2, time.Minute)

	s.Select("a")
	s.ToggleReview()
	a, _ := s.Answer("q0")
	if a.SelectedOption != "a" || !a.MarkedForReview {
		t.Errorf("after toggle on: %+v", a)
	}
	s.ToggleReview()
	a, _ = s.Answer("q0")
	if a.SelectedOption != "a" || a.MarkedForReview {
		t.Errorf("after toggle off: %+v", a)
	}
}

func TestClearResponseRemovesEntry(t *testing.T) {
	s, _ := activeSession(t, 2, time.Minute)

	s.Select("a")
	s.MarkForReview(true)
	if err := s.ClearResponse(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := s.Answer("q0"); ok {
		t.Error("answer still present after clear")
	}

	out, err := s.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Breakdown.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", out.Breakdown.Skipped)
	}
}

func TestCountsAndGrid(t *testing.T) {
	s, _ := activeSession(t, 3, time.Minute)
	s.Select("a")
	s.Next()
	s.MarkForReview(true)

	answered, marked := s.Counts()
	if answered != 1 || marked != 1 {
		t.Errorf("counts = %d/%d, want 1/1", answered, marked)
	}

	grid := s.Grid()
	want := []Cell{
		{Index: 0, Answered: true},
		{Index: 1, Marked: true, Current: true},
		{Index: 2},
	}
	for i := range want {
		if grid[i] != want[i] {
			t.Errorf("grid[%d] = %+v, want %+v", i, grid[i], want[i])
		}
	}
}

func TestSubmitRecordsWallClockElapsed(t *testing.T) {
	s, clock := activeSession(t, 3, 10*time.Minute)
	s.Select("a")

	for range 5 {
		s.Tick()
	}
	// The wall clock ran longer than the ticks that were delivered.
	clock.Advance(7 * time.Second)

	out, err := s.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Reason != PhaseSubmitted || s.Phase() != PhaseSubmitted {
		t.Errorf("reason = %v, phase = %v", out.Reason, s.Phase())
	}
	if out.Elapsed != 7*time.Second {
		t.Errorf("elapsed = %v, want 7s", out.Elapsed)
	}
	if out.Breakdown.Correct != 1 || out.Breakdown.Skipped != 2 {
		t.Errorf("breakdown = %+v", out.Breakdown)
	}
	if out.SessionID != "sess" || out.Budget != 10*time.Minute {
		t.Errorf("metadata = %s/%v", out.SessionID, out.Budget)
	}
}

func TestSubmitIsOneShot(t *testing.T) {
	s, _ := activeSession(t, 2, time.Minute)

	if _, err := s.Submit(); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrAlreadyFinished) {
		t.Errorf("second submit: err = %v, want ErrAlreadyFinished", err)
	}
	if out, ok := s.Tick(); ok || out != nil {
		t.Error("tick after submit produced an outcome")
	}
	if err := s.Select("a"); !errors.Is(err, ErrNotActive) {
		t.Errorf("select after submit: err = %v", err)
	}
}

func TestTickTimesOut(t *testing.T) {
	s, clock := activeSession(t, 2, 3*time.Second)

	for i := range 2 {
		clock.Advance(time.Second)
		if _, ok := s.Tick(); ok {
			t.Fatalf("timed out early at tick %d", i)
		}
	}
	clock.Advance(time.Second)
	out, ok := s.Tick()
	if !ok {
		t.Fatal("expected timeout on third tick")
	}
	if out.Reason != PhaseTimedOut || s.Phase() != PhaseTimedOut {
		t.Errorf("reason = %v", out.Reason)
	}
	if s.Remaining() != 0 {
		t.Errorf("remaining = %v, want 0", s.Remaining())
	}
	if out.Breakdown.Skipped != 2 || out.Breakdown.RawScore != 0 {
		t.Errorf("empty timeout breakdown = %+v", out.Breakdown)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrAlreadyFinished) {
		t.Errorf("submit after timeout: err = %v", err)
	}
}

func TestConcurrentTickAndSubmitProduceOneOutcome(t *testing.T) {
	for round := range 50 {
		s, _ := activeSession(t, 5, 2*time.Second)
		s.Tick() // one second left

		var outcomes atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})

		for range 4 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				<-start
				if _, ok := s.Tick(); ok {
					outcomes.Add(1)
				}
			}()
			go func() {
				defer wg.Done()
				<-start
				if out, err := s.Submit(); err == nil && out != nil {
					outcomes.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		if n := outcomes.Load(); n != 1 {
			t.Fatalf("round %d: %d outcomes, want 1", round, n)
		}
	}
}

func TestCloseDiscardsState(t *testing.T) {
	s, _ := activeSession(t, 2, time.Minute)
	s.Select("a")
	s.Close()

	if s.Phase() != PhaseClosed {
		t.Errorf("phase = %v, want closed", s.Phase())
	}
	if len(s.Answers()) != 0 || s.Len() != 0 {
		t.Error("state kept after close")
	}
	if _, err := s.Submit(); !errors.Is(err, ErrAlreadyFinished) {
		t.Errorf("submit after close: err = %v", err)
	}
}

func TestConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if !DefaultConfig().IsPreset() {
		t.Error("default config should be a preset")
	}
	if err := (Config{QuestionCount: 0, Duration: time.Minute}).Validate(); err == nil {
		t.Error("zero questions accepted")
	}
	if err := (Config{QuestionCount: 5, Duration: 0}).Validate(); err == nil {
		t.Error("zero duration accepted")
	}
	if (Config{QuestionCount: 7, Duration: 10 * time.Minute}).IsPreset() {
		t.Error("7 questions reported as preset")
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{
		PhaseLoading:   "loading",
		PhaseActive:    "active",
		PhaseSubmitted: "submitted",
		PhaseTimedOut:  "timed_out",
		PhaseClosed:    "closed",
		PhaseNoContent: "no_content",
		Phase(42):      "unknown",
	} {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
	if !PhaseTimedOut.Finished() || PhaseClosed.Finished() {
		t.Error("Finished() wrong")
	}
}
