// Package quiz holds the timed question-answering state machine:
// Loading -> Active -> {Submitted, TimedOut} -> Closed.
package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/scoring"
)

// TickInterval is the countdown cadence.
const TickInterval = time.Second

var (
	// ErrNoContent is returned by Start when the question set is empty.
	ErrNoContent = errors.New("quiz: no questions available for this scope")

	// ErrNotActive is returned by mutations outside the Active phase.
	ErrNotActive = errors.New("quiz: session is not active")

	// ErrAlreadyFinished is returned by Submit after the session ended.
	ErrAlreadyFinished = errors.New("quiz: session already finished")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("quiz: session already started")

	// ErrUnknownOption is returned when selecting an option the question lacks.
	ErrUnknownOption = errors.New("quiz: option not offered by question")
)

// Outcome is produced exactly once, by whichever of Submit or Tick ends
// the session.
type Outcome struct {
	SessionID  string
	Scope      questionbank.Scope
	Reason     Phase // PhaseSubmitted or PhaseTimedOut
	Questions  []questionbank.Question
	Answers    scoring.Answers
	Breakdown  scoring.Breakdown
	StartedAt  time.Time
	FinishedAt time.Time
	Elapsed    time.Duration // wall clock between start and finish
	Budget     time.Duration
}

// Cell is the overview state of one question for the navigation grid.
type Cell struct {
	Index    int
	Answered bool
	Marked   bool
	Current  bool
}

// Session is one quiz run. All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id     string
	scope  questionbank.Scope
	budget time.Duration
	now    func() time.Time

	phase     Phase
	questions []questionbank.Question
	current   int
	answers   scoring.Answers
	remaining time.Duration
	startedAt time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the wall clock used for start and finish times.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID sets the session ID instead of generating a UUID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates a session in the Loading phase.
func New(scope questionbank.Scope, budget time.Duration, opts ...Option) *Session {
	s := &Session{
		scope:  scope,
		budget: budget,
		now:    time.Now,
		phase:  PhaseLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	return s
}

// Start moves the session to Active with the given questions and records
// the start time. An empty set moves it to NoContent and returns ErrNoContent.
func (s *Session) Start(questions []questionbank.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLoading {
		return ErrAlreadyStarted
	}
	if len(questions) == 0 {
		s.phase = PhaseNoContent
		return ErrNoContent
	}

	s.questions = make([]questionbank.Question, len(questions))
	copy(s.questions, questions)
	s.answers = make(scoring.Answers)
	s.current = 0
	s.remaining = s.budget
	s.startedAt = s.now()
	s.phase = PhaseActive
	return nil
}

func (s *Session) ID() string                { return s.id }
func (s *Session) Scope() questionbank.Scope { return s.scope }
func (s *Session) Budget() time.Duration     { return s.budget }

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Len returns the number of questions served.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Questions returns a copy of the served questions.
func (s *Session) Questions() []questionbank.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]questionbank.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Index returns the current position.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Current returns the question at the current position.
func (s *Session) Current() (questionbank.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return questionbank.Question{}, false
	}
	return s.questions[s.current], true
}

// Remaining returns the unspent time budget.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// StartedAt returns when the session became Active.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// Next moves forward one question and returns the new index.
func (s *Session) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveTo(s.current + 1)
}

// Prev moves back one question and returns the new index.
func (s *Session) Prev() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveTo(s.current - 1)
}

// Jump moves to i and returns the new index.
func (s *Session) Jump(i int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveTo(i)
}

// moveTo clamps i to the question range. It is a no-op outside the
// Active phase.
func (s *Session) moveTo(i int) int {
	if s.phase != PhaseActive {
		return s.current
	}
	s.current = max(0, min(i, len(s.questions)-1))
	return s.current
}

// Select records optionID as the answer to the current question. The
// review flag is kept.
func (s *Session) Select(optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	q := s.questions[s.current]
	if _, ok := q.Option(optionID); !ok {
		return ErrUnknownOption
	}
	a := s.answers[q.ID]
	a.QuestionID = q.ID
	a.SelectedOption = optionID
	s.answers[q.ID] = a
	return nil
}

// ClearResponse drops the stored answer for the current question,
// including its review flag.
func (s *Session) ClearResponse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	delete(s.answers, s.questions[s.current].ID)
	return nil
}

// MarkForReview sets the review flag of the current question. The
// selection is kept.
func (s *Session) MarkForReview(marked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	s.setReview(marked)
	return nil
}

// ToggleReview flips the review flag of the current question.
func (s *Session) ToggleReview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	id := s.questions[s.current].ID
	s.setReview(!s.answers[id].MarkedForReview)
	return nil
}

func (s *Session) setReview(marked bool) {
	id := s.questions[s.current].ID
	a := s.answers[id]
	a.QuestionID = id
	a.MarkedForReview = marked
	s.answers[id] = a
}

// Answer returns the stored answer for a question ID.
func (s *Session) Answer(questionID string) (scoring.UserAnswer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[questionID]
	return a, ok
}

// Answers returns a copy of all stored answers.
func (s *Session) Answers() scoring.Answers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

// Counts returns how many questions are answered and marked for review.
func (s *Session) Counts() (answered, marked int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.answers {
		if a.Answered() {
			answered++
		}
		if a.MarkedForReview {
			marked++
		}
	}
	return answered, marked
}

// Grid returns one cell per question for the overview.
func (s *Session) Grid() []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	cells := make([]Cell, len(s.questions))
	for i, q := range s.questions {
		a := s.answers[q.ID]
		cells[i] = Cell{
			Index:    i,
			Answered: a.Answered(),
			Marked:   a.MarkedForReview,
			Current:  i == s.current,
		}
	}
	return cells
}

// Tick spends one TickInterval of the budget. When the budget runs out the
// session times out and the Outcome is returned with ok set. Ticks outside
// the Active phase do nothing.
func (s *Session) Tick() (out *Outcome, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseActive {
		return nil, false
	}
	s.remaining -= TickInterval
	if s.remaining > 0 {
		return nil, false
	}
	s.remaining = 0
	return s.finish(PhaseTimedOut), true
}

// Submit ends the session on user request. Only the first of Submit or a
// timing-out Tick produces an Outcome; later calls get ErrAlreadyFinished.
func (s *Session) Submit() (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case PhaseActive:
		return s.finish(PhaseSubmitted), nil
	case PhaseSubmitted, PhaseTimedOut, PhaseClosed:
		return nil, ErrAlreadyFinished
	default:
		return nil, ErrNotActive
	}
}

// finish must be called with mu held and phase Active.
func (s *Session) finish(reason Phase) *Outcome {
	s.phase = reason
	finished := s.now()
	questions := make([]questionbank.Question, len(s.questions))
	copy(questions, s.questions)
	answers := s.answers.Clone()

	return &Outcome{
		SessionID:  s.id,
		Scope:      s.scope,
		Reason:     reason,
		Questions:  questions,
		Answers:    answers,
		Breakdown:  scoring.Score(questions, answers),
		StartedAt:  s.startedAt,
		FinishedAt: finished,
		Elapsed:    finished.Sub(s.startedAt),
		Budget:     s.budget,
	}
}

// Close discards the session state. Closing an Active session abandons it
// without an Outcome.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseClosed
	s.questions = nil
	s.answers = nil
	s.current = 0
}
