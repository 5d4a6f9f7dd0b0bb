// Package practice wires a quiz session to the question bank on the way in
// and to attempt storage, usage tracking and the activity feed on the way out.
package practice

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/prepiz/internal/payload"
	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/scoring"
	"github.com/abhisek/prepiz/internal/store"
)

// QuestionSource produces the candidate pool for a scope.
type QuestionSource interface {
	LoadScope(scope questionbank.Scope) []questionbank.Question
}

// StudyRecorder accumulates study time.
type StudyRecorder interface {
	AddStudy(ctx context.Context, d time.Duration) error
}

// Result is what the result screen shows after a session ends.
type Result struct {
	Outcome   *quiz.Outcome
	AttemptID int64
	Saved     bool
}

// Service starts and completes quiz sessions.
type Service struct {
	source   QuestionSource
	attempts store.AttemptRepo
	study    StudyRecorder
	activity store.ActivityRepo
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRand fixes the sampling source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock overrides the clock passed to new sessions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service. A nil logger discards output.
func NewService(source QuestionSource, attempts store.AttemptRepo, study StudyRecorder, activity store.ActivityRepo, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		source:   source,
		attempts: attempts,
		study:    study,
		activity: activity,
		logger:   logger.Named("practice"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin loads the pool for scope, samples cfg.QuestionCount questions and
// starts a session. When the pool is empty the returned session is in the
// NoContent phase and the error is quiz.ErrNoContent.
func (s *Service) Begin(ctx context.Context, scope questionbank.Scope, cfg quiz.Config) (*quiz.Session, error) {
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scope: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quiz config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess := quiz.New(scope, cfg.Duration, quiz.WithClock(s.now))
	pool := s.source.LoadScope(scope)

	s.mu.Lock()
	picked := questionbank.Sample(pool, cfg.QuestionCount, s.rng)
	s.mu.Unlock()

	if err := sess.Start(picked); err != nil {
		if errors.Is(err, quiz.ErrNoContent) {
			s.logger.Info("no questions for scope", zap.String("scope", scope.Label()))
		}
		return sess, err
	}
	s.logger.Info("quiz started",
		zap.String("session_id", sess.ID()),
		zap.String("scope", scope.Label()),
		zap.Int("pool", len(pool)),
		zap.Int("questions", len(picked)),
		zap.Duration("budget", cfg.Duration),
	)
	return sess, nil
}

// Complete persists the outcome as an attempt, then records study time and
// an activity entry. A storage failure is logged and returned together with
// a Result whose Saved flag is false so the caller can show the score and
// offer a retry. Usage and activity failures are logged only.
func (s *Service) Complete(ctx context.Context, out *quiz.Outcome) (*Result, error) {
	res := &Result{Outcome: out}
	log := s.logger.With(zap.String("session_id", out.SessionID))

	blob, err := payload.Encode(out.Questions, out.Answers)
	if err != nil {
		log.Error("encode attempt payload", zap.Error(err))
		return res, err
	}

	rec := AttemptFromOutcome(out, blob)
	id, err := s.attempts.Record(ctx, rec)
	if err != nil {
		log.Error("save attempt", zap.Error(err))
		return res, fmt.Errorf("save attempt: %w", err)
	}
	res.AttemptID = id
	res.Saved = true
	log.Info("attempt saved",
		zap.Int64("attempt_id", id),
		zap.Stringer("reason", out.Reason),
		zap.Float64("percentage", out.Breakdown.Percentage),
	)

	if err := s.study.AddStudy(ctx, out.Elapsed); err != nil {
		log.Warn("record study time", zap.Error(err))
	}
	desc := fmt.Sprintf("Completed %s test: %.0f%%", out.Scope.Label(), out.Breakdown.Percentage)
	if err := s.activity.Append(ctx, "test_attempt", desc, out.FinishedAt); err != nil {
		log.Warn("append activity", zap.Error(err))
	}
	return res, nil
}

// AttemptFromOutcome maps a finished session onto the stored attempt row.
func AttemptFromOutcome(out *quiz.Outcome, blob []byte) store.AttemptRecord {
	rec := store.AttemptRecord{
		SessionID:      out.SessionID,
		Mode:           string(out.Scope.Mode),
		CreatedAt:      out.FinishedAt,
		Payload:        blob,
		PayloadVersion: payload.Version,
		TotalQuestions: out.Breakdown.Total,
		CorrectCount:   out.Breakdown.Correct,
		WrongCount:     out.Breakdown.Wrong,
		SkippedCount:   out.Breakdown.Skipped,
		Score:          out.Breakdown.RawScore,
		Percentage:     out.Breakdown.Percentage,
		TimeTakenSecs:  int(out.Elapsed.Round(time.Second) / time.Second),
	}
	switch out.Scope.Mode {
	case questionbank.ModeUnit:
		rec.Subject = questionbank.DisplayName(out.Scope.Subject)
		rec.Unit = out.Scope.Unit
	case questionbank.ModePaper:
		rec.Paper = out.Scope.Paper
	default:
		rec.Subject = questionbank.DisplayName(out.Scope.Subject)
	}
	return rec
}

// Review decodes a stored attempt into per-question review rows.
func Review(rec store.AttemptRecord) ([]scoring.ReviewItem, error) {
	p, err := payload.Decode(rec.Payload)
	if err != nil {
		return nil, fmt.Errorf("attempt %d: %w", rec.ID, err)
	}
	return scoring.Review(p.Questions, p.AnswerMap()), nil
}

// RunCountdown drives sess.Tick from ticks until the session ends, ctx is
// done or ticks is closed. It returns the Outcome only when the timer ended
// the session; if something else finished it first the result is nil.
func RunCountdown(ctx context.Context, sess *quiz.Session, ticks <-chan time.Time) (*quiz.Outcome, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil, nil
			}
			if out, done := sess.Tick(); done {
				return out, nil
			}
			if sess.Phase() != quiz.PhaseActive {
				return nil, nil
			}
		}
	}
}
