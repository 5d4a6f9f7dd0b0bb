// Package usage accumulates daily study time and maintains the
// consecutive study-day streak.
package usage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/prepiz/internal/store"
)

// DateLayout is the key format of a study day, in local time.
const DateLayout = "2006-01-02"

// WeekDays is the number of days covered by WeekStudy, today included.
const WeekDays = 7

// NextStreak applies the streak rule for a study session on today:
// same day keeps the streak, the day after extends it, anything else
// (including no previous record) starts over at 1.
func NextStreak(lastDate string, count int, today time.Time) (string, int) {
	todayKey := today.Format(DateLayout)
	switch lastDate {
	case todayKey:
		return lastDate, max(count, 1)
	case today.AddDate(0, 0, -1).Format(DateLayout):
		return todayKey, count + 1
	default:
		return todayKey, 1
	}
}

// Tracker records study time against the usage repository.
type Tracker struct {
	mu   sync.Mutex
	repo store.UsageRepo
	now  func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the clock used to pick the current day.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a Tracker over repo.
func NewTracker(repo store.UsageRepo, opts ...Option) *Tracker {
	t := &Tracker{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddStudy adds d to today's total and advances the streak.
func (t *Tracker) AddStudy(ctx context.Context, d time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.now()
	if d > 0 {
		if err := t.repo.AddStudy(ctx, today.Format(DateLayout), d); err != nil {
			return fmt.Errorf("add study time: %w", err)
		}
	}

	last, count, err := t.repo.Streak(ctx)
	if err != nil {
		return fmt.Errorf("read streak: %w", err)
	}
	nextDate, nextCount := NextStreak(last, count, today)
	if nextDate == last && nextCount == count {
		return nil
	}
	if err := t.repo.SaveStreak(ctx, nextDate, nextCount); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// TodayStudy returns the study time recorded today.
func (t *Tracker) TodayStudy(ctx context.Context) (time.Duration, error) {
	return t.repo.Study(ctx, t.now().Format(DateLayout))
}

// WeekStudy returns the study time of the last WeekDays days.
func (t *Tracker) WeekStudy(ctx context.Context) (time.Duration, error) {
	today := t.now()
	days := make([]string, WeekDays)
	for i := range days {
		days[i] = today.AddDate(0, 0, -i).Format(DateLayout)
	}
	return t.repo.Study(ctx, days...)
}

// Streak returns the stored streak count.
func (t *Tracker) Streak(ctx context.Context) (int, error) {
	_, count, err := t.repo.Streak(ctx)
	return count, err
}

// FormatDuration renders study time as "1h 05m" or "12m".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
