// Package dashboard composes the read-only statistics shown on the home
// screen and by the stats command.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/prepiz/internal/store"
)

// StudyStats is the usage view the dashboard needs.
type StudyStats interface {
	TodayStudy(ctx context.Context) (time.Duration, error)
	WeekStudy(ctx context.Context) (time.Duration, error)
	Streak(ctx context.Context) (int, error)
}

// Config bounds the list sections of the summary.
type Config struct {
	RecentLimit   int
	WeakLimit     int
	WeakThreshold float64
	UpcomingLimit int
	ActivityLimit int
}

// DefaultConfig returns the limits used by the home screen.
func DefaultConfig() Config {
	return Config{
		RecentLimit:   5,
		WeakLimit:     3,
		WeakThreshold: 60,
		UpcomingLimit: 5,
		ActivityLimit: 10,
	}
}

// SubjectProgress is the completion of one syllabus subject.
type SubjectProgress struct {
	Subject    string
	Completed  int
	Total      int
	Percentage float64
}

// TestStats summarizes all attempts.
type TestStats struct {
	Total          int
	AvgPercentage  float64
	BestPercentage float64
	AvgTimeMinutes float64
}

// Summary is everything the home screen shows.
type Summary struct {
	OverallProgress float64
	CompletedItems  int
	TotalItems      int
	Subjects        []SubjectProgress
	Tests           TestStats
	Recent          []store.AttemptRecord
	WeakAreas       []store.WeakArea
	Upcoming        []store.TrackingRecord
	Activity        []store.ActivityRecord
	TodayStudy      time.Duration
	WeekStudy       time.Duration
	Streak          int
}

// Aggregator runs the dashboard queries.
type Aggregator struct {
	attempts store.AttemptRepo
	tracking store.TrackingRepo
	activity store.ActivityRepo
	study    StudyStats
	cfg      Config
}

// New creates an Aggregator.
func New(attempts store.AttemptRepo, tracking store.TrackingRepo, activity store.ActivityRepo, study StudyStats, cfg Config) *Aggregator {
	return &Aggregator{
		attempts: attempts,
		tracking: tracking,
		activity: activity,
		study:    study,
		cfg:      cfg,
	}
}

// Percent returns part/whole*100, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Summary runs every section query concurrently. The first failure
// cancels the rest and is returned.
func (a *Aggregator) Summary(ctx context.Context) (*Summary, error) {
	var s Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.CompletedItems, s.TotalItems, s.OverallProgress, err = a.OverallProgress(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Subjects, err = a.SubjectProgress(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Tests, err = a.TestStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Recent, err = a.attempts.Recent(ctx, a.cfg.RecentLimit)
		return err
	})
	g.Go(func() (err error) {
		s.WeakAreas, err = a.attempts.WeakAreas(ctx, a.cfg.WeakThreshold, a.cfg.WeakLimit)
		return err
	})
	g.Go(func() (err error) {
		s.Upcoming, err = a.tracking.Upcoming(ctx, a.cfg.UpcomingLimit)
		return err
	})
	g.Go(func() (err error) {
		s.Activity, err = a.activity.Recent(ctx, a.cfg.ActivityLimit)
		return err
	})
	g.Go(func() error {
		var err error
		if s.TodayStudy, err = a.study.TodayStudy(ctx); err != nil {
			return err
		}
		if s.WeekStudy, err = a.study.WeekStudy(ctx); err != nil {
			return err
		}
		s.Streak, err = a.study.Streak(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &s, nil
}

// OverallProgress returns completed and total tracking items and their
// percentage.
func (a *Aggregator) OverallProgress(ctx context.Context) (completed, total int, pct float64, err error) {
	if total, err = a.tracking.Count(ctx); err != nil {
		return 0, 0, 0, err
	}
	if completed, err = a.tracking.CompletedCount(ctx); err != nil {
		return 0, 0, 0, err
	}
	return completed, total, Percent(completed, total), nil
}

// SubjectProgress returns per-subject completion, best first.
func (a *Aggregator) SubjectProgress(ctx context.Context) ([]SubjectProgress, error) {
	counts, err := a.tracking.BySubject(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SubjectProgress, len(counts))
	for i, c := range counts {
		out[i] = SubjectProgress{
			Subject:    c.Subject,
			Completed:  c.Completed,
			Total:      c.Total,
			Percentage: Percent(c.Completed, c.Total),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out, nil
}

// TestStats returns count, mean, best and mean time over all attempts.
func (a *Aggregator) TestStats(ctx context.Context) (TestStats, error) {
	var (
		ts  TestStats
		err error
	)
	if ts.Total, err = a.attempts.Count(ctx); err != nil {
		return TestStats{}, err
	}
	if ts.AvgPercentage, err = a.attempts.AveragePercentage(ctx); err != nil {
		return TestStats{}, err
	}
	if ts.BestPercentage, err = a.attempts.BestPercentage(ctx); err != nil {
		return TestStats{}, err
	}
	secs, err := a.attempts.AverageTimeSeconds(ctx)
	if err != nil {
		return TestStats{}, err
	}
	ts.AvgTimeMinutes = secs / 60
	return ts, nil
}
