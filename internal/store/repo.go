package store

import (
	"context"
	"time"
)

// AttemptRecord is one persisted quiz attempt.
type AttemptRecord struct {
	ID             int64
	SessionID      string
	Mode           string
	Subject        string // empty when not applicable
	Unit           string
	Paper          string
	CreatedAt      time.Time
	Payload        []byte
	PayloadVersion string
	TotalQuestions int
	CorrectCount   int
	WrongCount     int
	SkippedCount   int
	Score          float64
	Percentage     float64
	TimeTakenSecs  int
}

// WeakArea is a subject whose mean percentage sits below a threshold.
type WeakArea struct {
	Subject       string
	AvgPercentage float64
	Attempts      int
}

// AttemptRepo persists and aggregates quiz attempts.
type AttemptRepo interface {
	// Record inserts the attempt and returns its new ID.
	Record(ctx context.Context, rec AttemptRecord) (int64, error)

	// Get returns the attempt with the given ID or ErrNotFound.
	Get(ctx context.Context, id int64) (*AttemptRecord, error)

	// Count returns the number of stored attempts.
	Count(ctx context.Context) (int, error)

	// AveragePercentage returns the mean percentage, 0 when empty.
	AveragePercentage(ctx context.Context) (float64, error)

	// BestPercentage returns the highest percentage, 0 when empty.
	BestPercentage(ctx context.Context) (float64, error)

	// AverageTimeSeconds returns the mean time taken, 0 when empty.
	AverageTimeSeconds(ctx context.Context) (float64, error)

	// Recent returns up to limit attempts, newest first.
	Recent(ctx context.Context, limit int) ([]AttemptRecord, error)

	// ByMode returns all attempts of one mode, newest first.
	ByMode(ctx context.Context, mode string) ([]AttemptRecord, error)

	// WeakAreas groups attempts with a subject by subject and returns the
	// groups whose mean percentage is strictly below threshold, weakest first.
	WeakAreas(ctx context.Context, threshold float64, limit int) ([]WeakArea, error)
}

// TrackingStatus is the completion state of a syllabus item.
type TrackingStatus string

const (
	StatusNotStarted TrackingStatus = "not_started"
	StatusInProgress TrackingStatus = "in_progress"
	StatusCompleted  TrackingStatus = "completed"
)

// TrackingRecord is the persisted state of one syllabus item.
type TrackingRecord struct {
	ItemID    string
	Subject   string
	Unit      string
	SubTopic  string
	Name      string
	Status    TrackingStatus
	UpdatedAt time.Time
}

// SubjectCount is the per-subject completed/total tally of tracking items.
type SubjectCount struct {
	Subject   string
	Completed int
	Total     int
}

// TrackingRepo stores syllabus item completion.
type TrackingRepo interface {
	// Seed inserts items that are not yet known. Existing rows keep their status.
	Seed(ctx context.Context, items []TrackingRecord) error

	// SetStatus updates one item. Returns ErrNotFound for unknown IDs.
	SetStatus(ctx context.Context, itemID string, status TrackingStatus, at time.Time) error

	// Statuses returns the status of every known item keyed by ID.
	Statuses(ctx context.Context) (map[string]TrackingStatus, error)

	// Count returns the number of tracked items.
	Count(ctx context.Context) (int, error)

	// CompletedCount returns the number of completed items.
	CompletedCount(ctx context.Context) (int, error)

	// BySubject returns completed/total per subject, ordered by subject.
	BySubject(ctx context.Context) ([]SubjectCount, error)

	// Upcoming returns up to limit items that are not completed,
	// most recently touched first.
	Upcoming(ctx context.Context, limit int) ([]TrackingRecord, error)
}

// UsageRepo stores per-day study time and the study streak.
type UsageRepo interface {
	// AddStudy adds d to the total for day (YYYY-MM-DD).
	AddStudy(ctx context.Context, day string, d time.Duration) error

	// Study returns the accumulated study time for each requested day.
	// Days without a row are reported as zero.
	Study(ctx context.Context, days ...string) (time.Duration, error)

	// Streak returns the last study day and the streak count.
	// Both are zero values when no streak was ever recorded.
	Streak(ctx context.Context) (lastDate string, count int, err error)

	// SaveStreak overwrites the streak row.
	SaveStreak(ctx context.Context, lastDate string, count int) error
}

// PreferenceRepo is a small key/value store for settings.
type PreferenceRepo interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}

// ActivityRecord is one entry of the activity feed.
type ActivityRecord struct {
	ID          int64
	Kind        string
	Description string
	CreatedAt   time.Time
}

// ActivityRepo is the append-only activity feed.
type ActivityRepo interface {
	// Append adds an entry.
	Append(ctx context.Context, kind, description string, at time.Time) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]ActivityRecord, error)
}
