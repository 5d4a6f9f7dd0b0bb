package quiz

import (
	"fmt"
	"slices"
	"time"
)

// QuestionCountOptions are the question counts offered in the setup screen.
var QuestionCountOptions = []int{5, 10, 15, 20, 25}

// DurationOptions are the time budgets offered in the setup screen.
var DurationOptions = []time.Duration{
	10 * time.Minute,
	15 * time.Minute,
	20 * time.Minute,
	25 * time.Minute,
	30 * time.Minute,
}

// Config controls the size and time budget of a session.
type Config struct {
	QuestionCount int
	Duration      time.Duration
}

// DefaultConfig returns 15 questions in 30 minutes.
func DefaultConfig() Config {
	return Config{QuestionCount: 15, Duration: 30 * time.Minute}
}

// Validate rejects non-positive counts and durations shorter than a tick.
func (c Config) Validate() error {
	if c.QuestionCount <= 0 {
		return fmt.Errorf("question count must be positive, got %d", c.QuestionCount)
	}
	if c.Duration < TickInterval {
		return fmt.Errorf("duration must be at least %s, got %s", TickInterval, c.Duration)
	}
	return nil
}

// IsPreset reports whether both values are among the offered options.
func (c Config) IsPreset() bool {
	return slices.Contains(QuestionCountOptions, c.QuestionCount) &&
		slices.Contains(DurationOptions, c.Duration)
}
