package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/dashboard"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// Mood selects which owl is shown next to the menu.
type Mood int

const (
	MoodIdle        Mood = iota
	MoodCelebrating      // a week long streak
	MoodAlert            // weak subjects need attention
)

// celebrateStreak is the streak at which the owl celebrates.
const celebrateStreak = 7

const owlIdle = ` ,___,
 (O,O)
 /)_)
  ""`

const owlCelebrating = ` ,___,
 (★,★)
 /)_)  ✦
  ""`

const owlAlert = ` ,___,
 (O,O) !
 /)_)
  ""`

// moodOf picks the owl for a summary. Celebration wins over an alert.
func moodOf(s *dashboard.Summary) Mood {
	switch {
	case s.Streak >= celebrateStreak:
		return MoodCelebrating
	case len(s.WeakAreas) > 0:
		return MoodAlert
	default:
		return MoodIdle
	}
}

// RenderMascot returns the owl art for the given mood.
func RenderMascot(m Mood) string {
	art, fg := owlIdle, theme.Primary
	switch m {
	case MoodCelebrating:
		art, fg = owlCelebrating, theme.Warning
	case MoodAlert:
		art, fg = owlAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
