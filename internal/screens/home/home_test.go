package home

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/dashboard"
	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screens/history"
	"github.com/abhisek/prepiz/internal/store"
)

type fakeLoader struct {
	summary *dashboard.Summary
	err     error
	calls   int
}

func (f *fakeLoader) Summary(context.Context) (*dashboard.Summary, error) {
	f.calls++
	return f.summary, f.err
}

type fakeAttempts struct{}

func (fakeAttempts) Recent(context.Context, int) ([]store.AttemptRecord, error) {
	return nil, nil
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSummary() *dashboard.Summary {
	now := time.Now()
	return &dashboard.Summary{
		OverallProgress: 25,
		CompletedItems:  7,
		TotalItems:      28,
		Subjects: []dashboard.SubjectProgress{
			{Subject: "History", Completed: 3, Total: 6, Percentage: 50},
			{Subject: "Polity", Completed: 0, Total: 5, Percentage: 0},
		},
		Tests: dashboard.TestStats{Total: 2, AvgPercentage: 45, BestPercentage: 70, AvgTimeMinutes: 12.5},
		Recent: []store.AttemptRecord{
			{ID: 2, Mode: "unit", Subject: "polity", Unit: "Parliament", Percentage: 70, CreatedAt: now},
			{ID: 1, Mode: "subject", Subject: "economy", Percentage: 20, CreatedAt: now.Add(-time.Hour)},
		},
		WeakAreas: []store.WeakArea{{Subject: "economy", AvgPercentage: 20, Attempts: 1}},
		Upcoming:  []store.TrackingRecord{{ItemID: "pol-111", Name: "Preamble", Subject: "Polity"}},
		Activity:  []store.ActivityRecord{{Description: "Completed a Polity test", CreatedAt: now}},
		Streak:    3,
	}
}

func TestInitLoadsSummary(t *testing.T) {
	loader := &fakeLoader{summary: testSummary()}
	h := New(Deps{Dashboard: loader})

	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	h.Update(cmd())
	if h.summary == nil || h.summary.Streak != 3 {
		t.Fatalf("summary not stored: %+v", h.summary)
	}

	view := h.View(120, 40)
	for _, want := range []string{"SYLLABUS", "2 TESTS", "History", "Parliament", "Economy 20%", "Preamble", "Completed a Polity test"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLoadErrorShown(t *testing.T) {
	h := New(Deps{Dashboard: &fakeLoader{err: errors.New("db locked")}})
	h.Update(h.Init()())
	if !strings.Contains(h.errMsg, "db locked") {
		t.Errorf("errMsg = %q", h.errMsg)
	}
	if !strings.Contains(h.View(120, 40), "db locked") {
		t.Error("error not rendered")
	}
}

func TestRefreshReloads(t *testing.T) {
	loader := &fakeLoader{summary: testSummary()}
	h := New(Deps{Dashboard: loader})
	h.Update(h.Init()())
	h.Update(h.Refresh()())
	if loader.calls != 2 {
		t.Errorf("Summary called %d times, want 2", loader.calls)
	}
}

func TestMissingDepsDisableEntries(t *testing.T) {
	h := New(Deps{Attempts: fakeAttempts{}})

	// START TEST and SYLLABUS are disabled, so HISTORY is selected first.
	item, _ := h.menu.Current()
	if item.Label != "HISTORY" {
		t.Fatalf("first selectable = %q, want HISTORY", item.Label)
	}

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want history", msg.Screen)
	}

	if h.Init() != nil {
		t.Error("no dashboard should mean no load command")
	}
}

func TestQuitEntry(t *testing.T) {
	h := New(Deps{})
	item, _ := h.menu.Current()
	if item.Label != "QUIT" {
		t.Fatalf("only QUIT should be enabled, got %q", item.Label)
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("QUIT did not quit")
	}
}

func TestCompactView(t *testing.T) {
	h := New(Deps{Dashboard: &fakeLoader{summary: testSummary()}})
	h.Update(h.Init()())
	view := h.View(80, 18)
	if !strings.Contains(view, "★3") || !strings.Contains(view, "START TEST") {
		t.Errorf("compact view missing stats or menu:\n%s", view)
	}
}

func TestMoodOf(t *testing.T) {
	tests := []struct {
		name string
		s    dashboard.Summary
		want Mood
	}{
		{"idle", dashboard.Summary{}, MoodIdle},
		{"weak", dashboard.Summary{WeakAreas: []store.WeakArea{{Subject: "economy"}}}, MoodAlert},
		{"streak", dashboard.Summary{Streak: 7, WeakAreas: []store.WeakArea{{Subject: "economy"}}}, MoodCelebrating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moodOf(&tt.s); got != tt.want {
				t.Errorf("moodOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-50 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		if got := ago(tt.t, now); got != tt.want {
			t.Errorf("ago(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
