package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/payload"
	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/scoring"
	"github.com/abhisek/prepiz/internal/screens/review"
	"github.com/abhisek/prepiz/internal/store"
)

type fakeLister struct {
	recs []store.AttemptRecord
	err  error
}

func (f fakeLister) Recent(_ context.Context, limit int) ([]store.AttemptRecord, error) {
	return f.recs, f.err
}

func attempt(t *testing.T, subject string, pct float64) store.AttemptRecord {
	t.Helper()
	qs := []questionbank.Question{{ID: "q1", Text: "?", Options: []questionbank.Option{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}, CorrectAnswer: "a", Marks: 2}}
	blob, err := payload.Encode(qs, scoring.Answers{"q1": {QuestionID: "q1", SelectedOption: "a"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return store.AttemptRecord{
		ID:             1,
		Subject:        subject,
		CreatedAt:      time.Date(2026, 9, 3, 10, 0, 0, 0, time.Local),
		Payload:        blob,
		TotalQuestions: 1,
		CorrectCount:   1,
		Percentage:     pct,
		TimeTakenSecs:  125,
	}
}

func loaded(t *testing.T, l Lister) *HistoryScreen {
	t.Helper()
	s := New(l)
	s.Update(s.Init()())
	return s
}

func TestListsAttempts(t *testing.T) {
	s := loaded(t, fakeLister{recs: []store.AttemptRecord{attempt(t, "Polity", 80), attempt(t, "History", 40)}})

	view := s.View(120, 30)
	for _, want := range []string{"Sep 03, 2026", "Polity", "History", "80.0%", "2:05"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptyAndError(t *testing.T) {
	if view := loaded(t, fakeLister{}).View(120, 30); !strings.Contains(view, "No tests taken yet") {
		t.Errorf("empty view:\n%s", view)
	}
	if view := loaded(t, fakeLister{err: errors.New("locked")}).View(120, 30); !strings.Contains(view, "locked") {
		t.Errorf("error view:\n%s", view)
	}
}

func TestEnterOpensReview(t *testing.T) {
	s := loaded(t, fakeLister{recs: []store.AttemptRecord{attempt(t, "Polity", 80)}})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*review.ReviewScreen); !ok {
		t.Errorf("pushed %T, want review", msg.Screen)
	}
}

func TestCorruptPayloadShowsNotice(t *testing.T) {
	rec := attempt(t, "Polity", 80)
	rec.Payload = []byte("{")
	s := loaded(t, fakeLister{recs: []store.AttemptRecord{rec}})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := cmd().(router.PushScreenMsg)
	if _, ok := msg.Screen.(*review.ReviewScreen); ok {
		t.Error("corrupt payload should not open review")
	}
}

func TestSelectionBounds(t *testing.T) {
	s := loaded(t, fakeLister{recs: []store.AttemptRecord{attempt(t, "Polity", 80), attempt(t, "History", 40)}})
	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
}
