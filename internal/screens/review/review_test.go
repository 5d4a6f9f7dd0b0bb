package review

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/scoring"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testItems() []scoring.ReviewItem {
	q := func(id, text string) questionbank.Question {
		return questionbank.Question{
			ID:            id,
			Text:          text,
			Options:       []questionbank.Option{{ID: "a", Text: "Alpha"}, {ID: "b", Text: "Beta"}},
			CorrectAnswer: "a",
			Explanation:   "Alpha is right.",
			Marks:         2,
		}
	}
	questions := []questionbank.Question{q("q1", "First?"), q("q2", "Second?"), q("q3", "Third?")}
	answers := scoring.Answers{
		"q1": {QuestionID: "q1", SelectedOption: "a"},
		"q2": {QuestionID: "q2", SelectedOption: "b", MarkedForReview: true},
	}
	return scoring.Review(questions, answers)
}

func TestPaging(t *testing.T) {
	s := New("Polity", testItems())

	it, _ := s.Current()
	if it.Question.ID != "q1" {
		t.Fatalf("first = %s", it.Question.ID)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if it, _ := s.Current(); it.Question.ID != "q3" {
		t.Errorf("after 3x right = %s, want q3", it.Question.ID)
	}
	s.Update(keyPress('g'))
	if it, _ := s.Current(); it.Question.ID != "q1" {
		t.Errorf("after g = %s, want q1", it.Question.ID)
	}
}

func TestFilterCycle(t *testing.T) {
	s := New("Polity", testItems())

	want := []struct {
		filter Filter
		first  string
		count  int
	}{
		{FilterWrong, "q2", 1},
		{FilterSkipped, "q3", 1},
		{FilterMarked, "q2", 1},
		{FilterAll, "q1", 3},
	}
	for _, w := range want {
		s.Update(keyPress('f'))
		if s.filter != w.filter {
			t.Fatalf("filter = %v, want %v", s.filter, w.filter)
		}
		it, ok := s.Current()
		if !ok || it.Question.ID != w.first || len(s.visible) != w.count {
			t.Errorf("%v: first = %s, count = %d", w.filter, it.Question.ID, len(s.visible))
		}
	}
}

func TestViewShowsMarksAndExplanation(t *testing.T) {
	s := New("Polity", testItems())
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})

	view := s.View(100, 30)
	for _, want := range []string{"Second?", "-0.67 marks", "Explanation", "marked"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptyFilterMessage(t *testing.T) {
	items := testItems()[:1]
	s := New("Polity", items)
	s.Update(keyPress('f'))

	if view := s.View(100, 30); !strings.Contains(view, "No wrong questions") {
		t.Errorf("unexpected view:\n%s", view)
	}
}
