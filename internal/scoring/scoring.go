// Package scoring grades a finished quiz with negative marking:
// +2 per correct answer, -0.66 per wrong answer, 0 for skipped questions.
package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/abhisek/prepiz/internal/questionbank"
)

var (
	correctPoints = decimal.NewFromInt(2)
	wrongPenalty  = decimal.RequireFromString("0.66")
	hundred       = decimal.NewFromInt(100)
)

// Status classifies one question after grading.
type Status int

const (
	StatusSkipped Status = iota
	StatusCorrect
	StatusWrong
)

func (s Status) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusWrong:
		return "wrong"
	default:
		return "skipped"
	}
}

// UserAnswer is the response recorded for one question.
type UserAnswer struct {
	QuestionID      string `json:"question_id"`
	SelectedOption  string `json:"selected_option,omitempty"`
	MarkedForReview bool   `json:"marked_for_review,omitempty"`
}

// Answered reports whether an option is selected.
func (a UserAnswer) Answered() bool {
	return a.SelectedOption != ""
}

// Answers maps question IDs to recorded responses.
type Answers map[string]UserAnswer

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Breakdown is the graded result of a quiz.
type Breakdown struct {
	Total      int
	Correct    int
	Wrong      int
	Skipped    int
	RawScore   float64 // never negative
	MaxScore   float64 // Total * 2
	Percentage float64 // RawScore / MaxScore * 100, within [0, 100]
}

// Classify grades a single question against the recorded answers.
func Classify(q questionbank.Question, answers Answers) Status {
	a, ok := answers[q.ID]
	if !ok || !a.Answered() {
		return StatusSkipped
	}
	if a.SelectedOption == q.CorrectAnswer {
		return StatusCorrect
	}
	return StatusWrong
}

// Score grades every served question. Answers for questions that were not
// served are ignored.
func Score(questions []questionbank.Question, answers Answers) Breakdown {
	b := Breakdown{Total: len(questions)}
	for _, q := range questions {
		switch Classify(q, answers) {
		case StatusCorrect:
			b.Correct++
		case StatusWrong:
			b.Wrong++
		default:
			b.Skipped++
		}
	}

	raw := decimal.NewFromInt(int64(b.Correct)).Mul(correctPoints).
		Sub(decimal.NewFromInt(int64(b.Wrong)).Mul(wrongPenalty))
	if raw.IsNegative() {
		raw = decimal.Zero
	}
	maxScore := decimal.NewFromInt(int64(b.Total)).Mul(correctPoints)

	pct := decimal.Zero
	if maxScore.IsPositive() {
		pct = raw.Div(maxScore).Mul(hundred)
		if pct.GreaterThan(hundred) {
			pct = hundred
		}
	}

	b.RawScore, _ = raw.Float64()
	b.MaxScore, _ = maxScore.Float64()
	b.Percentage, _ = pct.Float64()
	return b
}
