package scoring

import (
	"fmt"

	"github.com/abhisek/prepiz/internal/questionbank"
)

// ReviewItem is one row of the post-quiz review.
type ReviewItem struct {
	Index    int
	Question questionbank.Question
	Answer   UserAnswer
	Status   Status
	Marks    float64 // signed marks shown to the user
}

// Review builds the per-question review in served order. Correct answers
// show +marks, wrong answers -marks/3 and skipped questions 0. These marks
// are informational and independent of Breakdown.RawScore.
func Review(questions []questionbank.Question, answers Answers) []ReviewItem {
	out := make([]ReviewItem, len(questions))
	for i, q := range questions {
		st := Classify(q, answers)
		item := ReviewItem{Index: i, Question: q, Answer: answers[q.ID], Status: st}
		switch st {
		case StatusCorrect:
			item.Marks = float64(q.Marks)
		case StatusWrong:
			item.Marks = -float64(q.Marks) / 3
		}
		out[i] = item
	}
	return out
}

// MarksLabel formats the marks of a review item for display.
func (r ReviewItem) MarksLabel() string {
	switch r.Status {
	case StatusCorrect:
		return fmt.Sprintf("+%d marks", r.Question.Marks)
	case StatusWrong:
		return fmt.Sprintf("%.2f marks", r.Marks)
	default:
		return "Not attempted: 0 marks"
	}
}
