// Package questionbank loads multiple-choice questions from JSON documents
// laid out as assignments/<subject>/<file>.json.
package questionbank

// Option is one selectable answer of a question.
type Option struct {
	ID   string `json:"option_id" validate:"required"`
	Text string `json:"option_text" validate:"required"`
}

// Question is a single multiple-choice question.
type Question struct {
	ID            string   `json:"q_id" validate:"required"`
	Number        int      `json:"question_number"`
	Text          string   `json:"question_text" validate:"required"`
	Type          string   `json:"question_type"`
	Options       []Option `json:"options" validate:"min=2,dive"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   string   `json:"explanation"`
	Marks         int      `json:"marks" validate:"gte=0"`
	Difficulty    string   `json:"difficulty"`
	TopicTag      string   `json:"topic_tag"`
}

// Option returns the option with the given ID.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Metadata describes a question document.
type Metadata struct {
	TestID         string   `json:"test_id"`
	Title          string   `json:"test_title"`
	Subject        string   `json:"subject"`
	Paper          string   `json:"gs_paper"`
	Unit           string   `json:"unit"`
	SubTopic       string   `json:"sub_topic"`
	TotalQuestions int      `json:"total_questions"`
	TotalMarks     int      `json:"total_marks"`
	Difficulty     string   `json:"difficulty"`
	Tags           []string `json:"tags"`
}

// Document is the on-disk shape of one question file.
type Document struct {
	Metadata  Metadata   `json:"test_metadata"`
	Questions []Question `json:"questions"`
}
