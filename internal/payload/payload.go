// Package payload encodes the questions and answers of a finished quiz
// into the versioned blob stored with each attempt.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/scoring"
)

// Version is written into every encoded payload.
const Version = "v1.0.0"

// ErrUnsupportedVersion is returned when a payload has a different major version.
var ErrUnsupportedVersion = errors.New("payload: unsupported version")

// Payload is the decoded attempt blob.
type Payload struct {
	Version   string                  `json:"version"`
	Questions []questionbank.Question `json:"questions"`
	Answers   []scoring.UserAnswer    `json:"answers"`
}

// AnswerMap returns the answers keyed by question ID.
func (p *Payload) AnswerMap() scoring.Answers {
	out := make(scoring.Answers, len(p.Answers))
	for _, a := range p.Answers {
		out[a.QuestionID] = a
	}
	return out
}

// Encode serializes questions and answers. Answers are written in question
// order and answers for questions not in the list are dropped.
func Encode(questions []questionbank.Question, answers scoring.Answers) ([]byte, error) {
	p := Payload{
		Version:   Version,
		Questions: questions,
		Answers:   make([]scoring.UserAnswer, 0, len(answers)),
	}
	for _, q := range questions {
		if a, ok := answers[q.ID]; ok {
			a.QuestionID = q.ID
			p.Answers = append(p.Answers, a)
		}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode. Payloads from the same major
// version are accepted.
func Decode(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if !semver.IsValid(p.Version) || semver.Major(p.Version) != semver.Major(Version) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, p.Version)
	}
	return &p, nil
}
