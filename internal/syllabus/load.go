package syllabus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
)

// DefaultPath is the syllabus document inside the asset root.
const DefaultPath = "upsc_complete_syllabus.json"

// Load reads and validates the syllabus document at path.
func Load(fsys fs.FS, path string) ([]Subject, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read syllabus: %w", err)
	}
	var subjects []Subject
	if err := json.Unmarshal(raw, &subjects); err != nil {
		return nil, fmt.Errorf("parse syllabus: %w", err)
	}
	if err := validateSubjects(subjects); err != nil {
		return nil, fmt.Errorf("invalid syllabus: %w", err)
	}
	return subjects, nil
}

var validate = validator.New()

// validateSubjects checks required fields and that item IDs are unique
// across the whole tree. All problems are reported together.
func validateSubjects(subjects []Subject) error {
	var errs []error
	seen := make(map[string]string)

	for i := range subjects {
		s := &subjects[i]
		if err := validate.Struct(s); err != nil {
			errs = append(errs, fmt.Errorf("subject %d (%s): %w", i, s.Name, err))
		}
		walk(s, func(_ *Unit, _ *SubTopic, it *Item) {
			if prev, dup := seen[it.ID]; dup {
				errs = append(errs, fmt.Errorf("duplicate item ID %q in %s and %s", it.ID, prev, s.Name))
				return
			}
			seen[it.ID] = s.Name
		})
	}

	return errors.Join(errs...)
}

// walk visits every item of a subject in document order.
func walk(s *Subject, fn func(u *Unit, st *SubTopic, it *Item)) {
	for ui := range s.Units {
		u := &s.Units[ui]
		for si := range u.SubTopics {
			st := &u.SubTopics[si]
			for ii := range st.Items {
				fn(u, st, &st.Items[ii])
			}
		}
	}
}
