package questionbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// BasePath is the directory, relative to the asset root, holding one
// folder per subject.
const BasePath = "assignments"

// Loader reads question documents from a file system. Unreadable or
// invalid files are logged and contribute no questions.
type Loader struct {
	fsys     fs.FS
	logger   *zap.Logger
	validate *validator.Validate
}

// NewLoader creates a Loader over fsys. A nil logger discards output.
func NewLoader(fsys fs.FS, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := validator.New()
	v.RegisterStructValidation(correctAnswerListed, Question{})
	return &Loader{fsys: fsys, logger: logger.Named("questionbank"), validate: v}
}

// correctAnswerListed rejects questions whose correct answer is not one of
// their option IDs.
func correctAnswerListed(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if q.CorrectAnswer == "" {
		return
	}
	if _, ok := q.Option(q.CorrectAnswer); !ok {
		sl.ReportError(q.CorrectAnswer, "CorrectAnswer", "correct_answer", "listed_option", "")
	}
}

// Subjects lists the subject folders in ascending order.
func (l *Loader) Subjects() []string {
	entries, err := fs.ReadDir(l.fsys, BasePath)
	if err != nil {
		l.logger.Warn("list subjects", zap.Error(err))
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out
}

// LoadFolder returns every valid question in a subject folder, in file
// name order. A missing folder yields an empty result.
func (l *Loader) LoadFolder(subject string) []Question {
	dir := path.Join(BasePath, subject)
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		l.logger.Warn("list subject folder", zap.String("folder", dir), zap.Error(err))
		return nil
	}

	var out []Question
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".json") {
			continue
		}
		p := path.Join(dir, e.Name())
		doc, err := l.LoadFile(p)
		if err != nil {
			l.logger.Warn("skip question file", zap.String("path", p), zap.Error(err))
			continue
		}
		l.logger.Debug("loaded question file", zap.String("path", p), zap.Int("questions", len(doc.Questions)))
		out = append(out, doc.Questions...)
	}
	return out
}

// LoadFolders concatenates LoadFolder over subjects in the given order.
func (l *Loader) LoadFolders(subjects []string) []Question {
	var out []Question
	for _, s := range subjects {
		out = append(out, l.LoadFolder(s)...)
	}
	l.logger.Debug("loaded folders", zap.Strings("folders", subjects), zap.Int("questions", len(out)))
	return out
}

// LoadScope returns the full question pool for a scope, before sampling.
func (l *Loader) LoadScope(scope Scope) []Question {
	switch scope.Mode {
	case ModeUnit:
		return FilterByUnit(l.LoadFolder(scope.Subject), scope.Unit)
	case ModePaper:
		return l.LoadFolders(PaperSubjects(scope.Paper))
	default:
		return l.LoadFolder(scope.Subject)
	}
}

// UnitCount is a topic tag together with its number of questions.
type UnitCount struct {
	Unit      string
	Questions int
}

// Units lists the topic tags of a subject with their question counts.
func (l *Loader) Units(subject string) []UnitCount {
	questions := l.LoadFolder(subject)
	var out []UnitCount
	for _, u := range UniqueUnits(questions) {
		if n := len(FilterByUnit(questions, u)); n > 0 {
			out = append(out, UnitCount{Unit: u, Questions: n})
		}
	}
	return out
}

// CountForSubject returns the number of valid questions in a subject folder.
func (l *Loader) CountForSubject(subject string) int {
	return len(l.LoadFolder(subject))
}

// LoadFile reads, schema-checks and validates one document.
// Errors are always *LoadError.
func (l *Loader) LoadFile(p string) (*Document, error) {
	raw, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}
	if err := validateRaw(raw); err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Path: p, Err: fmt.Errorf("decode: %w", err)}
	}
	if err := l.checkQuestions(doc.Questions); err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}
	return &doc, nil
}

// checkQuestions validates each question and rejects duplicate IDs.
func (l *Loader) checkQuestions(questions []Question) error {
	seen := make(map[string]struct{}, len(questions))
	var errs []error
	for i, q := range questions {
		if err := l.validate.Struct(q); err != nil {
			errs = append(errs, fmt.Errorf("question %d (%s): %w", i, q.ID, err))
			continue
		}
		if _, dup := seen[q.ID]; dup {
			errs = append(errs, fmt.Errorf("question %d: duplicate id %s", i, q.ID))
		}
		seen[q.ID] = struct{}{}
	}
	return errors.Join(errs...)
}
