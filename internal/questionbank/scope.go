package questionbank

import (
	"fmt"
	"strings"
)

// Mode selects how a quiz pool is assembled.
type Mode string

const (
	ModeSubject Mode = "subject"
	ModeUnit    Mode = "unit"
	ModePaper   Mode = "gs_paper"
)

// Scope identifies the pool a quiz draws from.
type Scope struct {
	Mode    Mode
	Subject string // subject folder, for ModeSubject and ModeUnit
	Unit    string // topic tag, for ModeUnit
	Paper   string // e.g. "GS II", for ModePaper
}

// SubjectScope returns a scope covering one subject folder.
func SubjectScope(subject string) Scope {
	return Scope{Mode: ModeSubject, Subject: subject}
}

// UnitScope returns a scope covering one topic tag within a subject.
func UnitScope(subject, unit string) Scope {
	return Scope{Mode: ModeUnit, Subject: subject, Unit: unit}
}

// PaperScope returns a scope covering every subject mapped to a GS paper.
func PaperScope(paper string) Scope {
	return Scope{Mode: ModePaper, Paper: paper}
}

// Label is a short human readable name for the scope.
func (s Scope) Label() string {
	switch s.Mode {
	case ModeUnit:
		return fmt.Sprintf("%s / %s", DisplayName(s.Subject), s.Unit)
	case ModePaper:
		return s.Paper
	default:
		return DisplayName(s.Subject)
	}
}

// Validate reports whether the scope has the fields its mode needs.
func (s Scope) Validate() error {
	switch s.Mode {
	case ModeSubject:
		if s.Subject == "" {
			return fmt.Errorf("subject scope needs a subject")
		}
	case ModeUnit:
		if s.Subject == "" || s.Unit == "" {
			return fmt.Errorf("unit scope needs a subject and a unit")
		}
	case ModePaper:
		if len(PaperSubjects(s.Paper)) == 0 {
			return fmt.Errorf("unknown GS paper %q", s.Paper)
		}
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	return nil
}

// Papers lists the GS papers in display order.
func Papers() []string {
	return []string{"GS I", "GS II", "GS III", "GS IV"}
}

// PaperSubjects maps a GS paper to its subject folders. Matching is
// case-insensitive and accepts both "GS II" and "GS2". Unknown papers
// map to nothing.
func PaperSubjects(paper string) []string {
	switch strings.ToUpper(strings.TrimSpace(paper)) {
	case "GS I", "GS1":
		return []string{"history", "geography"}
	case "GS II", "GS2":
		return []string{"polity", "ethics"}
	case "GS III", "GS3":
		return []string{"economy"}
	case "GS IV", "GS4":
		return []string{"ethics"}
	default:
		return nil
	}
}

// DisplayName turns a subject folder name into a title, "polity" -> "Polity".
func DisplayName(folder string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(folder))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
