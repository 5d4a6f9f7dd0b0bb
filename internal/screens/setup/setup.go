// Package setup walks through choosing the scope, size and time budget of
// a test before starting it.
package setup

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/questionbank"
	qz "github.com/abhisek/prepiz/internal/quiz"
	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
	quizscreen "github.com/abhisek/prepiz/internal/screens/quiz"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/layout"
	"github.com/abhisek/prepiz/internal/ui/theme"
)

// Catalog lists what the question bank holds. questionbank.Loader
// implements it.
type Catalog interface {
	Subjects() []string
	Units(subject string) []questionbank.UnitCount
	CountForSubject(subject string) int
}

type step int

const (
	stepMode step = iota
	stepSubject
	stepUnit
	stepPaper
	stepCount
	stepDuration
)

var stepTitles = map[step]string{
	stepMode:     "What kind of test?",
	stepSubject:  "Choose a subject",
	stepUnit:     "Choose a unit",
	stepPaper:    "Choose a GS paper",
	stepCount:    "How many questions?",
	stepDuration: "How much time?",
}

type choice struct {
	label    string
	detail   string
	value    string
	disabled bool
}

// catalogMsg carries the choices of a step that reads the question bank.
type catalogMsg struct {
	step    step
	choices []choice
}

// SetupScreen is the test setup wizard.
type SetupScreen struct {
	catalog  Catalog
	runner   quizscreen.Runner
	defaults qz.Config

	step    step
	back    []step
	choices []choice
	menu    components.Menu
	loading bool

	mode     questionbank.Mode
	subject  string
	unit     string
	paper    string
	count    int
	duration time.Duration
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.EscapeHandler = (*SetupScreen)(nil)

// New creates a SetupScreen. defaults preselects the question count and
// duration.
func New(catalog Catalog, runner quizscreen.Runner, defaults qz.Config) *SetupScreen {
	s := &SetupScreen{catalog: catalog, runner: runner, defaults: defaults}
	s.show(stepMode, modeChoices())
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Test"
}

// HandlesEscape steps back through the wizard before leaving it.
func (s *SetupScreen) HandlesEscape() bool {
	return len(s.back) > 0
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogMsg:
		if msg.step == s.step && s.loading {
			s.loading = false
			s.setChoices(msg.choices)
			s.restoreCursor()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "backspace":
			return s, s.goBack()
		case "enter":
			return s, s.pick()
		}
		s.menu, _ = s.menu.Update(msg)
	}
	return s, nil
}

func (s *SetupScreen) goBack() tea.Cmd {
	if len(s.back) == 0 {
		return nil
	}
	prev := s.back[len(s.back)-1]
	s.back = s.back[:len(s.back)-1]
	s.step = prev
	s.loading = false
	switch prev {
	case stepMode:
		s.setChoices(modeChoices())
	case stepPaper:
		s.setChoices(paperChoices())
	case stepCount:
		s.setChoices(countChoices(s.defaults.QuestionCount))
	default:
		s.loading = true
		s.setChoices(nil)
		return s.loadCatalog()
	}
	s.restoreCursor()
	return nil
}

func (s *SetupScreen) pick() tea.Cmd {
	if s.loading || len(s.choices) == 0 {
		return nil
	}
	c := s.choices[s.menu.Selected]
	if c.disabled {
		return nil
	}

	switch s.step {
	case stepMode:
		s.mode = questionbank.Mode(c.value)
		if s.mode == questionbank.ModePaper {
			s.advance(stepPaper)
			s.setChoices(paperChoices())
			return nil
		}
		return s.advanceAsync(stepSubject)
	case stepSubject:
		s.subject = c.value
		if s.mode == questionbank.ModeUnit {
			return s.advanceAsync(stepUnit)
		}
		s.toCount()
	case stepUnit:
		s.unit = c.value
		s.toCount()
	case stepPaper:
		s.paper = c.value
		s.toCount()
	case stepCount:
		s.count, _ = strconv.Atoi(c.value)
		s.advance(stepDuration)
		s.setChoices(durationChoices(s.defaults.Duration))
		s.selectValue(s.defaults.Duration.String())
	case stepDuration:
		s.duration, _ = time.ParseDuration(c.value)
		cfg := qz.Config{QuestionCount: s.count, Duration: s.duration}
		return router.ReplaceCmd(quizscreen.New(s.runner, s.Scope(), cfg))
	}
	return nil
}

func (s *SetupScreen) toCount() {
	s.advance(stepCount)
	s.setChoices(countChoices(s.defaults.QuestionCount))
	s.selectValue(strconv.Itoa(s.defaults.QuestionCount))
}

func (s *SetupScreen) advance(next step) {
	s.back = append(s.back, s.step)
	s.step = next
}

// advanceAsync moves to a step whose choices come from the catalog.
func (s *SetupScreen) advanceAsync(next step) tea.Cmd {
	s.advance(next)
	s.loading = true
	s.setChoices(nil)
	return s.loadCatalog()
}

func (s *SetupScreen) loadCatalog() tea.Cmd {
	catalog, st, subject := s.catalog, s.step, s.subject
	return func() tea.Msg {
		if st == stepUnit {
			return catalogMsg{step: st, choices: unitChoices(catalog.Units(subject))}
		}
		return catalogMsg{step: st, choices: subjectChoices(catalog)}
	}
}

func (s *SetupScreen) show(st step, choices []choice) {
	s.step = st
	s.setChoices(choices)
}

func (s *SetupScreen) setChoices(choices []choice) {
	s.choices = choices
	items := make([]components.MenuItem, len(choices))
	for i, c := range choices {
		items[i] = components.MenuItem{Label: c.label, Detail: c.detail, Disabled: c.disabled}
	}
	s.menu = components.NewMenu(items)
}

func (s *SetupScreen) selectValue(v string) {
	for i, c := range s.choices {
		if c.value == v && !c.disabled {
			s.menu.Selected = i
			return
		}
	}
}

func (s *SetupScreen) restoreCursor() {
	switch s.step {
	case stepMode:
		s.selectValue(string(s.mode))
	case stepSubject:
		s.selectValue(s.subject)
	case stepUnit:
		s.selectValue(s.unit)
	case stepPaper:
		s.selectValue(s.paper)
	case stepCount:
		s.selectValue(strconv.Itoa(s.count))
	}
}

// Scope is the pool chosen so far.
func (s *SetupScreen) Scope() questionbank.Scope {
	switch s.mode {
	case questionbank.ModeUnit:
		return questionbank.UnitScope(s.subject, s.unit)
	case questionbank.ModePaper:
		return questionbank.PaperScope(s.paper)
	default:
		return questionbank.SubjectScope(s.subject)
	}
}

func modeChoices() []choice {
	return []choice{
		{label: "Subject test", detail: "all units of one subject", value: string(questionbank.ModeSubject)},
		{label: "Unit test", detail: "one unit of a subject", value: string(questionbank.ModeUnit)},
		{label: "GS paper test", detail: "every subject of a paper", value: string(questionbank.ModePaper)},
	}
}

func subjectChoices(catalog Catalog) []choice {
	subjects := catalog.Subjects()
	out := make([]choice, 0, len(subjects))
	for _, sub := range subjects {
		n := catalog.CountForSubject(sub)
		out = append(out, choice{
			label:    questionbank.DisplayName(sub),
			detail:   questionsLabel(n),
			value:    sub,
			disabled: n == 0,
		})
	}
	return out
}

func unitChoices(units []questionbank.UnitCount) []choice {
	out := make([]choice, 0, len(units))
	for _, u := range units {
		out = append(out, choice{
			label:    u.Unit,
			detail:   questionsLabel(u.Questions),
			value:    u.Unit,
			disabled: u.Questions == 0,
		})
	}
	return out
}

func paperChoices() []choice {
	papers := questionbank.Papers()
	out := make([]choice, 0, len(papers))
	for _, p := range papers {
		names := make([]string, 0)
		for _, sub := range questionbank.PaperSubjects(p) {
			names = append(names, questionbank.DisplayName(sub))
		}
		out = append(out, choice{label: p, detail: strings.Join(names, ", "), value: p})
	}
	return out
}

// countChoices offers the standard counts plus a configured default that
// is not among them.
func countChoices(def int) []choice {
	counts := slices.Clone(qz.QuestionCountOptions)
	if def > 0 && !slices.Contains(counts, def) {
		counts = append(counts, def)
		slices.Sort(counts)
	}
	out := make([]choice, len(counts))
	for i, n := range counts {
		out[i] = choice{label: fmt.Sprintf("%d questions", n), detail: fmt.Sprintf("%d marks", n*2), value: strconv.Itoa(n)}
	}
	return out
}

func durationChoices(def time.Duration) []choice {
	durations := slices.Clone(qz.DurationOptions)
	if def >= qz.TickInterval && !slices.Contains(durations, def) {
		durations = append(durations, def)
		slices.Sort(durations)
	}
	out := make([]choice, len(durations))
	for i, d := range durations {
		out[i] = choice{label: durationLabel(d), value: d.String()}
	}
	return out
}

func durationLabel(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}

func questionsLabel(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}

func (s *SetupScreen) breadcrumb() string {
	var parts []string
	if s.step == stepMode {
		return ""
	}
	switch s.mode {
	case questionbank.ModeSubject:
		parts = append(parts, "Subject test")
	case questionbank.ModeUnit:
		parts = append(parts, "Unit test")
	case questionbank.ModePaper:
		parts = append(parts, "GS paper test")
	}
	if s.step > stepSubject && s.subject != "" && s.mode != questionbank.ModePaper {
		parts = append(parts, questionbank.DisplayName(s.subject))
	}
	if s.step > stepUnit && s.unit != "" && s.mode == questionbank.ModeUnit {
		parts = append(parts, s.unit)
	}
	if s.step > stepPaper && s.paper != "" && s.mode == questionbank.ModePaper {
		parts = append(parts, s.paper)
	}
	if s.step > stepCount {
		parts = append(parts, questionsLabel(s.count))
	}
	return strings.Join(parts, " › ")
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(stepTitles[s.step]))
	b.WriteString("\n")
	if crumb := s.breadcrumb(); crumb != "" {
		b.WriteString(theme.Subtitle.Render(crumb))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(theme.Subtitle.Render("Reading the question bank…"))
	case len(s.choices) == 0:
		b.WriteString(theme.Subtitle.Render("Nothing to choose from here yet."))
	default:
		b.WriteString(s.menu.View())
	}

	box := lipgloss.NewStyle().Width(cw).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
