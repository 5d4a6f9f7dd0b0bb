package notice

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/router"
)

func TestNoContentMentionsScope(t *testing.T) {
	n := NoContent("Polity / Judiciary")
	view := n.View(80, 20)
	if !strings.Contains(view, "No questions available") || !strings.Contains(view, "Polity / Judiciary") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestEnterGoesBack(t *testing.T) {
	n := New("Error", "Oops", "details", Failure)
	_, cmd := n.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	n := New("Error", "Oops", "details", Warning)
	if _, cmd := n.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); cmd != nil {
		t.Error("x should do nothing")
	}
}
