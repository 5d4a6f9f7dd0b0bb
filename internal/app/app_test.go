package app

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
	"github.com/abhisek/prepiz/internal/ui/layout"
)

type stubScreen struct {
	title   string
	escape  bool
	updates []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates = append(s.updates, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "body of " + s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) HandlesEscape() bool  { return s.escape }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestEscPopsWhenNested(t *testing.T) {
	m := NewAppModel(&stubScreen{title: "home"}, nil, nil)
	m.router.Push(&stubScreen{title: "child"})

	_, cmd := m.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscAtRootIsIgnored(t *testing.T) {
	m := NewAppModel(&stubScreen{title: "home"}, nil, nil)
	if _, cmd := m.Update(specialKey(tea.KeyEscape)); cmd != nil {
		t.Error("esc at root should do nothing")
	}
}

func TestEscForwardedToHandler(t *testing.T) {
	quiz := &stubScreen{title: "quiz", escape: true}
	m := NewAppModel(&stubScreen{title: "home"}, nil, nil)
	m.router.Push(quiz)

	if _, cmd := m.Update(specialKey(tea.KeyEscape)); cmd != nil {
		t.Error("esc on handler screen should not pop")
	}
	if len(quiz.updates) != 1 {
		t.Errorf("handler got %d messages, want 1", len(quiz.updates))
	}
}

func TestStatusLoaded(t *testing.T) {
	load := func(context.Context) (layout.Status, error) {
		return layout.Status{Username: "Meera", Streak: 3}, nil
	}
	m := NewAppModel(&stubScreen{title: "home"}, load, nil)

	updated, _ := m.Update(m.refreshStatus()())
	if got := updated.(AppModel).status; got.Username != "Meera" || got.Streak != 3 {
		t.Errorf("status = %+v", got)
	}
}

func TestNavigationRefreshesStatus(t *testing.T) {
	calls := 0
	load := func(context.Context) (layout.Status, error) {
		calls++
		return layout.Status{}, nil
	}
	m := NewAppModel(&stubScreen{title: "home"}, load, nil)
	m.router.Push(&stubScreen{title: "child"})

	_, cmd := m.Update(router.PopScreenMsg{})
	if cmd == nil {
		t.Fatal("expected status refresh command")
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
	if msg, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range msg {
			if c != nil {
				c()
			}
		}
	}
	if calls != 1 {
		t.Errorf("status loaded %d times, want 1", calls)
	}
}

func TestViewBeforeResizeIsEmpty(t *testing.T) {
	m := NewAppModel(&stubScreen{title: "home"}, nil, nil)
	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}

func TestStatusErrorKeepsPrevious(t *testing.T) {
	m := NewAppModel(&stubScreen{title: "home"}, nil, nil)
	m.status = layout.Status{Username: "Old"}

	updated, _ := m.Update(statusMsg{err: errors.New("db closed")})
	if updated.(AppModel).status.Username != "Old" {
		t.Error("status overwritten on error")
	}
}

func TestStartScreensPushed(t *testing.T) {
	m := NewAppModel(&stubScreen{title: "home"}, nil, nil, &stubScreen{title: "setup"}, &stubScreen{title: "quiz"})
	if m.router.Depth() != 3 {
		t.Fatalf("depth = %d, want 3", m.router.Depth())
	}
	if got := m.router.Active().Title(); got != "quiz" {
		t.Errorf("active = %q, want quiz", got)
	}

	// Esc from a start screen returns towards home.
	_, cmd := m.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
}
