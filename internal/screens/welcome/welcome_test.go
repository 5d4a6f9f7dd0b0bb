package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepiz/internal/router"
	"github.com/abhisek/prepiz/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome(username string) (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory, username), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome("")

	if strings.Contains(w.View(100, 30), Tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 3)
	if w.elapsed != phase1End {
		t.Errorf("elapsed = %v, want %v", w.elapsed, phase1End)
	}
	if !strings.Contains(w.View(100, 30), "✦") && !strings.Contains(w.View(100, 30), "★") {
		t.Error("sparkles should show after phase 1")
	}

	sendTicks(w, 6)
	if !strings.Contains(w.View(100, 30), Tagline) {
		t.Error("tagline should be visible after phase 2")
	}
}

func TestGreeting(t *testing.T) {
	w, _ := newTestWelcome("Meera")
	sendTicks(w, 10)
	if !strings.Contains(w.View(100, 30), "Welcome back, Meera.") {
		t.Error("greeting missing")
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, callCount := newTestWelcome("")
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeySpace})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg")
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory called %d times, want 1", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome("")

	sendTicks(w, 40)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want capped at %v", w.elapsed, totalDur)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome("")
	w.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory called %d times, want 1", *callCount)
	}
	if cmd := sendTicks(w, 1); cmd != nil {
		t.Error("ticks should stop after the transition")
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
	if strings.Contains(RenderBanner(80), bannerCompact) {
		t.Error("wide terminals should get the block banner")
	}
}
