package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bytetechedu/bytetech/internal/screen"
)

// stubScreen is a minimal screen for router tests.
type stubScreen struct {
	name     string
	initRan  bool
	lastMsg  tea.Msg
	initCmds []tea.Cmd
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	if len(s.initCmds) > 0 {
		return tea.Batch(s.initCmds...)
	}
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.lastMsg = msg
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestPush(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}

	r := New(first)
	if r.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", r.Depth())
	}

	r.Push(second)
	if r.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", r.Depth())
	}
	if r.Active() != second {
		t.Fatal("Active should be the pushed screen")
	}
	if !second.initRan {
		t.Fatal("Push should call Init on the new screen")
	}
}

func TestPop(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}

	r := New(first)
	r.Push(second)
	r.Pop()

	if r.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", r.Depth())
	}
	if r.Active() != first {
		t.Fatal("Active should be the original screen after Pop")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	first := &stubScreen{name: "first"}

	r := New(first)
	r.Pop()

	if r.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", r.Depth())
	}
	if r.Active() != first {
		t.Fatal("Pop at depth 1 should leave the screen in place")
	}
}

func TestReplace(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}

	r := New(first)
	r.Replace(second)

	if r.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", r.Depth())
	}
	if r.Active() != second {
		t.Fatal("Active should be the replacement screen")
	}
	if !second.initRan {
		t.Fatal("Replace should call Init on the new screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}

	r := New(first)
	r.Update(ReplaceScreenMsg{Screen: second})

	if r.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", r.Depth())
	}
	if r.Active() != second {
		t.Fatal("ReplaceScreenMsg should swap the active screen")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}
	third := &stubScreen{name: "third"}

	r := New(first)
	r.Push(second)
	r.Update(ReplaceScreenMsg{Screen: third})

	if r.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", r.Depth())
	}
	if r.Active() != third {
		t.Fatal("Active should be the replacement screen")
	}

	r.Pop()
	if r.Active() != first {
		t.Fatal("the screen below the replacement should survive")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}

	r := New(first)
	r.Push(second)

	type probeMsg struct{}
	r.Update(probeMsg{})

	if _, ok := second.lastMsg.(probeMsg); !ok {
		t.Fatalf("active screen got %T, want probeMsg", second.lastMsg)
	}
	if first.lastMsg != nil {
		t.Fatal("inactive screens must not receive messages")
	}
}
