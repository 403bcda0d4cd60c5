package course

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/forum"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// newViewerScreen builds a paid screen with one loaded thread and the
// forum pane focused, skipping the network load.
func newViewerScreen(t *testing.T, sensei bool) *CourseScreen {
	t.Helper()
	session := auth.New(nil)
	if sensei {
		if err := session.Login(&api.User{ID: 1, Name: "Ada", IsSensei: true}, "tok"); err != nil {
			t.Fatal(err)
		}
	}

	s := New(Deps{Client: api.New("http://localhost:0"), Session: session}, 7, "Go")
	s.paid = true
	s.focus = focusForum
	s.showForum = true

	gen := s.panel.Reset("lesson-1")
	s.panel.ApplyThreads(gen, []api.Thread{{ID: 3, Topic: "stuck on ch2"}}, nil)
	return s
}

func TestThreadDeleteRequiresSensei(t *testing.T) {
	s := newViewerScreen(t, false)

	_, cmd := s.Update(keyPress('d'))
	if cmd != nil {
		t.Fatal("a non-sensei must not get a delete command")
	}
	if s.confirmDeleteID != 0 {
		t.Fatal("a non-sensei must not arm a delete confirmation")
	}
}

func TestThreadDeleteAsksForConfirmation(t *testing.T) {
	s := newViewerScreen(t, true)

	_, cmd := s.Update(keyPress('d'))
	if cmd != nil {
		t.Fatal("the first press must only arm the confirmation")
	}
	if s.confirmDeleteID != 3 {
		t.Fatalf("confirmDeleteID = %d, want 3", s.confirmDeleteID)
	}

	_, cmd = s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("confirming should issue the delete command")
	}
	if s.confirmDeleteID != 0 {
		t.Fatal("confirmation state should clear after confirming")
	}
}

func TestThreadDeleteSecondPressConfirms(t *testing.T) {
	s := newViewerScreen(t, true)

	s.Update(keyPress('d'))
	_, cmd := s.Update(keyPress('d'))
	if cmd == nil {
		t.Fatal("pressing d again should confirm the delete")
	}
}

func TestThreadDeleteEscCancels(t *testing.T) {
	s := newViewerScreen(t, true)

	s.Update(keyPress('d'))
	if !s.ConsumesEsc() {
		t.Fatal("esc must stay on the screen while the confirmation is armed")
	}

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd != nil {
		t.Fatal("cancelling must not issue a command")
	}
	if s.confirmDeleteID != 0 {
		t.Fatal("esc should disarm the confirmation")
	}

	_, cmd = s.Update(keyPress('y'))
	if cmd != nil {
		t.Fatal("y without an armed confirmation must do nothing")
	}
}

func TestDwellMarkFailureIsSilent(t *testing.T) {
	s := newViewerScreen(t, false)

	s.Update(markDoneMsg{LessonID: "1", Err: errors.New("503")})
	if s.errMsg != "" {
		t.Fatalf("errMsg = %q, want no user-visible signal for a timer mark failure", s.errMsg)
	}
}

func TestManualMarkFailureSurfaces(t *testing.T) {
	s := newViewerScreen(t, false)

	s.Update(markDoneMsg{LessonID: "1", Manual: true, Err: errors.New("503")})
	if s.errMsg == "" {
		t.Fatal("a manual toggle failure should surface to the user")
	}
}

func TestWhitespaceMessageNotSent(t *testing.T) {
	s := newViewerScreen(t, true)

	gen := s.panel.SelectThread(api.Thread{ID: 3, Topic: "stuck on ch2"})
	s.panel.ApplyMessages(gen, nil, nil)
	if s.panel.CurrentView() != forum.ViewThread {
		t.Fatalf("view = %v, want ViewThread", s.panel.CurrentView())
	}

	s.msgInput.SetValue("   ")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("a whitespace-only body must not be sent")
	}
	if s.panel.Sending {
		t.Fatal("panel must not enter the sending state")
	}
}
