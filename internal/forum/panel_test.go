package forum

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bytetechedu/bytetech/internal/api"
)

func TestResetScopesPanelToLesson(t *testing.T) {
	p := NewPanel()

	gen := p.Reset("lesson-1")
	p.ApplyThreads(gen, []api.Thread{{ID: 1, Topic: "hello"}}, nil)

	gen2 := p.Reset("lesson-2")
	if p.LessonID != "lesson-2" {
		t.Fatalf("LessonID = %q, want lesson-2", p.LessonID)
	}
	if len(p.Threads()) != 0 {
		t.Fatal("previous lesson's threads must be dropped")
	}

	// the old generation's late reply must not resurface
	if p.ApplyThreads(gen, []api.Thread{{ID: 9}}, nil) {
		t.Fatal("stale thread result must be discarded")
	}
	if !p.ApplyThreads(gen2, []api.Thread{{ID: 2}}, nil) {
		t.Fatal("current thread result must be accepted")
	}
	if len(p.Threads()) != 1 || p.Threads()[0].ID != 2 {
		t.Fatalf("threads = %+v, want only thread 2", p.Threads())
	}
}

func TestApplyThreadsNotFoundIsEmpty(t *testing.T) {
	p := NewPanel()
	gen := p.Reset("lesson-1")

	notFound := fmt.Errorf("threads: %w", api.ErrNotFound)
	p.ApplyThreads(gen, nil, notFound)

	if p.ErrBanner != "" {
		t.Fatalf("NotFound raised a banner: %q", p.ErrBanner)
	}
	if len(p.Threads()) != 0 {
		t.Fatal("NotFound should mean an empty list")
	}
	if p.LoadingThreads {
		t.Fatal("loading flag should clear")
	}
}

func TestApplyThreadsErrorRaisesBanner(t *testing.T) {
	p := NewPanel()
	gen := p.Reset("lesson-1")

	p.ApplyThreads(gen, nil, errors.New("boom"))
	if p.ErrBanner == "" {
		t.Fatal("non-NotFound error should raise the banner")
	}
}

func TestThreadCreateFlow(t *testing.T) {
	p := NewPanel()
	p.Reset("lesson-1")

	p.OpenCreate()
	if p.CurrentView() != ViewCreate {
		t.Fatalf("view = %v, want ViewCreate", p.CurrentView())
	}

	if CanSubmitThread("", "body") || CanSubmitThread("title", " ") {
		t.Fatal("both title and body are required")
	}
	if got := ComposeTopic("Title", "Body"); got != "Title: Body" {
		t.Fatalf("ComposeTopic = %q", got)
	}

	gen := p.ThreadCreated()
	if p.CurrentView() != ViewThreads {
		t.Fatal("create success should return to the thread list")
	}
	if !p.LoadingThreads {
		t.Fatal("create success should reload the list")
	}
	if !p.ApplyThreads(gen, nil, nil) {
		t.Fatal("reload generation should be current")
	}
}

func TestThreadCreateFailureKeepsForm(t *testing.T) {
	p := NewPanel()
	p.Reset("lesson-1")
	p.OpenCreate()

	p.ThreadCreateFailed(errors.New("boom"))
	if p.CurrentView() != ViewCreate {
		t.Fatal("failed create should stay on the form")
	}
	if p.ErrBanner == "" {
		t.Fatal("failed create should raise the banner")
	}
}

func TestOptimisticSendConfirm(t *testing.T) {
	p := NewPanel()
	gen := p.Reset("lesson-1")
	p.ApplyThreads(gen, []api.Thread{{ID: 3, Topic: "t"}}, nil)

	mgen := p.SelectThread(api.Thread{ID: 3, Topic: "t"})
	p.ApplyMessages(mgen, []api.Message{{ID: 1, Body: "hi"}}, nil)

	author := api.User{ID: 7, Name: "ada"}
	tempID := p.AppendPending(author, "my question")

	if !p.Sending {
		t.Fatal("panel should be sending")
	}
	entries := p.Entries()
	last := entries[len(entries)-1]
	if !last.Pending || last.TempID != tempID || last.Message.Body != "my question" {
		t.Fatalf("pending entry = %+v", last)
	}
	if last.Message.ThreadID != 3 || last.Message.Username != "ada" {
		t.Fatalf("pending entry metadata = %+v", last.Message)
	}

	p.ConfirmPending(tempID, 55)
	entries = p.Entries()
	last = entries[len(entries)-1]
	if last.Pending || last.Message.ID != 55 || last.TempID != "" {
		t.Fatalf("confirmed entry = %+v", last)
	}
	if p.Sending {
		t.Fatal("sending flag should clear")
	}
}

func TestOptimisticSendFailureRemovesEntry(t *testing.T) {
	p := NewPanel()
	gen := p.Reset("lesson-1")
	p.ApplyThreads(gen, []api.Thread{{ID: 3}}, nil)
	mgen := p.SelectThread(api.Thread{ID: 3})
	p.ApplyMessages(mgen, nil, nil)

	tempID := p.AppendPending(api.User{ID: 7, Name: "ada"}, "oops")
	p.FailPending(tempID, errors.New("network down"))

	if len(p.Entries()) != 0 {
		t.Fatalf("entries = %+v, want the pending entry removed", p.Entries())
	}
	if p.ErrBanner == "" {
		t.Fatal("failed send should raise the banner")
	}
}

func TestStaleMessagesDiscardedAfterThreadSwitch(t *testing.T) {
	p := NewPanel()
	gen := p.Reset("lesson-1")
	p.ApplyThreads(gen, []api.Thread{{ID: 1}, {ID: 2}}, nil)

	gen1 := p.SelectThread(api.Thread{ID: 1})
	gen2 := p.SelectThread(api.Thread{ID: 2})

	if p.ApplyMessages(gen1, []api.Message{{ID: 10, ThreadID: 1}}, nil) {
		t.Fatal("late reply for thread 1 must be discarded")
	}
	if !p.ApplyMessages(gen2, []api.Message{{ID: 20, ThreadID: 2}}, nil) {
		t.Fatal("reply for the open thread must be accepted")
	}
	if len(p.Entries()) != 1 || p.Entries()[0].Message.ID != 20 {
		t.Fatalf("entries = %+v", p.Entries())
	}
}

func TestThreadDeletedFallsBackToList(t *testing.T) {
	p := NewPanel()
	gen := p.Reset("lesson-1")
	p.ApplyThreads(gen, []api.Thread{{ID: 4}}, nil)
	p.SelectThread(api.Thread{ID: 4})

	reload := p.ThreadDeleted(4)
	if p.CurrentView() != ViewThreads {
		t.Fatal("deleting the open thread should fall back to the list")
	}
	if p.Selected() != nil {
		t.Fatal("selection should clear")
	}
	if !p.ApplyThreads(reload, nil, nil) {
		t.Fatal("reload generation should be current")
	}
}

func TestThreadDeletedOtherThreadKeepsView(t *testing.T) {
	p := NewPanel()
	gen := p.Reset("lesson-1")
	p.ApplyThreads(gen, []api.Thread{{ID: 4}, {ID: 5}}, nil)
	p.SelectThread(api.Thread{ID: 4})

	p.ThreadDeleted(5)
	if p.CurrentView() != ViewThread {
		t.Fatal("deleting another thread should keep the open one")
	}
}
