package progress

import (
	"testing"
	"time"

	"github.com/bytetechedu/bytetech/internal/api"
)

func newTestTracker(completed, total int) *Tracker {
	return NewTracker(api.ProgressSummary{
		TotalLessons:     total,
		CompletedLessons: completed,
	})
}

func TestTrackerRederivesPercentage(t *testing.T) {
	tr := NewTracker(api.ProgressSummary{
		TotalLessons:       4,
		CompletedLessons:   1,
		ProgressPercentage: 99, // server value is not trusted
	})
	if got := tr.Summary().ProgressPercentage; got != 25 {
		t.Fatalf("percentage = %v, want 25", got)
	}
}

func TestTrackerCompleteAtMostOnce(t *testing.T) {
	tr := newTestTracker(0, 3)

	tr.Complete("7")
	tr.Complete("7")
	tr.Complete("7")

	if got := tr.Summary().CompletedLessons; got != 1 {
		t.Fatalf("completed = %d, want 1", got)
	}
	if !tr.Completed("7", false) {
		t.Fatal("lesson 7 should count as completed")
	}
}

func TestTrackerCompleteNeverExceedsTotal(t *testing.T) {
	tr := newTestTracker(2, 2)
	tr.Complete("9")
	if got := tr.Summary().CompletedLessons; got != 2 {
		t.Fatalf("completed = %d, want 2", got)
	}
}

func TestTrackerArm(t *testing.T) {
	tr := newTestTracker(0, 2)

	gen, ok := tr.Arm("1", false, 30*time.Second)
	if !ok {
		t.Fatal("expected timer to arm for an uncompleted lesson")
	}
	if !tr.Live(gen) {
		t.Fatal("freshly armed generation should be live")
	}

	// completed lessons never arm
	if _, ok := tr.Arm("1", true, 30*time.Second); ok {
		t.Fatal("completed lesson should not arm a timer")
	}
	// zero dwell never arms
	if _, ok := tr.Arm("2", false, 0); ok {
		t.Fatal("zero dwell should not arm a timer")
	}
}

func TestTrackerStaleGenerationIgnored(t *testing.T) {
	tr := newTestTracker(0, 2)

	gen1, _ := tr.Arm("1", false, time.Minute)
	gen2, _ := tr.Arm("2", false, time.Minute)

	if tr.Live(gen1) {
		t.Fatal("superseded generation must not be live")
	}
	if !tr.Live(gen2) {
		t.Fatal("latest generation must be live")
	}

	tr.Disarm()
	if tr.Live(gen2) {
		t.Fatal("disarmed generation must not be live")
	}
}

func TestTrackerUncomplete(t *testing.T) {
	tr := newTestTracker(1, 3)

	tr.Complete("5")
	if got := tr.Summary().CompletedLessons; got != 2 {
		t.Fatalf("completed = %d, want 2", got)
	}

	tr.Uncomplete("5")
	if got := tr.Summary().CompletedLessons; got != 1 {
		t.Fatalf("completed after uncomplete = %d, want 1", got)
	}
	if tr.Completed("5", false) {
		t.Fatal("lesson 5 should no longer count as completed")
	}
}
