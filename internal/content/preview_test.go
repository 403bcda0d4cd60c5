package content

import (
	"context"
	"errors"
	"testing"
)

func TestPreviewStaleResultDiscarded(t *testing.T) {
	var p Preview

	_, gen1 := p.Begin(context.Background())
	_, gen2 := p.Begin(context.Background())

	if p.Apply(gen1, "lesson A body", nil) {
		t.Fatal("stale generation must be discarded")
	}
	if p.Body != "" {
		t.Fatalf("stale body leaked: %q", p.Body)
	}

	if !p.Apply(gen2, "lesson B body", nil) {
		t.Fatal("current generation must be accepted")
	}
	if p.Body != "lesson B body" || p.Loading {
		t.Fatalf("unexpected state after apply: body=%q loading=%v", p.Body, p.Loading)
	}
}

func TestPreviewBeginCancelsPrevious(t *testing.T) {
	var p Preview

	ctx1, _ := p.Begin(context.Background())
	p.Begin(context.Background())

	select {
	case <-ctx1.Done():
	default:
		t.Fatal("previous fetch context should be cancelled")
	}
}

func TestPreviewResetFencesInFlight(t *testing.T) {
	var p Preview

	ctx, gen := p.Begin(context.Background())
	p.Reset()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("reset should cancel the in-flight fetch")
	}
	if p.Apply(gen, "late", nil) {
		t.Fatal("result from before reset must be discarded")
	}
	if p.Loading {
		t.Fatal("reset preview should not be loading")
	}
}

func TestPreviewApplyError(t *testing.T) {
	var p Preview

	_, gen := p.Begin(context.Background())
	if !p.Apply(gen, "", errors.New("boom")) {
		t.Fatal("error result for current generation must be accepted")
	}
	if p.Err != "boom" {
		t.Fatalf("Err = %q, want boom", p.Err)
	}
}

func TestPreviewRenderEmptyPlaceholder(t *testing.T) {
	var p Preview
	_, gen := p.Begin(context.Background())
	p.Apply(gen, "", nil)

	if got := p.Render(); got != EmptyTextPlaceholder {
		t.Fatalf("Render() = %q, want %q", got, EmptyTextPlaceholder)
	}
}
