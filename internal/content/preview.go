package content

import "context"

// Preview tracks the asynchronous text-file preview for the currently
// selected lesson. Every fetch is issued under a generation; a result
// whose generation no longer matches is stale and must never be
// rendered. The previous fetch's context is cancelled on each switch
// so a slow reply for lesson A cannot overwrite lesson B's preview.
type Preview struct {
	gen     uint64
	cancel  context.CancelFunc
	Loading bool
	Body    string
	Err     string
}

// Begin cancels any in-flight fetch and opens a new fetch generation.
// The returned context governs the new fetch.
func (p *Preview) Begin(parent context.Context) (context.Context, uint64) {
	p.Cancel()
	p.gen++
	p.Loading = true
	p.Body = ""
	p.Err = ""
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	return ctx, p.gen
}

// Reset cancels any in-flight fetch and clears the preview, for
// lessons that need no body fetch.
func (p *Preview) Reset() {
	p.Cancel()
	p.gen++
	p.Loading = false
	p.Body = ""
	p.Err = ""
}

// Cancel aborts the in-flight fetch, if any.
func (p *Preview) Cancel() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Apply merges a fetch result. Stale generations are discarded; the
// return value reports whether the result was accepted.
func (p *Preview) Apply(gen uint64, body string, err error) bool {
	if gen != p.gen {
		return false
	}
	p.Loading = false
	if err != nil {
		p.Err = err.Error()
		return true
	}
	p.Body = body
	return true
}

// Render returns the text to display for the preview body, applying
// the empty-file placeholder.
func (p *Preview) Render() string {
	if p.Body == "" {
		return EmptyTextPlaceholder
	}
	return p.Body
}
