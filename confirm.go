package tokenmart

import (
	"context"
	"sync"
)

// DialogKind styles a confirmation dialog.
type DialogKind string

const (
	DialogInfo    DialogKind = "info"
	DialogWarning DialogKind = "warning"
	DialogDanger  DialogKind = "danger"
)

// ConfirmOptions describes one confirmation request.
type ConfirmOptions struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Kind        DialogKind
}

type confirmRequest struct {
	opts ConfirmOptions
	done chan bool
	once sync.Once
}

func (r *confirmRequest) resolve(v bool) {
	r.once.Do(func() { r.done <- v })
}

// Gate is the confirmation primitive interposed before destructive
// actions. It holds a single pending slot: a new Confirm while one is
// outstanding displaces the pending one, resolving it as cancelled. Each
// request resolves exactly once.
type Gate struct {
	mu      sync.Mutex
	pending *confirmRequest
	onOpen  func(ConfirmOptions)
}

// NewGate returns a Gate. onOpen, if non-nil, is invoked whenever a new
// confirmation is presented, so a UI can render it; it may be nil in tests
// or headless use.
func NewGate(onOpen func(ConfirmOptions)) *Gate {
	return &Gate{onOpen: onOpen}
}

// Confirm suspends the caller until the user responds via [Gate.Close] or
// [Gate.Dismiss], returning the user's choice. Context cancellation
// resolves the request as false. Empty labels default to Confirm/Cancel
// and an empty kind to [DialogInfo].
func (g *Gate) Confirm(ctx context.Context, opts ConfirmOptions) bool {
	if opts.ConfirmText == "" {
		opts.ConfirmText = "Confirm"
	}
	if opts.CancelText == "" {
		opts.CancelText = "Cancel"
	}
	if opts.Kind == "" {
		opts.Kind = DialogInfo
	}

	req := &confirmRequest{opts: opts, done: make(chan bool, 1)}

	g.mu.Lock()
	displaced := g.pending
	g.pending = req
	onOpen := g.onOpen
	g.mu.Unlock()

	if displaced != nil {
		displaced.resolve(false)
	}
	if onOpen != nil {
		onOpen(opts)
	}

	select {
	case v := <-req.done:
		g.clear(req)
		return v
	case <-ctx.Done():
		req.resolve(false)
		g.clear(req)
		return false
	}
}

// Close resolves the outstanding confirmation with the user's choice.
// Closing with nothing pending is a no-op.
func (g *Gate) Close(result bool) {
	g.mu.Lock()
	req := g.pending
	g.pending = nil
	g.mu.Unlock()

	if req != nil {
		req.resolve(result)
	}
}

// Dismiss cancels the outstanding confirmation, resolving it as false.
// This is the global-dismiss path (e.g. escape key).
func (g *Gate) Dismiss() {
	g.Close(false)
}

// Pending returns the options of the outstanding confirmation, if any.
func (g *Gate) Pending() (ConfirmOptions, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending == nil {
		return ConfirmOptions{}, false
	}
	return g.pending.opts, true
}

func (g *Gate) clear(req *confirmRequest) {
	g.mu.Lock()
	if g.pending == req {
		g.pending = nil
	}
	g.mu.Unlock()
}
