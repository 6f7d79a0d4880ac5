package services

import (
	"context"
	"sync"
)

// Ticket identifies one generation request.
type Ticket uint64

// GenerationTracker allows at most one generation in flight. Starting a new
// one cancels the previous request and makes its ticket stale.
type GenerationTracker struct {
	mu      sync.Mutex
	seq     Ticket
	current Ticket
	cancel  context.CancelFunc
}

func NewGenerationTracker() *GenerationTracker {
	return &GenerationTracker{}
}

// Begin derives the context for a new request from parent.
func (t *GenerationTracker) Begin(parent context.Context) (context.Context, Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	t.seq++
	t.current = t.seq
	t.cancel = cancel
	return ctx, t.current
}

// Accept reports whether ticket belongs to the request in flight and, if so,
// marks it finished. Results carrying any other ticket must be dropped.
func (t *GenerationTracker) Accept(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ticket == 0 || ticket != t.current {
		return false
	}
	t.current = 0
	t.cancel()
	t.cancel = nil
	return true
}

// Cancel abandons the request in flight, if any.
func (t *GenerationTracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.current = 0
}

func (t *GenerationTracker) InFlight() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current != 0
}
