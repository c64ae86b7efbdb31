package usecase

import (
	"context"
	"sync"
)

// RequestGate ensures at most one in-flight computation per logical query: a
// dashboard that re-issues a query (new filters, impatient reload) cancels
// the stale run instead of racing it. Keys come from the inputs' GateKey.
type RequestGate struct {
	mu     sync.Mutex
	active map[string]*gateEntry
}

type gateEntry struct {
	cancel context.CancelFunc
}

func NewRequestGate() *RequestGate {
	return &RequestGate{active: make(map[string]*gateEntry)}
}

// Acquire derives a cancellable context for key, cancelling whichever call
// currently holds the same key. The returned release must be called when the
// computation finishes; it is safe to call after being superseded.
func (g *RequestGate) Acquire(ctx context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	entry := &gateEntry{cancel: cancel}

	g.mu.Lock()
	if prev, ok := g.active[key]; ok {
		prev.cancel()
	}
	g.active[key] = entry
	g.mu.Unlock()

	release := func() {
		g.mu.Lock()
		// Only the current holder may vacate the slot; a superseded call
		// must not evict its successor.
		if cur, ok := g.active[key]; ok && cur == entry {
			delete(g.active, key)
		}
		g.mu.Unlock()
		cancel()
	}
	return ctx, release
}
