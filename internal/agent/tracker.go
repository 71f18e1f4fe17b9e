package agent

import "sync"

// Tracker keeps a live in-flight routing counter and an operator mark-down
// flag per agent. The routing engine acquires a slot when it routes to an
// agent; the caller releases it when the external executor reports completion.
type Tracker struct {
	mu       sync.Mutex
	inflight map[string]int
	down     map[string]bool
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		inflight: make(map[string]int),
		down:     make(map[string]bool),
	}
}

// Available reports whether the agent is up and below its concurrency cap.
func (t *Tracker) Available(name string, maxConcurrent int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.down[name] {
		return false
	}
	return t.inflight[name] < maxConcurrent
}

// Acquire reserves an in-flight slot on the agent. The returned release
// closure is idempotent, so callers can defer it on every exit path without
// double-decrement risk. ok is false when the agent is down or at capacity.
func (t *Tracker) Acquire(name string, maxConcurrent int) (release func(), ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.down[name] || t.inflight[name] >= maxConcurrent {
		return nil, false
	}
	t.inflight[name]++

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.inflight[name] > 0 {
				t.inflight[name]--
			}
		})
	}, true
}

// MarkDown declares the agent unavailable regardless of capacity.
func (t *Tracker) MarkDown(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.down[name] = true
}

// MarkUp clears a mark-down.
func (t *Tracker) MarkUp(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.down, name)
}

// InFlight returns the current in-flight count for an agent.
func (t *Tracker) InFlight(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight[name]
}
