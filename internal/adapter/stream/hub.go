// Package stream wakes event stream subscribers when the ledger appends
// events.
package stream

import "sync"

// Hub broadcasts "something was appended" to any number of waiters. A
// waiter takes Changed before reading the log and blocks on it afterwards,
// so a Notify between the two is never missed.
type Hub struct {
	mu      sync.Mutex
	last    int64
	changed chan struct{}
}

// NewHub returns a hub with no events seen.
func NewHub() *Hub {
	return &Hub{changed: make(chan struct{})}
}

// Notify records seq as appended and wakes all current waiters. A zero seq
// only wakes them.
func (h *Hub) Notify(seq int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if seq > h.last {
		h.last = seq
	}
	close(h.changed)
	h.changed = make(chan struct{})
}

// Changed returns a channel that is closed on the next Notify.
func (h *Hub) Changed() <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.changed
}

// Last returns the highest seq notified so far.
func (h *Hub) Last() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
