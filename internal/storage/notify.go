package storage

import "sync"

// Hub fans committed-mutation notifications out to subscribers. Delivery
// is asynchronous so a subscriber can call back into the store without
// deadlocking the mutating goroutine.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewHub creates an empty notification hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]func())}
}

// Subscribe registers fn and returns a cancel function.
func (h *Hub) Subscribe(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Notify invokes every subscriber on its own goroutine.
func (h *Hub) Notify() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		go fn()
	}
}
