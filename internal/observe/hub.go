// Package observe delivers state-change events to subscribers in the order
// the owning store committed them.
package observe

import "sync"

// Hub fans events out to subscribers. Publish enqueues; Flush delivers.
// Callers enqueue while holding their own state lock so queue order matches
// commit order, then Flush after releasing it. Subscribers run outside every
// lock and may call back into the store, including Publish and Flush.
type Hub[E any] struct {
	mu        sync.Mutex
	deliver   sync.Mutex
	queue     []E
	listeners map[int]func(E)
	next      int
}

// Subscribe registers fn and returns a function that removes it.
func (h *Hub[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listeners == nil {
		h.listeners = make(map[int]func(E))
	}
	id := h.next
	h.next++
	h.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Publish enqueues events for the next Flush.
func (h *Hub[E]) Publish(events ...E) {
	h.mu.Lock()
	h.queue = append(h.queue, events...)
	h.mu.Unlock()
}

// Flush delivers queued events. If another goroutine (or a subscriber
// further up this stack) is already delivering, Flush returns at once and
// that delivery loop picks the events up.
func (h *Hub[E]) Flush() {
	if !h.deliver.TryLock() {
		return
	}
	for {
		h.mu.Lock()
		if len(h.queue) == 0 {
			// Release deliver while still holding mu so an event published
			// after this check always finds deliver free.
			h.deliver.Unlock()
			h.mu.Unlock()
			return
		}
		ev := h.queue[0]
		h.queue = h.queue[1:]
		fns := make([]func(E), 0, len(h.listeners))
		for _, fn := range h.listeners {
			fns = append(fns, fn)
		}
		h.mu.Unlock()

		for _, fn := range fns {
			fn(ev)
		}
	}
}
