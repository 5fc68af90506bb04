package databag

import (
	"sync"
)

// Hook is a callback invoked when a provider raises an event.
type Hook func(Event)

// hooks manages event callbacks keyed by event kind. Registration may race
// with dispatch, so the registry is mutex-guarded; dispatch itself runs
// synchronously in registration order.
type hooks struct {
	mu     sync.RWMutex
	byKind map[EventKind][]Hook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{
		byKind: make(map[EventKind][]Hook),
	}
}

// on registers a callback for the given event kind
func (h *hooks) on(kind EventKind, fn Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byKind[kind] = append(h.byKind[kind], fn)
}

// dispatch invokes all callbacks registered for the event's kind
func (h *hooks) dispatch(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.byKind[ev.Kind] {
		hook(ev)
	}
}
