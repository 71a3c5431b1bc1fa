package server

import "sync"

// hub fans collection change notifications out to subscription streams.
// Notifications are edge-triggered wake-ups: subscribers re-query the store
// for the current result set, so a dropped signal while one is already
// pending loses nothing.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// subscribe registers interest in a collection and returns the wake-up
// channel plus a cancel func that must be called when the stream ends.
func (h *hub) subscribe(collection string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[chan struct{}]struct{})
	}
	h.subs[collection][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs[collection], ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// notify wakes every subscriber of a collection without blocking.
func (h *hub) notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
