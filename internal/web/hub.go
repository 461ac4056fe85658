package web

import (
	"sync"

	"github.com/savibeshop/savibe/internal/particles"
)

// Hub fans animator ticks out to stream subscribers. Publish never blocks:
// a slow subscriber only ever sees the latest field.
type Hub struct {
	mu   sync.Mutex
	subs map[chan particles.Field]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan particles.Field]struct{})}
}

// Publish has the animator.Observer signature.
func (h *Hub) Publish(f particles.Field) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- f:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- f:
			default:
			}
		}
	}
}

func (h *Hub) Subscribe() (<-chan particles.Field, func()) {
	ch := make(chan particles.Field, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
