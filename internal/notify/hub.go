// Package notify fans broker events out to in-process subscribers, one
// topic per community. The HTTP stream endpoint subscribes here; the
// rabbitmq consumer publishes here.
package notify

import (
	"encoding/json"
	"sync"
)

// Message is one realtime notification scoped to a community.
type Message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type subscriber struct {
	ch chan Message
}

// Hub is safe for concurrent use. Slow subscribers never block publishers:
// a full buffer drops the message for that subscriber only.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: map[string]map[*subscriber]struct{}{}}
}

// Subscribe registers interest in one community's events. The returned
// cancel func must be called when the listener goes away; it closes the
// channel.
func (h *Hub) Subscribe(communityID string) (<-chan Message, func()) {
	s := &subscriber{ch: make(chan Message, 16)}

	h.mu.Lock()
	set, ok := h.subs[communityID]
	if !ok {
		set = map[*subscriber]struct{}{}
		h.subs[communityID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[communityID]; ok {
				delete(set, s)
				if len(set) == 0 {
					delete(h.subs, communityID)
				}
			}
			h.mu.Unlock()
			close(s.ch)
		})
	}
	return s.ch, cancel
}

// Publish delivers msg to every subscriber of the community.
func (h *Hub) Publish(communityID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs[communityID] {
		select {
		case s.ch <- msg:
		default:
			// subscriber is not draining; drop rather than stall the hub
		}
	}
}

// Subscribers reports how many listeners a community currently has.
func (h *Hub) Subscribers(communityID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[communityID])
}
