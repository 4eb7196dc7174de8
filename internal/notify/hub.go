// Package notify delivers user-facing notifications over an explicit
// publish/subscribe hub instead of a timer-polled queue. Emission is
// fire-and-forget: a slow or absent subscriber never stalls the caller.
package notify

import "sync"

// Kind classifies a notification for presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Notification is a single user-visible message.
type Notification struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
	Title   string `json:"title,omitempty"`
}

// Sink accepts notifications. No return value is consumed by emitters.
type Sink interface {
	Push(n Notification)
}

// Hub fans notifications out to subscribers over buffered channels.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Notification
	nextID int
	buffer int
}

// NewHub creates a hub; buffer bounds each subscriber channel.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[int]chan Notification),
		buffer: buffer,
	}
}

// Push delivers to every subscriber without blocking. Messages to a
// full subscriber channel are dropped.
func (h *Hub) Push(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Subscribe registers a receiver. The returned cancel function must be
// called to release the subscription.
func (h *Hub) Subscribe() (<-chan Notification, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Notification, h.buffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
