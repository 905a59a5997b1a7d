package sse

import (
	"sync"
	"sync/atomic"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
)

const subscriberBuffer = 16

// Event is one message on the admin stream.
type Event struct {
	ID    uint64
	Event string
	Data  interface{}
}

// Hub fans clock events out to every connected admin stream.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	closed      bool
	seq         atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan Event]struct{})}
}

// Subscribe returns the event channel and a cleanup func that must be called
// once the stream ends. The channel is closed by cleanup or by Close.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subscribers[ch]; ok {
				delete(h.subscribers, ch)
				close(ch)
			}
		})
	}
	return ch, cleanup
}

// Broadcast sends event to every subscriber. Slow subscribers whose buffer
// is full miss the event.
func (h *Hub) Broadcast(name string, data interface{}) {
	event := Event{ID: h.seq.Add(1), Event: name, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishShiftEvent implements shift.EventPublisher.
func (h *Hub) PublishShiftEvent(event string, record shift.ShiftResponse) {
	h.Broadcast(event, record)
}

// Close ends every stream. Later subscribers get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, ch)
	}
}

func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
