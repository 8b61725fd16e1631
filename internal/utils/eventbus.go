package utils

import (
	"sync"
)

// Event is one realtime notification scoped to a board. Delivery is
// at-most-once: the bus drops events when the buffer is full rather
// than block a request goroutine.
type Event struct {
	Type    string         `json:"type"`
	BoardID uint64         `json:"board_id"`
	Data    map[string]any `json:"data,omitempty"`
}

type Handler func(event Event)

type EventBus struct {
	subscribers map[string][]Handler
	events      chan Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]Handler),
		events:      make(chan Event, 100),
	}
}

func (eb *EventBus) Publish(eventType string, boardID uint64, data map[string]any) {
	e := Event{Type: eventType, BoardID: boardID, Data: data}
	select {
	case eb.events <- e:
	default:
	}

	eb.mu.RLock()
	handlers := eb.subscribers[eventType]
	eb.mu.RUnlock()
	for _, h := range handlers {
		h(e)
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
}

func (eb *EventBus) SubscribeCh() <-chan Event {
	return eb.events
}
