// Package realtime fans out row-change events to WebSocket subscribers so
// dependent UIs can refresh without polling.
package realtime

import (
	"sync"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event describes one row change on a watched table.
type Event struct {
	Type     EventType   `json:"event"`
	Table    string      `json:"table"`
	ReportID uint        `json:"report_id"`
	Row      interface{} `json:"row"`
}

// Subscription is a channel handle with an explicit stop lifecycle. Callers
// must Unsubscribe when done.
type Subscription struct {
	C        chan Event
	reportID uint // 0 subscribes to all reports
	id       uint64
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]*Subscription)}
}

// Subscribe registers a listener. reportID 0 receives every event; otherwise
// only events for that report are delivered.
func (h *Hub) Subscribe(reportID uint) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		C:        make(chan Event, 64),
		reportID: reportID,
		id:       h.nextID,
	}
	h.subs[sub.id] = sub
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub.id]; ok {
		delete(h.subs, sub.id)
		close(sub.C)
	}
}

// Publish delivers the event to every matching subscriber. Subscribers whose
// buffers are full miss the event rather than blocking the writer.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if sub.reportID != 0 && sub.reportID != event.ReportID {
			continue
		}
		select {
		case sub.C <- event:
		default:
		}
	}
}

// SubscriberCount reports the number of active subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
