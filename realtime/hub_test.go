package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(0)
	defer hub.Unsubscribe(sub)

	hub.Publish(Event{Type: EventInsert, Table: "reports", ReportID: 7})

	event := <-sub.C
	assert.Equal(t, EventInsert, event.Type)
	assert.Equal(t, uint(7), event.ReportID)
}

func TestHub_ReportFilter(t *testing.T) {
	hub := NewHub()
	filtered := hub.Subscribe(7)
	defer hub.Unsubscribe(filtered)

	hub.Publish(Event{Type: EventUpdate, Table: "reports", ReportID: 8})
	hub.Publish(Event{Type: EventUpdate, Table: "reports", ReportID: 7})

	event := <-filtered.C
	assert.Equal(t, uint(7), event.ReportID)
	assert.Empty(t, filtered.C)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(0)
	defer hub.Unsubscribe(sub)

	// Overfill the buffer; Publish must not block.
	for i := 0; i < 200; i++ {
		hub.Publish(Event{Type: EventInsert, Table: "reports", ReportID: uint(i)})
	}

	assert.Len(t, sub.C, cap(sub.C))
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(0)

	require.Equal(t, 1, hub.SubscriberCount())
	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.SubscriberCount())

	_, open := <-sub.C
	assert.False(t, open)

	// Double unsubscribe is a no-op.
	hub.Unsubscribe(sub)
}

func TestHub_PublishAfterUnsubscribe(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(0)
	hub.Unsubscribe(sub)

	hub.Publish(Event{Type: EventDelete, Table: "reports", ReportID: 1})
}
