package livefeed

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	return hub
}

func TestHub_PublishReachesListeners(t *testing.T) {
	hub := newTestHub()

	listener := make(chan *Event, 1)
	hub.AddEventListener(listener)

	sent := &Event{
		Type:       EventCheckin,
		SessionID:  42,
		StudentID:  7,
		StudentNo:  "20250001",
		FullName:   "Test Student",
		Status:     "present",
		Method:     "qr",
		RecordedAt: time.Now(),
	}
	hub.Publish(sent)

	select {
	case got := <-listener:
		assert.Equal(t, EventCheckin, got.Type)
		assert.Equal(t, int64(42), got.SessionID)
		assert.Equal(t, "20250001", got.StudentNo)
		assert.Equal(t, "present", got.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not receive published event")
	}
}

func TestHub_RemovedListenerReceivesNothing(t *testing.T) {
	hub := newTestHub()

	listener := make(chan *Event, 1)
	hub.AddEventListener(listener)
	hub.RemoveEventListener(listener)

	hub.Publish(&Event{Type: EventCheckin, SessionID: 1})

	select {
	case <-listener:
		t.Fatal("removed listener should not receive events")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_SlowListenerIsSkipped(t *testing.T) {
	hub := newTestHub()

	// Unbuffered with no reader, the hub must not block on it
	slow := make(chan *Event)
	fast := make(chan *Event, 2)
	hub.AddEventListener(slow)
	hub.AddEventListener(fast)

	hub.Publish(&Event{Type: EventCheckin, SessionID: 5})
	hub.Publish(&Event{Type: EventOverride, SessionID: 5})

	received := 0
	timeout := time.After(2 * time.Second)
	for received < 2 {
		select {
		case <-fast:
			received++
		case <-timeout:
			t.Fatalf("fast listener received %d of 2 events", received)
		}
	}
}

func TestHub_WatcherCount(t *testing.T) {
	hub := newTestHub()

	require.Equal(t, 0, hub.WatcherCount(99))
}
