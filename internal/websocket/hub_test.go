package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroadcastRequestEventReachesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{ID: "test-client", Hub: hub, Send: make(chan []byte, 1)}
	hub.register <- client

	// Registration is async; give the dispatch loop a moment
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return hub.clients[client]
	}, time.Second, 5*time.Millisecond)

	// The queueing is best effort, so resend until the dispatch loop picks
	// one up
	deadline := time.After(time.Second)
	for {
		hub.BroadcastRequestEvent(EventRequestApproved, 7, "REQ-2026-42", "approved")
		select {
		case raw := <-client.Send:
			var event RequestEvent
			require.NoError(t, json.Unmarshal(raw, &event))
			require.Equal(t, EventRequestApproved, event.Event)
			require.Equal(t, uint(7), event.RequestID)
			require.Equal(t, "REQ-2026-42", event.RequestNumber)
			require.Equal(t, "approved", event.Status)
			return
		case <-deadline:
			t.Fatal("no event delivered")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBroadcastRequestEventOnNilHub(t *testing.T) {
	var hub *Hub
	// Must not panic when the server runs without a hub (tests, tools)
	hub.BroadcastRequestEvent(EventRequestCreated, 1, "REQ-2026-1", "pending")
}

func TestBroadcastNeverBlocksWithoutListeners(t *testing.T) {
	hub := NewHub()
	// Run loop intentionally not started

	done := make(chan struct{})
	go func() {
		hub.BroadcastRequestEvent(EventRequestCreated, 1, "REQ-2026-1", "pending")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked the caller")
	}
}
