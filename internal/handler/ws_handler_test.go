package handler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHub() *Hub {
	hub := &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     zap.NewNop(),
	}
	go hub.run()
	return hub
}

func (h *Hub) hasClient(roomID uuid.UUID, client *Client) bool {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return h.clients[roomID][client]
}

func TestHub_BroadcastDeliversToRoom(t *testing.T) {
	hub := newTestHub()
	roomID := uuid.New()

	client := &Client{send: make(chan []byte, 1), roomID: roomID, userID: uuid.New()}
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.hasClient(roomID, client)
	}, time.Second, 5*time.Millisecond)

	hub.broadcastToRoom(roomID, []byte("hello"))

	select {
	case msg := <-client.send:
		assert.Equal(t, "hello", string(msg))
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast message")
	}
}

func TestHub_BroadcastDropsSlowConsumer(t *testing.T) {
	hub := newTestHub()
	roomID := uuid.New()

	slow := &Client{send: make(chan []byte), roomID: roomID, userID: uuid.New()}
	hub.register <- slow
	require.Eventually(t, func() bool {
		return hub.hasClient(roomID, slow)
	}, time.Second, 5*time.Millisecond)

	// Nothing reads slow.send, so the broadcast cannot enqueue
	hub.broadcastToRoom(roomID, []byte("first"))

	require.Eventually(t, func() bool {
		return !hub.hasClient(roomID, slow)
	}, time.Second, 5*time.Millisecond)

	// The unregister handler closed send exactly once
	if _, open := <-slow.send; open {
		t.Fatal("expected send channel to be closed")
	}

	// A second broadcast and a redundant unregister must not panic the hub
	hub.broadcastToRoom(roomID, []byte("second"))
	hub.unregister <- slow

	fresh := &Client{send: make(chan []byte, 1), roomID: roomID, userID: uuid.New()}
	hub.register <- fresh
	require.Eventually(t, func() bool {
		return hub.hasClient(roomID, fresh)
	}, time.Second, 5*time.Millisecond)
}
