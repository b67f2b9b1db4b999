package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testClient(sessionID string) *Client {
	return &Client{sessionID: sessionID, send: make(chan []byte, 16)}
}

func receive(t *testing.T, c *Client) map[string]any {
	select {
	case raw := <-c.send:
		var payload map[string]any
		assert.NoError(t, json.Unmarshal(raw, &payload))
		return payload
	case <-time.After(time.Second):
		t.Fatal("сообщение не получено")
		return nil
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := testClient("s1")
	hub.Register(client)

	err := hub.BroadcastToSession("s1", EventSaveStatus, map[string]string{"status": "saved"})
	assert.NoError(t, err)

	payload := receive(t, client)
	assert.Equal(t, EventSaveStatus, payload["type"])
	data, ok := payload["data"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "saved", data["status"])
}

func TestHubSessionIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	subscribed := testClient("s1")
	other := testClient("s2")
	hub.Register(subscribed)
	hub.Register(other)

	assert.NoError(t, hub.BroadcastToSession("s1", EventExportDone, map[string]string{"id": "e1"}))

	payload := receive(t, subscribed)
	assert.Equal(t, EventExportDone, payload["type"])

	select {
	case <-other.send:
		t.Fatal("клиент чужой сессии получил сообщение")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := testClient("s1")
	hub.Register(client)
	hub.Unregister(client)

	assert.NoError(t, hub.BroadcastToSession("s1", EventSaveStatus, nil))

	select {
	case <-client.send:
		t.Fatal("отписанный клиент получил сообщение")
	case <-time.After(50 * time.Millisecond):
	}
}
