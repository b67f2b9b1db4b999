package ws

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/propozzals/proposal-backend/internal/goroutine"
	"github.com/propozzals/proposal-backend/internal/logger"
)

// События, которые сервер отправляет подписчикам документа.
const (
	EventSaveStatus     = "draft.save_status"
	EventExportStarted  = "export.started"
	EventExportDone     = "export.done"
	EventExportFailed   = "export.failed"
	EventPaymentUpdated = "payment.updated"
)

// Hub управляет всеми WebSocket клиентами, сгруппированными по сессии документа.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
}

type message struct {
	sessionID string
	payload   []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.sessionID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastToSession отправляет событие всем подписчикам сессии документа.
// Поле "type" содержит имя события, "data" — полезную нагрузку.
func (h *Hub) BroadcastToSession(sessionID, event string, data any) error {
	payload := map[string]any{
		"type": event,
		"data": data,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	h.broadcast <- message{sessionID: sessionID, payload: raw}
	return nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.sessionID]; !ok {
		h.clients[client.sessionID] = make(map[*Client]struct{})
	}
	h.clients[client.sessionID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.sessionID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.sessionID)
		}
	}
}

func (h *Hub) send(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[sessionID] {
		select {
		case client.send <- payload:
		default:
			// Медленный клиент: закрываем соединение, не блокируя рассылку
			c := client
			goroutine.SafeGo(func() {
				logger.Log.WithField("session_id", sessionID).Warn("ws: отключаем медленного клиента")
				c.Close()
			})
		}
	}
}
