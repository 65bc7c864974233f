package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gocomet/taxi-dispatch/pkg/logger"
)

// Event types pushed to connected dashboards
const (
	EventTripDispatched   = "trip_dispatched"
	EventTripFailed       = "trip_failed"
	EventTripCompleted    = "trip_completed"
	EventTripCancelled    = "trip_cancelled"
	EventFeedbackRecorded = "feedback_recorded"
	EventNotification     = "notification"
)

// Message is a typed event sent over the wire
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub maintains active client connections and fans out dispatch events
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *logger.Logger
}

// NewHub creates a hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("WebSocket client connected",
				logger.String("client_id", client.ID),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket client disconnected",
				logger.String("client_id", client.ID),
			)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register registers a new client
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends an event to every connected client
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to marshal broadcast message", logger.Err(err))
		return
	}
	h.broadcast <- data
}

// Notify implements the fire-and-forget notification sink: the message
// is delivered to the user's connected clients and silently dropped when
// none are connected or a send buffer is full.
func (h *Hub) Notify(userID, message string) {
	data, err := json.Marshal(Message{
		Type: EventNotification,
		Data: map[string]string{"user_id": userID, "message": message},
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- data:
		default:
		}
	}
}
