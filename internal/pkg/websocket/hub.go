package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event names pushed to connected clients
const (
	EventNotification = "notification"
	EventMatching     = "matching"
	EventMessage      = "message"
)

// Hub maintains the set of active clients keyed by user ID and pushes
// events to them. Delivery is best effort; a user with no open
// connection simply misses the push and reads the persisted
// notification later.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound events
	emit chan *envelope

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// Event is the frame sent over a WebSocket connection
type Event struct {
	// Event type: "notification", "matching" or "message"
	Event string `json:"event"`

	// User the event originates from
	From int64 `json:"from,omitempty"`

	// Short human-readable title
	Title string `json:"title,omitempty"`

	// Arbitrary event payload
	Data any `json:"data,omitempty"`

	// Timestamp when the event was emitted
	Timestamp time.Time `json:"timestamp"`
}

type envelope struct {
	userID int64
	event  *Event
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		emit:       make(chan *envelope, 64),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and event delivery
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case env := <-h.emit:
			h.deliver(env.userID, env.event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true

	h.logger.Info().
		Int64("userID", userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; ok {
		if _, ok := h.clients[userID][client]; ok {
			delete(h.clients[userID], client)
			close(client.send)

			if len(h.clients[userID]) == 0 {
				delete(h.clients, userID)
			}

			h.logger.Info().
				Int64("userID", userID).
				Str("addr", client.conn.RemoteAddr().String()).
				Msg("Client unregistered")
		}
	}
}

// deliver sends an event to every open connection of a user
func (h *Hub) deliver(userID int64, event *Event) {
	h.mu.RLock()
	clients, ok := h.clients[userID]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Int64("userID", userID).
			Str("event", event.Event).
			Msg("No open connections for event delivery")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Int64("userID", userID).
			Msg("Failed to marshal event")
		return
	}

	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Send buffer full, the client is slow or gone
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregister <- client
	}
}

// EmitToUser queues an event for a user's open connections. Never blocks
// the caller; if the hub queue is full the event is dropped.
func (h *Hub) EmitToUser(userID int64, event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case h.emit <- &envelope{userID: userID, event: event}:
	default:
		h.logger.Warn().
			Int64("userID", userID).
			Str("event", event.Event).
			Msg("Hub queue full, event dropped")
	}
}

// SendNotificationComment pushes a generic notification event to a user
func (h *Hub) SendNotificationComment(toUserID int64, title string) {
	h.EmitToUser(toUserID, &Event{Event: EventNotification, Title: title})
}

// SendMatchingRequestNotification pushes a matching request alert to a user
func (h *Hub) SendMatchingRequestNotification(toUserID int64, title string) {
	h.EmitToUser(toUserID, &Event{Event: EventMatching, Title: title})
}

// MatchingNotification pushes a matching decision event carrying the sender
func (h *Hub) MatchingNotification(fromUserID, toUserID int64, title string) {
	h.EmitToUser(toUserID, &Event{Event: EventMatching, From: fromUserID, Title: title})
}

// SendMessage pushes a chat message event to a room participant
func (h *Hub) SendMessage(toUserID, fromUserID int64, payload any) {
	h.EmitToUser(toUserID, &Event{Event: EventMessage, From: fromUserID, Data: payload})
}

// ConnectionCount returns the number of open connections across all users
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}
