package livefeed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types pushed to session watchers.
const (
	EventCheckin  = "checkin"
	EventOverride = "override"
)

// Event is one attendance feed item pushed to everyone watching a session.
type Event struct {
	Type       string    `json:"type"`
	SessionID  int64     `json:"sessionId"`
	RecordID   int64     `json:"recordId,omitempty"`
	StudentID  int64     `json:"studentId"`
	StudentNo  string    `json:"studentNo"`
	FullName   string    `json:"fullName"`
	Status     string    `json:"status"`
	Method     string    `json:"method"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Hub maintains the set of watchers per attendance session and fans
// published events out to them.
type Hub struct {
	// Registered clients organized by session ID
	clients map[int64]map[*Client]bool

	// Channel for events to fan out
	publish chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for event listeners
	listenersMu sync.RWMutex

	// Event listeners receive every published event regardless of session
	eventListeners []chan *Event

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		publish:        make(chan *Event),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		clients:        make(map[int64]map[*Client]bool),
		eventListeners: []chan *Event{},
		logger:         logger,
	}
}

// Run starts the hub, handling client registrations and event fan-out.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.publish:
			h.fanOut(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessionID := client.sessionID
	if _, ok := h.clients[sessionID]; !ok {
		h.clients[sessionID] = make(map[*Client]bool)
	}
	h.clients[sessionID][client] = true

	h.logger.Info().
		Int64("sessionID", sessionID).
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Feed watcher registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessionID := client.sessionID
	if _, ok := h.clients[sessionID]; ok {
		if _, ok := h.clients[sessionID][client]; ok {
			delete(h.clients[sessionID], client)
			close(client.send)

			if len(h.clients[sessionID]) == 0 {
				delete(h.clients, sessionID)
			}

			h.logger.Info().
				Int64("sessionID", sessionID).
				Int64("userID", client.userID).
				Msg("Feed watcher unregistered")
		}
	}
}

// fanOut serializes an event and pushes it to every watcher of its session.
func (h *Hub) fanOut(event *Event) {
	h.notifyEventListeners(event)

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("sessionID", event.SessionID).
			Msg("Failed to marshal feed event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[event.SessionID]
	if !ok {
		h.logger.Debug().
			Int64("sessionID", event.SessionID).
			Msg("No watchers for session event")
		return
	}

	delivered := 0
	for client := range clients {
		select {
		case client.send <- data:
			delivered++
		default:
			// Watcher cannot keep up, drop the connection
			close(client.send)
			delete(clients, client)
		}
	}
	if len(clients) == 0 {
		delete(h.clients, event.SessionID)
	}

	h.logger.Debug().
		Int64("sessionID", event.SessionID).
		Int("watcherCount", delivered).
		Msg("Feed event delivered")
}

func (h *Hub) notifyEventListeners(event *Event) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.eventListeners {
		select {
		case listener <- event:
		default:
			// Listener's channel is full, skip it
			h.logger.Warn().Msg("Skipped slow feed listener")
		}
	}
}

// Publish delivers an event to every watcher of its session.
func (h *Hub) Publish(event *Event) {
	h.publish <- event
}

// WatcherCount returns the number of connected watchers for a session.
func (h *Hub) WatcherCount(sessionID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[sessionID]; ok {
		return len(clients)
	}
	return 0
}

// AddEventListener registers a channel that receives every published event.
func (h *Hub) AddEventListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.eventListeners = append(h.eventListeners, listener)
}

// RemoveEventListener removes a previously registered listener.
func (h *Hub) RemoveEventListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.eventListeners {
		if l == listener {
			h.eventListeners[i] = h.eventListeners[len(h.eventListeners)-1]
			h.eventListeners = h.eventListeners[:len(h.eventListeners)-1]
			break
		}
	}
}
