package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgClientScore MessageType = "client_score"
	MsgError       MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Session is one live scoring connection
type Session struct {
	ClientID string
	Send     chan []byte

	mu     sync.Mutex
	closed bool
}

// NewSession creates a session with a buffered outbound queue
func NewSession(clientID string) *Session {
	return &Session{
		ClientID: clientID,
		Send:     make(chan []byte, 16),
	}
}

// send queues data; it drops the frame when the client is not keeping up
func (s *Session) send(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.Send <- data:
		return true
	default:
		return false
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.Send)
	}
}

// Hub tracks open sessions so shutdown can close them; the HTTP server does
// not close hijacked connections on its own.
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	closed   bool
	logger   *zap.Logger
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[*Session]struct{}),
		logger:   logger,
	}
}

// Register adds a session; it fails once the hub is shut down
func (h *Hub) Register(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[s] = struct{}{}
	h.logger.Debug("live scoring session opened", zap.String("client_id", s.ClientID), zap.Int("sessions", len(h.sessions)))
	return true
}

// Unregister removes a session and closes its queue
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[s]; ok {
		delete(h.sessions, s)
		h.logger.Debug("live scoring session closed", zap.String("client_id", s.ClientID), zap.Int("sessions", len(h.sessions)))
	}
	h.mu.Unlock()
	s.close()
}

// Count returns the number of open sessions
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Shutdown closes every session queue; each write pump then sends a close frame
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	sessions := h.sessions
	h.sessions = make(map[*Session]struct{})
	h.mu.Unlock()

	for s := range sessions {
		s.close()
	}
	if len(sessions) > 0 {
		h.logger.Info("closed live scoring sessions", zap.Int("count", len(sessions)))
	}
}

func encode(msgType MessageType, payload interface{}) []byte {
	raw, _ := json.Marshal(payload)
	data, _ := json.Marshal(&Message{Type: msgType, Payload: raw})
	return data
}
