package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"icebreak/internal/model"
	"icebreak/internal/transport/rest/middleware"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 2048
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced by the REST layer
	},
}

// LocalScorer is the rule-based scorer used for keystroke-level feedback
type LocalScorer interface {
	ScoreLocal(message string) model.ClientScoreResult
}

// Handler handles WebSocket connections
type Handler struct {
	hub    *Hub
	scorer LocalScorer
	logger *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, scorer LocalScorer, logger *zap.Logger) *Handler {
	return &Handler{
		hub:    hub,
		scorer: scorer,
		logger: logger,
	}
}

type scoreRequest struct {
	Message string `json:"message"`
}

// ScoreWS handles GET /v1/ws/score
func (h *Handler) ScoreWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := NewSession(middleware.GetClientID(r.Context()))
	if !h.hub.Register(session) {
		wsConn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		wsConn.Close()
		return
	}

	go h.writePump(wsConn, session)
	go h.readPump(wsConn, session)
}

func (h *Handler) readPump(wsConn *websocket.Conn, session *Session) {
	defer func() {
		h.hub.Unregister(session)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read ended", zap.Error(err))
			}
			return
		}

		var req scoreRequest
		if err := json.Unmarshal(data, &req); err != nil {
			session.send(encode(MsgError, map[string]string{"error": "invalid message"}))
			continue
		}
		session.send(encode(MsgClientScore, h.scorer.ScoreLocal(req.Message)))
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, session *Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-session.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
