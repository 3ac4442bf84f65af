package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"icebreak/internal/model"
	"icebreak/internal/scoring"
	"icebreak/internal/transport/rest/middleware"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ruleScorer struct {
	local *scoring.LocalScorer
}

func (s ruleScorer) ScoreLocal(message string) model.ClientScoreResult {
	return s.local.Score(message)
}

func newTestServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	h := NewHandler(hub, ruleScorer{local: scoring.NewLocalScorer()}, zap.NewNop())
	srv := httptest.NewServer(middleware.ClientID(http.HandlerFunc(h.ScoreWS)))
	t.Cleanup(func() {
		hub.Shutdown()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	header.Set(middleware.ClientIDHeader, "client-1")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestScoreWS_ScoresEachFrame(t *testing.T) {
	hub, url := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "你好"}))
	msg := readMessage(t, conn)
	assert.Equal(t, MsgClientScore, msg.Type)

	var result model.ClientScoreResult
	require.NoError(t, json.Unmarshal(msg.Payload, &result))
	assert.Equal(t, 20, result.PatternScore)
	assert.Equal(t, 0, result.LengthScore)
	assert.Len(t, result.Violations, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "看到你也喜欢徒步，我最近刚走完武功山，你觉得哪条线最值得去？"}))
	msg = readMessage(t, conn)
	require.NoError(t, json.Unmarshal(msg.Payload, &result))
	assert.Empty(t, result.Violations)
	assert.NotEmpty(t, result.Positives)

	assert.Equal(t, 1, hub.Count())
}

func TestScoreWS_InvalidJSON(t *testing.T) {
	_, url := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg := readMessage(t, conn)
	assert.Equal(t, MsgError, msg.Type)
	assert.JSONEq(t, `{"error":"invalid message"}`, string(msg.Payload))

	// the session stays usable
	require.NoError(t, conn.WriteJSON(map[string]string{"message": "在吗"}))
	assert.Equal(t, MsgClientScore, readMessage(t, conn).Type)
}

func TestScoreWS_OversizedFrameClosesSession(t *testing.T) {
	hub, url := newTestServer(t)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	big := strings.Repeat("a", maxMessageSize+1)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_ShutdownClosesSessions(t *testing.T) {
	hub, url := newTestServer(t)
	conn := dial(t, url)

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.Shutdown()
	assert.Equal(t, 0, hub.Count())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived), "got %v", err)

	assert.False(t, hub.Register(NewSession("late")))
}

func TestSession_SendAfterClose(t *testing.T) {
	s := NewSession("c")
	assert.True(t, s.send([]byte("x")))
	s.close()
	s.close()
	assert.False(t, s.send([]byte("y")))
}
