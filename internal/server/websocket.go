package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/contract"
)

// WebSocketConfig holds per-connection limits for live guidance.
type WebSocketConfig struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
}

func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Sockets authenticate with a bearer token, never cookies.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Socket message types sent to the client.
const (
	wsTypeSession  = "session"
	wsTypeGuidance = "guidance"
	wsTypeError    = "error"
)

type wsMessage struct {
	Type     string             `json:"type"`
	Session  *sessionView       `json:"session,omitempty"`
	Guidance *composer.Guidance `json:"guidance,omitempty"`
	Error    *errorBody         `json:"error,omitempty"`
}

// guideConn serializes writes; gorilla connections allow one concurrent
// writer.
type guideConn struct {
	conn *websocket.Conn
	cfg  WebSocketConfig
	mu   sync.Mutex
}

func (c *guideConn) send(msg wsMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
	return c.conn.WriteJSON(msg)
}

func (c *guideConn) closeWith(code int, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(c.cfg.WriteWait))
}

func (c *guideConn) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.mu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.cfg.WriteWait))
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// guideSocket streams guidance: each client message carries check-ins for
// the current zone and is answered with the next guidance. The socket closes
// once the composer ends the excursion.
func (h *handlers) guideSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := h.ownedSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(r.Context(), "websocket_upgrade_failed", "error", err)
		return
	}
	defer conn.Close()

	c := &guideConn{conn: conn, cfg: h.ws}
	conn.SetReadLimit(h.ws.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.ws.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.ws.PongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go c.pingLoop(done)

	view := toSessionView(sess)
	if err := c.send(wsMessage{Type: wsTypeSession, Session: &view}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WarnContext(r.Context(), "websocket_read_failed", "session_id", sess.ID, "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.ws.PongWait))

		var body guideBody
		if err := json.Unmarshal(data, &body); err != nil {
			if c.send(wsMessage{Type: wsTypeError, Error: &errorBody{Code: "INVALID_INPUT", Message: "malformed message"}}) != nil {
				return
			}
			continue
		}

		guidance, err := h.svcs.Sessions.Guide(r.Context(), contract.GuideRequest{
			SessionID: sess.ID,
			ZoneID:    body.ZoneID,
			CheckIns:  body.CheckIns,
		})
		if err != nil {
			status, eb := classify(err)
			if status >= http.StatusInternalServerError {
				h.logger.ErrorContext(r.Context(), "websocket_guide_failed", "session_id", sess.ID, "error", err)
			}
			if c.send(wsMessage{Type: wsTypeError, Error: &eb}) != nil {
				return
			}
			continue
		}

		if err := c.send(wsMessage{Type: wsTypeGuidance, Guidance: guidance}); err != nil {
			return
		}
		if guidance.NextAction == composer.NextEndExcursion {
			c.closeWith(websocket.CloseNormalClosure, "excursion complete")
			return
		}
	}
}
