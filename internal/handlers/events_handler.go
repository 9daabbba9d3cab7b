package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	apperrors "profitflow/internal/errors"
	"profitflow/internal/logger"
	"profitflow/internal/realtime"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	sseKeepAlive = 25 * time.Second
)

// EventsHandler streams the caller's live channel over SSE or WebSocket.
type EventsHandler struct {
	broker   realtime.Broker
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new EventsHandler. allowedOrigins of "*" accepts
// any WebSocket origin.
func NewEventsHandler(broker realtime.Broker, allowedOrigins []string) *EventsHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &EventsHandler{
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins["*"] || origins[origin]
			},
		},
	}
}

// Stream handles the Server-Sent Events channel.
// @Summary     Live events (SSE)
// @Description Server-Sent Events of the caller's notifications and wallet updates
// @Tags        events
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {string} string "event stream"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /events/stream [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sub, err := h.broker.Subscribe(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer sub.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	keepAlive := time.NewTicker(sseKeepAlive)
	defer keepAlive.Stop()

	c.SSEvent("connected", gin.H{"user_id": userID})
	c.Stream(func(_ io.Writer) bool {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{"timestamp": time.Now().UTC()})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// WebSocket handles the WebSocket channel. Clients send nothing but pongs.
// @Summary     Live events (WebSocket)
// @Tags        events
// @Security    BearerAuth
// @Success     101 {string} string "switching protocols"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /events/ws [get]
func (h *EventsHandler) WebSocket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Warnw("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}
	defer conn.Close()

	sub, err := h.broker.Subscribe(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Errorw("live subscription failed", "user_id", userID, "error", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscription failed"),
			time.Now().Add(wsWriteWait))
		return
	}
	defer sub.Close()

	closed := make(chan struct{})
	go readPump(conn, closed)

	hello, _ := json.Marshal(gin.H{"type": "CONNECTED", "user_id": userID, "timestamp": time.Now().UTC()})
	if err := writeFrame(conn, websocket.TextMessage, hello); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				_ = writeFrame(conn, websocket.CloseMessage, nil)
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if err := writeFrame(conn, websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := writeFrame(conn, websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Get().Debugw("websocket read error", "error", err)
			}
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, messageType int, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteMessage(messageType, data)
}
