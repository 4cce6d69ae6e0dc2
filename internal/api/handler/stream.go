package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/inkwell-app/inkwell/internal/api/middleware"
	"github.com/inkwell-app/inkwell/internal/api/response"
	"github.com/inkwell-app/inkwell/internal/repository/redis"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Tokens authenticate the socket, not origins. Browser clients pass the
	// access token as a query parameter on the upgrade request.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler pushes live notifications to connected clients over a
// WebSocket, backed by the per-user Redis channel.
type StreamHandler struct {
	publisher *redis.NotificationPublisher
	log       zerolog.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(publisher *redis.NotificationPublisher, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{publisher: publisher, log: log}
}

// Stream upgrades the connection and relays the user's notification channel
// until the client disconnects.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := h.publisher.Subscribe(r.Context(), userID)
	defer sub.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine only services control frames; clients never send data.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	messages := sub.Channel()
	for {
		select {
		case msg, open := <-messages:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
