package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const pingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWebSocket streams the store's View: once on connect, then after every
// change until the client goes away or the server shuts down.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	clientID := uuid.NewString()
	s.logger.Debug("WebSocket client %s connected", clientID)
	defer s.logger.Debug("WebSocket client %s disconnected", clientID)

	updates := s.store.Subscribe()
	defer s.store.Unsubscribe(updates)

	if err := conn.WriteJSON(s.store.Snapshot()); err != nil {
		s.logger.Error("Failed to write WebSocket message: %v", err)
		return
	}

	// The client only reads; draining lets us notice a close frame.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case view, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(view); err != nil {
				s.logger.Error("Failed to write WebSocket message: %v", err)
				return
			}

		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-closed:
			return

		case <-s.ctx.Done():
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}
