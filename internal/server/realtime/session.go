package realtime

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Session одна websocket сессия пользователя
type Session struct {
	ID       string
	UserID   string
	DeviceID string

	hub    *Hub
	conn   *websocket.Conn
	logger *slog.Logger
	send   chan []byte
}

// NewSession creates a session and registers it with the hub
func NewSession(id, userID, deviceID string, conn *websocket.Conn, hub *Hub, logger *slog.Logger) *Session {
	s := &Session{
		ID:       id,
		UserID:   userID,
		DeviceID: deviceID,
		hub:      hub,
		conn:     conn,
		logger:   logger,
		send:     make(chan []byte, 64),
	}
	hub.register <- s
	return s
}

// ReadPump читает входящие сообщения и передает их hub.
// Завершается при ошибке чтения или закрытии соединения.
func (s *Session) ReadPump() {
	defer func() {
		s.hub.unregister <- s
		_ = s.conn.Close()
	}()

	_ = s.conn.SetReadDeadline(time.Now().Add(s.hub.pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.hub.pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Websocket read error", "session_id", s.ID, "error", err)
			}
			return
		}

		// Любое сообщение (включая heartbeat) сдвигает read deadline
		_ = s.conn.SetReadDeadline(time.Now().Add(s.hub.pongWait))

		s.hub.inbound <- &sessionMessage{session: s, data: data}
	}
}

// WritePump пишет исходящие сообщения и шлет ping по таймеру
func (s *Session) WritePump() {
	ticker := time.NewTicker(s.hub.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.hub.writeWait))
			if !ok {
				// Hub закрыл канал — сессия снята с реестра
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.hub.writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
