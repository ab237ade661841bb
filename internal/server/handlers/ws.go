package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iudanet/tasksync/internal/server/realtime"
)

// WSHandler апгрейдит HTTP соединение до websocket и вешает сессию на hub
type WSHandler struct {
	logger   *slog.Logger
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(logger *slog.Logger, hub *realtime.Hub) *WSHandler {
	return &WSHandler{
		logger: logger,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Клиенты — CLI/desktop процессы, а не браузеры; Origin не проверяем
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS обрабатывает GET /api/v1/ws.
// Аутентификация выполняется AuthMiddleware до апгрейда.
func (h *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	deviceID := r.Header.Get(DeviceIDHeader)
	if deviceID == "" {
		deviceID = r.URL.Query().Get("device_id")
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	session := realtime.NewSession(uuid.New().String(), userID, deviceID, conn, h.hub, h.logger)

	go session.WritePump()
	go session.ReadPump()
}
