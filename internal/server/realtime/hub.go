// Package realtime реализует серверную часть broadcast канала:
// fan-out событий entity_updated/presence/typing между активными
// сессиями пользователя. Канал best-effort и не участвует
// в обнаружении конфликтов.
package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/tasksync/internal/realtime"
)

// Hub ведет реестр активных websocket сессий с индексом по пользователю
type Hub struct {
	logger     *slog.Logger
	sessions   map[string]*Session
	userIndex  map[string]map[string]bool // userID -> set of session ids
	mu         sync.RWMutex
	register   chan *Session
	unregister chan *Session
	inbound    chan *sessionMessage
	done       chan struct{}

	maxPerUser int
	writeWait  time.Duration
	pongWait   time.Duration
	pingPeriod time.Duration
}

type sessionMessage struct {
	session *Session
	data    []byte
}

// Config параметры hub
type Config struct {
	MaxSessionsPerUser int
	WriteWait          time.Duration
	PongWait           time.Duration
	PingPeriod         time.Duration
}

// DefaultConfig returns hub defaults suitable for production
func DefaultConfig() Config {
	return Config{
		MaxSessionsPerUser: 8,
		WriteWait:          10 * time.Second,
		PongWait:           60 * time.Second,
		PingPeriod:         54 * time.Second,
	}
}

// NewHub creates a new realtime hub
func NewHub(logger *slog.Logger, cfg Config) *Hub {
	return &Hub{
		logger:     logger,
		sessions:   make(map[string]*Session),
		userIndex:  make(map[string]map[string]bool),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		inbound:    make(chan *sessionMessage),
		done:       make(chan struct{}),
		maxPerUser: cfg.MaxSessionsPerUser,
		writeWait:  cfg.WriteWait,
		pongWait:   cfg.PongWait,
		pingPeriod: cfg.PingPeriod,
	}
}

// Run запускает цикл обработки регистраций и входящих сообщений.
// Блокирует до вызова Stop.
func (h *Hub) Run() {
	for {
		select {
		case s := <-h.register:
			h.addSession(s)
		case s := <-h.unregister:
			h.removeSession(s)
		case msg := <-h.inbound:
			h.handleInbound(msg)
		case <-h.done:
			return
		}
	}
}

// Stop останавливает цикл hub
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) addSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.userIndex[s.UserID] == nil {
		h.userIndex[s.UserID] = make(map[string]bool)
	}

	if len(h.userIndex[s.UserID]) >= h.maxPerUser {
		h.logger.Warn("Max sessions reached for user", "user_id", s.UserID)
		close(s.send)
		return
	}

	h.sessions[s.ID] = s
	h.userIndex[s.UserID][s.ID] = true

	h.logger.Info("Realtime session registered",
		"session_id", s.ID,
		"user_id", s.UserID,
		"device_id", s.DeviceID)
}

func (h *Hub) removeSession(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return
	}

	delete(h.sessions, s.ID)
	delete(h.userIndex[s.UserID], s.ID)
	if len(h.userIndex[s.UserID]) == 0 {
		delete(h.userIndex, s.UserID)
	}

	close(s.send)
	h.logger.Info("Realtime session unregistered", "session_id", s.ID, "user_id", s.UserID)
}

// handleInbound обрабатывает сообщение от сессии.
// heartbeat поглощается (read deadline уже сдвинут фактом чтения);
// presence/typing ретранслируются остальным сессиям пользователя.
func (h *Hub) handleInbound(sm *sessionMessage) {
	msg, err := realtime.Decode(sm.data)
	if err != nil {
		h.logger.Warn("Failed to decode realtime message",
			"session_id", sm.session.ID,
			"error", err)
		return
	}

	switch msg.Type {
	case realtime.TypeHeartbeat:
		// keepalive, ничего не делаем
	case realtime.TypeUserPresence, realtime.TypeUserTyping:
		msg.UserID = sm.session.UserID
		msg.DeviceID = sm.session.DeviceID
		h.BroadcastToUser(sm.session.UserID, msg, sm.session.DeviceID)
	default:
		h.logger.Warn("Unexpected inbound message type",
			"session_id", sm.session.ID,
			"type", string(msg.Type))
	}
}

// BroadcastToUser рассылает сообщение всем сессиям пользователя,
// кроме сессии-источника (excludeDeviceID). Медленная сессия
// с переполненным буфером отключается, а не блокирует рассылку.
func (h *Hub) BroadcastToUser(userID string, msg *realtime.Message, excludeDeviceID string) {
	data, err := msg.Encode()
	if err != nil {
		h.logger.Error("Failed to encode realtime message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sessionIDs, ok := h.userIndex[userID]
	if !ok {
		return
	}

	for id := range sessionIDs {
		s := h.sessions[id]
		if excludeDeviceID != "" && s.DeviceID == excludeDeviceID {
			continue
		}

		select {
		case s.send <- data:
		default:
			h.logger.Warn("Session send buffer full, dropping session", "session_id", id)
			go func(sess *Session) { h.unregister <- sess }(s)
		}
	}
}

// UserSessions возвращает число активных сессий пользователя
func (h *Hub) UserSessions(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.userIndex[userID])
}
