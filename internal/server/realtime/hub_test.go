package realtime

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/tasksync/internal/realtime"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startHub(t *testing.T, cfg Config) *Hub {
	t.Helper()

	hub := NewHub(testLogger(), cfg)
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

// newTestSession регистрирует сессию без реального websocket соединения
func newTestSession(t *testing.T, hub *Hub, id, userID, deviceID string) *Session {
	t.Helper()

	s := &Session{
		ID:       id,
		UserID:   userID,
		DeviceID: deviceID,
		hub:      hub,
		logger:   testLogger(),
		send:     make(chan []byte, 64),
	}
	hub.register <- s
	return s
}

func waitSessions(t *testing.T, hub *Hub, userID string, want int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return hub.UserSessions(userID) == want
	}, time.Second, 5*time.Millisecond)
}

func TestHub_BroadcastToUser_ExcludesOriginDevice(t *testing.T) {
	hub := startHub(t, DefaultConfig())

	origin := newTestSession(t, hub, "s1", "user-1", "device-a")
	other := newTestSession(t, hub, "s2", "user-1", "device-b")
	waitSessions(t, hub, "user-1", 2)

	msg := realtime.NewEntityUpdated("task", "task-1", "update", "user-1", "device-a", nil, 1000)
	hub.BroadcastToUser("user-1", msg, "device-a")

	select {
	case data := <-other.send:
		decoded, err := realtime.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, "task-1", decoded.EntityID)
	case <-time.After(time.Second):
		t.Fatal("other session did not receive broadcast")
	}

	// Сессия-источник не получает собственное событие
	select {
	case <-origin.send:
		t.Fatal("origin session received its own broadcast")
	default:
	}
}

func TestHub_BroadcastToUser_OtherUserNotReached(t *testing.T) {
	hub := startHub(t, DefaultConfig())

	alice := newTestSession(t, hub, "s1", "alice", "device-a")
	bob := newTestSession(t, hub, "s2", "bob", "device-b")
	waitSessions(t, hub, "alice", 1)
	waitSessions(t, hub, "bob", 1)

	msg := realtime.NewEntityUpdated("task", "task-1", "update", "alice", "", nil, 1000)
	hub.BroadcastToUser("alice", msg, "")

	select {
	case <-alice.send:
	case <-time.After(time.Second):
		t.Fatal("alice did not receive broadcast")
	}

	select {
	case <-bob.send:
		t.Fatal("broadcast leaked to another user")
	default:
	}
}

func TestHub_BroadcastToUser_UnknownUser(t *testing.T) {
	hub := startHub(t, DefaultConfig())

	// Не должно паниковать и блокироваться
	msg := realtime.NewEntityUpdated("task", "task-1", "update", "ghost", "", nil, 1000)
	hub.BroadcastToUser("ghost", msg, "")
}

func TestHub_MaxSessionsPerUser(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSessionsPerUser = 2
	hub := startHub(t, cfg)

	newTestSession(t, hub, "s1", "user-1", "device-a")
	newTestSession(t, hub, "s2", "user-1", "device-b")
	waitSessions(t, hub, "user-1", 2)

	// Третья сессия сверх лимита отклоняется: её send канал закрывается
	rejected := newTestSession(t, hub, "s3", "user-1", "device-c")

	select {
	case _, ok := <-rejected.send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("rejected session's send channel was not closed")
	}

	assert.Equal(t, 2, hub.UserSessions("user-1"))
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t, DefaultConfig())

	s := newTestSession(t, hub, "s1", "user-1", "device-a")
	waitSessions(t, hub, "user-1", 1)

	hub.unregister <- s
	waitSessions(t, hub, "user-1", 0)

	// Закрытый канал сигнализирует WritePump о завершении
	_, ok := <-s.send
	assert.False(t, ok)
}

func TestHub_InboundPresenceRelayed(t *testing.T) {
	hub := startHub(t, DefaultConfig())

	origin := newTestSession(t, hub, "s1", "user-1", "device-a")
	other := newTestSession(t, hub, "s2", "user-1", "device-b")
	waitSessions(t, hub, "user-1", 2)

	presence := &realtime.Message{
		Type:     realtime.TypeUserPresence,
		Entity:   "task",
		EntityID: "task-1",
	}
	data, err := presence.Encode()
	require.NoError(t, err)

	hub.inbound <- &sessionMessage{session: origin, data: data}

	select {
	case relayed := <-other.send:
		decoded, err := realtime.Decode(relayed)
		require.NoError(t, err)
		assert.Equal(t, realtime.TypeUserPresence, decoded.Type)
		// Hub проставляет отправителя из сессии
		assert.Equal(t, "user-1", decoded.UserID)
		assert.Equal(t, "device-a", decoded.DeviceID)
	case <-time.After(time.Second):
		t.Fatal("presence message was not relayed")
	}

	select {
	case <-origin.send:
		t.Fatal("presence relayed back to origin")
	default:
	}
}

func TestHub_InboundHeartbeatSwallowed(t *testing.T) {
	hub := startHub(t, DefaultConfig())

	origin := newTestSession(t, hub, "s1", "user-1", "device-a")
	other := newTestSession(t, hub, "s2", "user-1", "device-b")
	waitSessions(t, hub, "user-1", 2)

	data, err := realtime.NewHeartbeat("device-a").Encode()
	require.NoError(t, err)

	hub.inbound <- &sessionMessage{session: origin, data: data}

	// heartbeat не ретранслируется
	select {
	case <-other.send:
		t.Fatal("heartbeat was relayed")
	case <-time.After(50 * time.Millisecond):
	}
}
