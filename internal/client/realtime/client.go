package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	httpClient "github.com/iudanet/tasksync/internal/client/api"
	"github.com/iudanet/tasksync/internal/realtime"
)

const (
	// heartbeatInterval — период отправки heartbeat сообщений
	heartbeatInterval = 25 * time.Second

	// maxReconnectAttempts — потолок попыток переподключения подряд,
	// после которого клиент переходит в StateError
	maxReconnectAttempts = 5

	// reconnectBaseDelay — начальная задержка переподключения
	reconnectBaseDelay = 1 * time.Second

	// reconnectMaxDelay — верхняя граница задержки переподключения
	reconnectMaxDelay = 30 * time.Second

	// writeTimeout — дедлайн на запись одного сообщения
	writeTimeout = 10 * time.Second
)

// ConnState описывает состояние realtime соединения
type ConnState string

const (
	StateDisconnected ConnState = "disconnected"
	StateConnecting   ConnState = "connecting"
	StateConnected    ConnState = "connected"
	StateReconnecting ConnState = "reconnecting"
	StateError        ConnState = "error"
)

// Client maintains a websocket connection to the server's realtime
// channel and dispatches incoming messages to registered handlers.
// Канал только ускоряет доставку: при его отказе клиент остается
// полностью работоспособным через обычную синхронизацию.
type Client struct {
	serverURL   string
	accessToken string
	deviceID    string
	logger      *slog.Logger

	// OnMessage вызывается для каждого входящего сообщения
	OnMessage func(msg *realtime.Message)

	// OnConnect вызывается после успешного (пере)подключения
	OnConnect func()

	mu     sync.Mutex
	state  ConnState
	conn   *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient creates a new realtime client.
// serverURL is the HTTP base URL of the server, e.g. http://localhost:8080
func NewClient(serverURL, accessToken, deviceID string, logger *slog.Logger) *Client {
	return &Client{
		serverURL:   serverURL,
		accessToken: accessToken,
		deviceID:    deviceID,
		logger:      logger,
		state:       StateDisconnected,
	}
}

// State returns the current connection state
func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(state ConnState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// wsURL строит ws:// адрес из базового http:// адреса сервера.
// Токен передается query-параметром: браузерный WebSocket API
// не умеет ставить произвольные заголовки.
func (c *Client) wsURL() (string, error) {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/ws"
	q := u.Query()
	q.Set("access_token", c.accessToken)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Run connects to the server and keeps the connection alive until
// the context is cancelled or the reconnect budget is exhausted
func (c *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	defer close(done)
	defer c.setState(StateDisconnected)

	attempts := 0

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempts == 0 {
			c.setState(StateConnecting)
		} else {
			c.setState(StateReconnecting)
		}

		conn, err := c.dial(ctx)
		if err != nil {
			attempts++
			if attempts >= maxReconnectAttempts {
				c.setState(StateError)
				return fmt.Errorf("reconnect budget exhausted: %w", err)
			}

			delay := backoffDelay(attempts)
			c.logger.Warn("Realtime connect failed, retrying",
				"attempt", attempts,
				"delay", delay,
				"error", err,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}

		// Успешное подключение сбрасывает счетчик попыток
		attempts = 0
		c.mu.Lock()
		c.conn = conn
		c.state = StateConnected
		c.mu.Unlock()

		c.logger.Info("Realtime channel connected")
		if c.OnConnect != nil {
			c.OnConnect()
		}

		err = c.readLoop(ctx, conn)
		conn.Close()

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.Warn("Realtime connection lost", "error", err)
		attempts = 1
	}
}

// dial устанавливает websocket соединение
func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	wsURL, err := c.wsURL()
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set(httpClient.DeviceIDHeader, c.deviceID)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}

	return conn, nil
}

// readLoop reads incoming messages and runs the heartbeat ticker.
// Возвращается при ошибке чтения или отмене контекста.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Heartbeat и закрытие по отмене контекста в отдельной горутине:
	// чтение блокирует основную
	go func() {
		for {
			select {
			case <-loopCtx.Done():
				// Будим заблокированный ReadMessage
				_ = conn.Close()
				return
			case <-heartbeat.C:
				msg := realtime.NewHeartbeat(c.deviceID)
				data, err := msg.Encode()
				if err != nil {
					continue
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		msg, err := realtime.Decode(data)
		if err != nil {
			c.logger.Warn("Failed to decode realtime message", "error", err)
			continue
		}

		// Свои же сообщения сервер не присылает, но страхуемся
		if msg.DeviceID == c.deviceID {
			continue
		}

		if c.OnMessage != nil {
			c.OnMessage(msg)
		}
	}
}

// Close terminates the connection and stops all timers
func (c *Client) Close() error {
	c.mu.Lock()
	cancel := c.cancel
	conn := c.conn
	done := c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		// Вежливое закрытие, ошибки не важны — соединение все равно умрет
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		_ = conn.Close()
	}

	if done != nil {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			return fmt.Errorf("timeout waiting for realtime client shutdown")
		}
	}

	return nil
}

// backoffDelay возвращает задержку перед n-й попыткой переподключения
func backoffDelay(attempt int) time.Duration {
	delay := reconnectBaseDelay << (attempt - 1)
	if delay > reconnectMaxDelay {
		return reconnectMaxDelay
	}
	return delay
}
