package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"upkeep-server/internal/infra/async"
	"upkeep-server/internal/infra/httpserver"
	"upkeep-server/internal/infra/notification"
)

const (
	_pongWait     = 60 * time.Second
	_pingInterval = 54 * time.Second
	_writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origins are enforced by the cors middleware
		return true
	},
}

// ToastWebSocketController streams every toast published on the internal
// broker to the connected dashboards.
type ToastWebSocketController struct {
	broker  async.InternalBroker
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewToastWebSocketController(broker async.InternalBroker) *ToastWebSocketController {
	ctx, cancel := context.WithCancel(context.Background())
	return &ToastWebSocketController{
		broker:  broker,
		ctx:     ctx,
		cancel:  cancel,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

var _ httpserver.Controller = (*ToastWebSocketController)(nil)

func (c *ToastWebSocketController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /ws/toasts", c.handleWebSocket())
}

func (c *ToastWebSocketController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subscription, err := c.broker.Subscribe(notification.ToastsTopic)
		if err != nil {
			slog.Error("subscribing to toasts", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusServiceUnavailable, "toasts unavailable")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			_ = c.broker.Unsubscribe(notification.ToastsTopic, subscription)
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		c.register(conn)
		slog.Info("toast client connected", slog.String("remote_addr", r.RemoteAddr))

		done := make(chan struct{})
		go c.readPump(conn, done)
		go c.writePump(conn, subscription, done)
	}
}

// readPump only drains control frames; it closes done once the peer leaves.
func (c *ToastWebSocketController) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(_pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(_pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("toast websocket read error", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (c *ToastWebSocketController) writePump(conn *websocket.Conn, subscription async.Subscription, done chan struct{}) {
	ticker := time.NewTicker(_pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.broker.Unsubscribe(notification.ToastsTopic, subscription)
		c.unregister(conn)
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(_writeWait))
			return
		case <-done:
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case msg, ok := <-subscription.Receiver:
			if !ok {
				return
			}
			toast, ok := notification.ToastFrom(msg)
			if !ok {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if err := conn.WriteJSON(toast); err != nil {
				slog.Warn("writing toast", slog.String("error", err.Error()))
				return
			}
		}
	}
}

func (c *ToastWebSocketController) register(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clients[conn] = struct{}{}
}

func (c *ToastWebSocketController) unregister(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.clients[conn]; ok {
		delete(c.clients, conn)
		_ = conn.Close()
	}
}

// Clients reports how many dashboards are connected.
func (c *ToastWebSocketController) Clients() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

func (c *ToastWebSocketController) Shutdown() {
	slog.Info("shutting down toast websocket controller")
	c.cancel()
}
