package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const maxDashboardConns = 32

// Hub pushes alert text to connected dashboard clients. It satisfies
// notifier.Gateway so the reminder cycle can fan alerts out to the UI
// alongside Telegram.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handle upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if len(h.conns) >= maxDashboardConns {
		h.mu.Unlock()
		h.logger.Warnf("websocket connection limit reached, rejecting client")
		conn.Close()
		return
	}
	h.conns[conn] = true
	total := len(h.conns)
	h.mu.Unlock()
	h.logger.Infof("dashboard client connected (total: %d)", total)

	go h.readLoop(conn)
}

// readLoop drains client frames so pings are answered and closure is
// noticed.
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		delete(h.conns, conn)
		conn.Close()
		h.logger.Infof("dashboard client disconnected (remaining: %d)", len(h.conns))
	}
}

// Send broadcasts alert text to every connected client. Broadcast is
// best-effort: a client that cannot be written to is dropped, and the
// overall result is success as long as the hub itself is up.
func (h *Hub) Send(_ context.Context, text string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
			h.logger.Errorf("websocket push failed, dropping client: %v", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
	return true
}
