// Package stream pushes market aggregate updates to WebSocket
// subscribers, so observers watch sentiment move without polling.
// Individual positions never flow through here, only aggregates.
package stream

import (
	"context"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

// Hub fans aggregate updates out to connected clients. It implements
// ledger.AggregateNotifier; NotifyAggregate never blocks the ledger.
type Hub struct {
	clients    map[*websocket.Conn]struct{}
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	logger *zap.Logger
}

// Config holds hub configuration.
type Config struct {
	Logger *zap.Logger
}

// New creates a new stream hub.
func New(cfg *Config) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     cfg.Logger,
	}
}

// Run is the hub's event loop. Blocks until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("stream-hub-starting")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("stream-hub-stopping")
			h.closeAll()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			SubscribersConnected.Set(float64(count))
			h.logger.Debug("stream-client-connected", zap.Int("total", count))

		case conn := <-h.unregister:
			h.dropClient(conn)

		case msg := <-h.broadcast:
			h.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.RUnlock()

			for _, conn := range conns {
				err := conn.WriteMessage(websocket.TextMessage, msg)
				if err != nil {
					h.dropClient(conn)
				}
			}
		}
	}
}

// NotifyAggregate queues an aggregate update for broadcast. Non-blocking:
// if the buffer is full the update is dropped, because a fresher one is
// always on its way after the next write.
func (h *Hub) NotifyAggregate(agg types.MarketAggregate) {
	data, err := json.Marshal(agg)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- data:
		UpdatesBroadcastTotal.Inc()
	default:
		UpdatesDroppedTotal.Inc()
	}
}

func (h *Hub) dropClient(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
	count := len(h.clients)
	h.mu.Unlock()
	SubscribersConnected.Set(float64(count))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	SubscribersConnected.Set(0)
}

//nolint:gochecknoglobals // Upgrader is stateless shared configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// HandleWS upgrades an HTTP request to a WebSocket subscription.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket-upgrade-failed", zap.Error(err))
		return
	}

	h.register <- conn

	// Reader loop exists to detect disconnects; subscribers only listen.
	go func() {
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				h.unregister <- conn
				return
			}
		}
	}()
}
