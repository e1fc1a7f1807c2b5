package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BroadcastBuffer is how many encoded messages may wait for Run before
// Publish starts dropping them.
const BroadcastBuffer = 256

type Hub struct {
	Clients    map[*websocket.Conn]string
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		Clients:    make(map[*websocket.Conn]string),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, BroadcastBuffer),
		logger:     logger,
	}
}

// Publish marshals payload and queues it for Run without blocking the caller.
// Messages reach clients in publish order; when the queue is full the message
// is dropped.
func (h *Hub) Publish(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode ws payload", zap.Error(err))
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.logger.Warn("ws broadcast queue full, message dropped", zap.Int("queued", len(h.Broadcast)))
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			id := uuid.NewString()
			h.mutex.Lock()
			h.Clients[conn] = id
			count := len(h.Clients)
			h.mutex.Unlock()
			h.logger.Info("ws client connected", zap.String("client_id", id), zap.Int("clients", count))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if id, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
				h.logger.Info("ws client disconnected", zap.String("client_id", id))
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn, id := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Warn("ws write failed, dropping client", zap.String("client_id", id), zap.Error(err))
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
