// Package ws is the real-time coordination core: it accepts join, move and
// restart events over websocket connections, mutates session state through
// the rules-engine gate and fans the resulting state out to every participant
// of the session.
package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub is the registry of live connections. Each connection owns a buffered
// outbound channel; sends never block, a slow consumer drops messages.
type Hub struct {
	log *zap.Logger

	mu    sync.RWMutex
	conns map[string]chan []byte
}

const sendBuffer = 32

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:   log,
		conns: make(map[string]chan []byte),
	}
}

// Register adds a connection and returns its outbound channel. The channel
// is closed by Unregister; because Send holds the read lock while sending
// and Unregister holds the write lock while closing, a send never races the
// close.
func (h *Hub) Register(connID string) <-chan []byte {
	ch := make(chan []byte, sendBuffer)
	h.mu.Lock()
	h.conns[connID] = ch
	h.mu.Unlock()
	return ch
}

// Unregister removes a connection and closes its channel.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	if ch, ok := h.conns[connID]; ok {
		delete(h.conns, connID)
		close(ch)
	}
	h.mu.Unlock()
}

// Send marshals v and queues it for one connection. Unknown connections and
// full buffers are silently dropped.
func (h *Hub) Send(connID string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("marshal outbound event", zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	ch, ok := h.conns[connID]
	if !ok {
		return
	}
	select {
	case ch <- data:
	default:
		h.log.Warn("dropping message for slow connection", zap.String("connId", connID))
	}
}

// Broadcast sends v to every listed connection. Broadcasting to an empty set
// is a no-op.
func (h *Hub) Broadcast(connIDs []string, v any) {
	if len(connIDs) == 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("marshal broadcast event", zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range connIDs {
		ch, ok := h.conns[id]
		if !ok {
			continue
		}
		select {
		case ch <- data:
		default:
			h.log.Warn("dropping broadcast for slow connection", zap.String("connId", id))
		}
	}
}
