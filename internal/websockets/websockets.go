package websockets

import (
	"encoding/json"
	"sync"

	"recruiter/config"
	"recruiter/internal/events"
	"recruiter/internal/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const sendBuffer = 16

// Manager fans cache and notice events out to connected dashboard clients so
// open tabs see list changes without polling.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]chan []byte
	unsubscribe func()
	log         logger.Logger
}

func New(bus *events.EventBus, config config.Config) (*Manager, error) {
	m := &Manager{
		connections: make(map[string]chan []byte),
		log:         logger.New("websockets"),
	}

	m.unsubscribe = bus.Subscribe(m.broadcast)
	return m, nil
}

func (m *Manager) broadcast(event events.Event) {
	log := m.log.Function("broadcast")

	payload, err := json.Marshal(event)
	if err != nil {
		log.Er("failed to encode event", err, "kind", event.Kind)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, send := range m.connections {
		select {
		case send <- payload:
		default:
			// slow client, drop rather than block the bus
			log.Warn("dropping event for slow connection", "connectionID", id)
		}
	}
}

// HandleWebSocket owns a connection for its lifetime. Writes are serialized
// through the connection's send channel; the read loop exists only to detect
// the peer going away.
func (m *Manager) HandleWebSocket(conn *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	id := uuid.NewString()
	send := make(chan []byte, sendBuffer)

	m.mu.Lock()
	m.connections[id] = send
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.connections, id)
		m.mu.Unlock()
		conn.Close()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload := <-send:
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Debug("write failed, closing connection", "connectionID", id, "error", err)
				return
			}
		case <-done:
			return
		}
	}
}

func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections = make(map[string]chan []byte)
}
