// Package hub fans lifecycle events (expiry warnings, delivery and
// submission progress) out to the connected shell clients over websockets.
package hub

import (
	"context"

	"go.uber.org/zap"

	"forik/backend/internal/models"
)

// Client is one connected shell. Abstracting the connection keeps the
// manager testable without a real websocket.
type Client interface {
	ID() string
	// SendChannel is where the manager queues events for this client.
	SendChannel() chan<- models.Event
	Run()
	Close()
}

// Manager owns the client set. All mutations go through its run loop, so no
// locking is needed.
type Manager struct {
	clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	broadcastCh  chan models.Event

	log *zap.SugaredLogger
}

func NewManager(log *zap.SugaredLogger) *Manager {
	return &Manager{
		clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		broadcastCh:  make(chan models.Event, 16),
		log:          log,
	}
}

// Broadcast queues an event for every connected client.
func (m *Manager) Broadcast(ev models.Event) {
	m.broadcastCh <- ev
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (m *Manager) Run(ctx context.Context) error {
	for {
		select {
		case client := <-m.RegisterCh:
			m.clients[client.ID()] = client
			client.Run()
			m.log.Infow("shell connected", "client", client.ID(), "total", len(m.clients))

		case client := <-m.UnregisterCh:
			if _, ok := m.clients[client.ID()]; ok {
				delete(m.clients, client.ID())
				client.Close()
				m.log.Infow("shell disconnected", "client", client.ID(), "total", len(m.clients))
			}

		case ev := <-m.broadcastCh:
			for id, client := range m.clients {
				select {
				case client.SendChannel() <- ev:
				default:
					// slow consumer, drop the event rather than stall the hub
					m.log.Warnw("client send buffer full, dropping event", "client", id, "event", ev.Type)
				}
			}

		case <-ctx.Done():
			for _, client := range m.clients {
				client.Close()
			}
			m.clients = make(map[string]Client)
			return ctx.Err()
		}
	}
}
