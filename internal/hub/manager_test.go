package hub_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forik/backend/internal/hub"
	"forik/backend/internal/models"
)

type mockClient struct {
	id string

	mu      sync.Mutex
	send    chan models.Event
	running bool
	closed  bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{id: id, send: make(chan models.Event, 8)}
}

func (c *mockClient) ID() string                       { return c.id }
func (c *mockClient) SendChannel() chan<- models.Event { return c.send }

func (c *mockClient) Run() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *mockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *mockClient) receive(t *testing.T) models.Event {
	select {
	case ev := <-c.send:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return models.Event{}
	}
}

func TestManagerBroadcastReachesAllClients(t *testing.T) {
	m := hub.NewManager(zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	a := newMockClient("a")
	b := newMockClient("b")
	m.RegisterCh <- a
	m.RegisterCh <- b

	m.Broadcast(models.Event{ID: "1", Type: models.EventWarning, Message: "msg"})

	assert.Equal(t, "1", a.receive(t).ID)
	assert.Equal(t, "1", b.receive(t).ID)
}

func TestManagerUnregisterStopsDelivery(t *testing.T) {
	m := hub.NewManager(zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	a := newMockClient("a")
	m.RegisterCh <- a
	m.UnregisterCh <- a

	require.Eventually(t, a.isClosed, time.Second, 10*time.Millisecond)

	m.Broadcast(models.Event{ID: "1", Type: models.EventWarning})
	select {
	case ev := <-a.send:
		t.Fatalf("unexpected event after unregister: %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManagerShutdownClosesClients(t *testing.T) {
	m := hub.NewManager(zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	a := newMockClient("a")
	m.RegisterCh <- a

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("run did not stop")
	}
	assert.True(t, a.isClosed())
}

func TestManagerDropsEventsForSlowClients(t *testing.T) {
	m := hub.NewManager(zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	slow := newMockClient("slow")
	slow.send = make(chan models.Event) // unbuffered and never drained
	m.RegisterCh <- slow

	// must not deadlock the hub
	m.Broadcast(models.Event{ID: "1"})
	m.Broadcast(models.Event{ID: "2"})

	healthy := newMockClient("healthy")
	m.RegisterCh <- healthy
	m.Broadcast(models.Event{ID: "3"})
	assert.Equal(t, "3", healthy.receive(t).ID)
}
