// Package event provides the notification side channel for the token
// facade: a buffered bus that broadcasts ledger and access-grant
// notifications to subscribers. Publishing never blocks; when the queue
// is full the signal is dropped and counted. Consumers (indexers,
// journals) must treat delivery as best-effort.
package event

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const defaultQueueSize = 1024

// Bus dispatches signals to subscribers.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[Type][]Handler
	all           []Handler
	signals       chan *Signal
	stopCh        chan struct{}
	running       bool

	published int64
	dropped   int64
	delivered int64
}

// NewBus creates a bus with the default queue size.
func NewBus() *Bus {
	return &Bus{
		subscriptions: make(map[Type][]Handler),
		signals:       make(chan *Signal, defaultQueueSize),
	}
}

// Subscribe registers a handler for one signal type.
func (b *Bus) Subscribe(t Type, h Handler) *Bus {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[t] = append(b.subscriptions[t], h)
	return b
}

// SubscribeAll registers a handler for every signal type.
func (b *Bus) SubscribeAll(h Handler) *Bus {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
	return b
}

// Publish enqueues a signal without blocking. A full queue drops the
// signal; fire-and-forget semantics make that acceptable.
func (b *Bus) Publish(t Type, payload any) {
	s := &Signal{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case b.signals <- s:
		atomic.AddInt64(&b.published, 1)
	default:
		atomic.AddInt64(&b.dropped, 1)
	}
}

// Drain dispatches every queued signal synchronously and returns when
// the queue is empty. Useful for tests and for flushing before shutdown.
func (b *Bus) Drain() {
	for {
		select {
		case s := <-b.signals:
			b.dispatch(s)
		default:
			return
		}
	}
}

// Start begins dispatching queued signals on a background goroutine.
func (b *Bus) Start() {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.stopCh = make(chan struct{})
	b.mu.Unlock()

	go b.processLoop()
}

// Stop halts background dispatch. Queued signals remain and can still
// be flushed with Drain.
func (b *Bus) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	close(b.stopCh)
	b.mu.Unlock()
}

func (b *Bus) processLoop() {
	for {
		select {
		case s := <-b.signals:
			b.dispatch(s)
		case <-b.stopCh:
			return
		}
	}
}

func (b *Bus) dispatch(s *Signal) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subscriptions[s.Type])+len(b.all))
	handlers = append(handlers, b.subscriptions[s.Type]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(s)
		atomic.AddInt64(&b.delivered, 1)
	}
}

// Stats contains bus counters.
type Stats struct {
	Published int64
	Dropped   int64
	Delivered int64
	QueueSize int
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: atomic.LoadInt64(&b.published),
		Dropped:   atomic.LoadInt64(&b.dropped),
		Delivered: atomic.LoadInt64(&b.delivered),
		QueueSize: len(b.signals),
	}
}
