// Package pubsub is the in-process stand-in for the message-bus
// runtime: one dispatcher goroutine drains a single publish queue and
// invokes subscribers serially, so handlers execute mutually
// exclusively and see messages in publish order. That serialization
// is what lets the rest of the pipeline mutate shared state without
// load-bearing locks.
package pubsub

import (
	"sync"

	"github.com/edaniels/golog"
)

// Handler consumes one message on a topic. Handlers run on the bus's
// dispatch goroutine and must not block on I/O.
type Handler func(msg interface{})

type envelope struct {
	topic string
	msg   interface{}
}

// Bus is a minimal single-dispatch-thread topic bus.
type Bus struct {
	mu   sync.Mutex
	cond *sync.Cond
	subs map[string][]Handler

	queue []envelope

	// closing stops the dispatcher once the queue drains; terminated
	// is set by the dispatcher on exit, after which publishes drop.
	closing    bool
	terminated bool

	workers sync.WaitGroup
	logger  golog.Logger
}

// NewBus starts a bus and its dispatcher goroutine.
func NewBus(logger golog.Logger) *Bus {
	b := &Bus{
		subs:   map[string][]Handler{},
		logger: logger,
	}
	b.cond = sync.NewCond(&b.mu)
	b.workers.Add(1)
	go b.dispatch()
	return b
}

func (b *Bus) dispatch() {
	defer b.workers.Done()
	b.mu.Lock()
	for {
		for len(b.queue) == 0 && !b.closing {
			b.cond.Wait()
		}
		if len(b.queue) == 0 {
			b.terminated = true
			b.mu.Unlock()
			return
		}
		e := b.queue[0]
		b.queue = b.queue[1:]
		handlers := make([]Handler, len(b.subs[e.topic]))
		copy(handlers, b.subs[e.topic])
		b.mu.Unlock()

		for _, h := range handlers {
			h(e.msg)
		}
		b.mu.Lock()
	}
}

// Subscribe registers a handler for a topic. Registration order is
// delivery order within a topic.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], h)
}

// Publish enqueues a message for serial delivery. Safe to call from
// inside a handler; delivery happens after the current handler
// returns, and messages published while a Close is draining are still
// delivered.
func (b *Bus) Publish(topic string, msg interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.terminated {
		b.logger.Debugw("publish after close dropped", "topic", topic)
		return
	}
	b.queue = append(b.queue, envelope{topic: topic, msg: msg})
	b.cond.Signal()
}

// Close stops the dispatcher once every queued message — including
// any cascades published by handlers during the drain — has been
// delivered, then waits for it to exit.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closing = true
	b.cond.Broadcast()
	b.mu.Unlock()
	b.workers.Wait()
}
