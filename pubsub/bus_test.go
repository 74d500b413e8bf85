package pubsub

import (
	"sync"
	"testing"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/assert"
)

func TestPublishOrderIsDeliveryOrder(t *testing.T) {
	b := NewBus(golog.NewTestLogger(t))

	var mu sync.Mutex
	var got []int
	b.Subscribe(TopicScan, func(msg interface{}) {
		mu.Lock()
		got = append(got, msg.(int))
		mu.Unlock()
	})

	for i := 0; i < 100; i++ {
		b.Publish(TopicScan, i)
	}
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestHandlersSerializeAcrossTopics(t *testing.T) {
	b := NewBus(golog.NewTestLogger(t))

	var mu sync.Mutex
	var got []string
	record := func(tag string) Handler {
		return func(interface{}) {
			mu.Lock()
			got = append(got, tag)
			mu.Unlock()
		}
	}
	b.Subscribe(TopicScan, record("scan"))
	b.Subscribe(TopicPosition, record("position"))

	// mapper updates from scan N must complete before planner
	// decisions from odometry delivered after scan N.
	b.Publish(TopicScan, ScanMessage{})
	b.Publish(TopicPosition, OdometryMessage{})
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"scan", "position"}, got)
}

func TestPublishFromHandlerDoesNotDeadlock(t *testing.T) {
	b := NewBus(golog.NewTestLogger(t))

	relayed := make(chan struct{})
	b.Subscribe(TopicScan, func(interface{}) {
		b.Publish(TopicConeMarkers, ConeMarkersMessage{})
	})
	b.Subscribe(TopicConeMarkers, func(interface{}) {
		close(relayed)
	})

	b.Publish(TopicScan, ScanMessage{})
	<-relayed
	b.Close()
}
