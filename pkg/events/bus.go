package events

import (
	"sync"
)

// Bus fans out each published event to every registered sink.
type Bus struct {
	mu    sync.Mutex
	sinks []Sink
}

var _ Sink = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{}
}

// Register adds a sink. Nil sinks are ignored.
func (b *Bus) Register(sink Sink) {
	if sink == nil {
		return
	}
	b.mu.Lock()
	b.sinks = append(b.sinks, sink)
	b.mu.Unlock()
}

// Publish delivers the event to all sinks registered at call time.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	sinks := append([]Sink{}, b.sinks...)
	b.mu.Unlock()
	for _, sink := range sinks {
		sink.Publish(event)
	}
}
