package event

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu        sync.RWMutex
	listeners = make([]*Listener, 0)
)

type Listener struct {
	eventType Type
	channel   chan Entry
}

// AddEventListener registers a callback for an event type. Each listener gets
// its own goroutine and buffered channel so delivery stays in emit order and a
// slow consumer never blocks another listener.
func AddEventListener(eventType Type, callback func(entry Entry)) {
	zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: AddListener")

	listener := Listener{
		eventType: eventType,
		channel:   make(chan Entry, 256),
	}

	mu.Lock()
	listeners = append(listeners, &listener)
	mu.Unlock()

	go func() {
		for entry := range listener.channel {
			callback(entry)
		}
	}()
}

// EmitEvent delivers the entry to every listener of the matching type, exactly
// once per listener, in the order entries were emitted.
func EmitEvent(eventType Type, entry Entry) {
	mu.RLock()
	defer mu.RUnlock()

	if len(listeners) == 0 {
		zap.L().Debug("No event listeners available")
	}

	for _, listener := range listeners {
		if listener.eventType == eventType {
			zap.L().With(zap.String("type", string(eventType)), zap.Uint64("seq", entry.Seq)).Debug("EventManager: Emitting event")
			listener.channel <- entry
		}
	}
}
