package engine

import (
	"time"

	"github.com/leengari/recordstore/internal/domain/operation"
)

// EventType names the engine call an event reports on
type EventType string

const (
	EventCreateDatabase = EventType(operation.KindCreateDatabase)
	EventOpenDatabase   = EventType(operation.KindOpenDatabase)
	EventCreateTable    = EventType(operation.KindCreateTable)
	EventInsert         = EventType(operation.KindInsert)
	EventScan           = EventType(operation.KindScan)
	EventCount          = EventType(operation.KindCount)
)

// Event is emitted after an engine call completes successfully
type Event struct {
	Type      EventType   // Type of event
	OpID      string      // Operation ID for tracing
	Database  string      // Database the call acted on
	Table     string      // Table, empty for database-level calls
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Call-specific data (row counts, filter sizes)
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}

// observerSet is embedded by Registry and Database
type observerSet struct {
	observers []Observer
}

// AddObserver registers an observer to receive events
func (s *observerSet) AddObserver(observer Observer) {
	s.observers = append(s.observers, observer)
}

// RemoveObserver unregisters an observer
func (s *observerSet) RemoveObserver(observer Observer) {
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *observerSet) snapshot() observerSet {
	return observerSet{observers: append([]Observer(nil), s.observers...)}
}

// notify sends an event to all registered observers
func (s *observerSet) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range s.observers {
		observer.OnEvent(event)
	}
}
