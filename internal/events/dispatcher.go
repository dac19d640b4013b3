package events

import (
	"time"

	"github.com/jugal-ahir/ByteHackage/internal/metrics"
)

// Broadcaster delivers an event payload to one subscriber group. The ws hub
// implements it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastToRoom(roomNumber, event string, data interface{})
	BroadcastToDashboard(event string, data interface{})
	BroadcastToAll(event string, data interface{})
}

// Dispatcher routes committed domain events to subscriber groups according to
// the routing table. Mutation services receive it by constructor injection and
// dispatch only after their persist succeeds.
type Dispatcher struct {
	broadcaster Broadcaster
}

func NewDispatcher(b Broadcaster) *Dispatcher {
	return &Dispatcher{broadcaster: b}
}

func (d *Dispatcher) Dispatch(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	scope := RouteFor(evt.Name)

	if scope&ScopeRoom != 0 && evt.RoomNumber != "" {
		d.broadcaster.BroadcastToRoom(evt.RoomNumber, evt.Name, evt.Payload)
		metrics.EventsDispatched.WithLabelValues(evt.Name, "room").Inc()
	}
	if scope&ScopeDashboard != 0 {
		d.broadcaster.BroadcastToDashboard(evt.Name, evt.Payload)
		metrics.EventsDispatched.WithLabelValues(evt.Name, "dashboard").Inc()
	}
	if scope&ScopeAll != 0 {
		d.broadcaster.BroadcastToAll(evt.Name, evt.Payload)
		metrics.EventsDispatched.WithLabelValues(evt.Name, "all").Inc()
	}
}
