package events

import (
	"time"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

// Event types published after a trip mutation is committed.
const (
	TripCreated       = "trip.created"
	TripAllocated     = "trip.allocated"
	TripStatusChanged = "trip.status_changed"
	TripKMRecorded    = "trip.km_recorded"
	TripDeleted       = "trip.deleted"
)

// TripEvent tells subscribers that a trip changed. Trip is nil for deletions.
type TripEvent struct {
	Type      string       `json:"type"`
	TripID    int64        `json:"tripId"`
	Trip      *models.Trip `json:"trip,omitempty"`
	RequestID string       `json:"requestId,omitempty"`
	At        time.Time    `json:"at"`
}

// Bus receives trip events. Publish must not block on slow consumers.
type Bus interface {
	Publish(TripEvent)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(TripEvent) {}

// Recorder keeps published events in memory; handy in tests.
type Recorder struct {
	Events []TripEvent
}

func (r *Recorder) Publish(ev TripEvent) {
	r.Events = append(r.Events, ev)
}

// Types returns the type of each recorded event, in order.
func (r *Recorder) Types() []string {
	out := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		out = append(out, ev.Type)
	}
	return out
}
