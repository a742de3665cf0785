package publishers

import (
	"time"

	"github.com/google/uuid"
)

// Event describes one presented fetch outcome.
type Event struct {
	ID          string    `json:"id"`
	EndpointID  string    `json:"endpoint_id"`
	Parameter   string    `json:"parameter,omitempty"`
	Outcome     string    `json:"outcome"`
	Message     string    `json:"message,omitempty"`
	Status      int       `json:"status,omitempty"`
	Items       int       `json:"items"`
	PresentedAt time.Time `json:"presented_at"`
}

// NewEvent constructs an Event with a fresh id and timestamp.
func NewEvent(endpointID, parameter, outcome string) Event {
	return Event{
		ID:          uuid.NewString(),
		EndpointID:  endpointID,
		Parameter:   parameter,
		Outcome:     outcome,
		PresentedAt: time.Now().UTC(),
	}
}
