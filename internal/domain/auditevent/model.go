package auditevent

import (
	"time"

	"github.com/google/uuid"
)

// Action is what the admin did.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionDeleted   Action = "deleted"
	ActionBooked    Action = "booked"
	ActionEdited    Action = "edited"
	ActionCancelled Action = "cancelled"
)

// Entity is what the action touched.
type Entity string

const (
	EntityPatient     Entity = "patient"
	EntityDoctor      Entity = "doctor"
	EntityAppointment Entity = "appointment"
)

// Event records one successful admin mutation. Events are scoped to the
// running session and never persisted; the two flat files are the only
// durable state.
type Event struct {
	ID       uuid.UUID `json:"id"`
	Action   Action    `json:"action"`
	Entity   Entity    `json:"entity"`
	EntityID int       `json:"entity_id"`
	Recorded time.Time `json:"recorded"`
}
