package appointment

import "github.com/BruksfildServices01/service-center/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

func InitialStatus() Status {
	return StatusScheduled
}

// IsTerminal reports whether no event can leave s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// ===============================
// Events
// ===============================

type Event string

const (
	EventAssign   Event = "assign"
	EventStart    Event = "start"
	EventAddPart  Event = "add_part"
	EventAddLabor Event = "add_labor"
	EventFinish   Event = "finish"
	EventCancel   Event = "cancel"
)

// Events lists every event that acts on an existing appointment.
var Events = []Event{EventAssign, EventStart, EventAddPart, EventAddLabor, EventFinish, EventCancel}

type transition struct {
	from Status
	to   Status
}

var transitions = map[Event]transition{
	EventAssign:   {from: StatusScheduled, to: StatusScheduled},
	EventStart:    {from: StatusScheduled, to: StatusInProgress},
	EventAddPart:  {from: StatusInProgress, to: StatusInProgress},
	EventAddLabor: {from: StatusInProgress, to: StatusInProgress},
	EventFinish:   {from: StatusInProgress, to: StatusCompleted},
	EventCancel:   {from: StatusScheduled, to: StatusCanceled},
}

// ===============================
// Validations
// ===============================

// Next returns the status ev leads to from current, or an
// invalid_transition error.
func Next(current Status, ev Event) (Status, error) {
	t, ok := transitions[ev]
	if !ok {
		return current, httperr.Validation("unknown_event", "Unknown appointment event.")
	}
	if current != t.from {
		return current, httperr.WithDetails(
			httperr.KindInvalidTransition,
			"invalid_state",
			"Appointment is "+string(current)+"; "+string(ev)+" requires "+string(t.from)+".",
			map[string]any{"status": string(current), "event": string(ev), "required": string(t.from)},
		)
	}
	return t.to, nil
}

func CanTransition(current Status, ev Event) error {
	_, err := Next(current, ev)
	return err
}
