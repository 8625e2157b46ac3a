package audit

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	ActionAppointmentBooked   = "appointment_booked"
	ActionAppointmentAssigned = "appointment_assigned"
	ActionServiceStarted      = "service_started"
	ActionPartAdded           = "part_added"
	ActionLaborAdded          = "labor_added"
	ActionServiceFinished     = "service_finished"
	ActionAppointmentCanceled = "appointment_canceled"
	ActionStockReceived       = "stock_received"
	ActionSettingsUpdated     = "settings_updated"
	ActionFeedbackSubmitted   = "feedback_submitted"
	ActionVehicleRegistered   = "vehicle_registered"
	ActionVehicleUpdated      = "vehicle_updated"
	ActionVehicleRemoved      = "vehicle_removed"
)

type Event struct {
	UserID   *uint
	Role     string
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink receives audit events.
type Sink interface {
	Dispatch(ev Event)
}

type discard struct{}

func (discard) Dispatch(Event) {}

// Discard drops every event.
var Discard Sink = discard{}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			logrus.WithError(err).WithField("action", ev.Action).Error("audit write failed")
		}
	}
}

// Dispatch never blocks. A full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		logrus.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
