package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	"github.com/BruksfildServices01/service-center/internal/models"
	"github.com/BruksfildServices01/service-center/internal/outbox"
)

// lifecycle is shared by every use case that moves an existing appointment
// through the state machine.
type lifecycle struct {
	repo   domain.Repository
	audit  audit.Sink
	outbox outbox.Kicker
	now    func() time.Time
}

func newLifecycle(repo domain.Repository, sink audit.Sink, kicker outbox.Kicker) lifecycle {
	if sink == nil {
		sink = audit.Discard
	}
	return lifecycle{
		repo:   repo,
		audit:  sink,
		outbox: kicker,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// apply runs the guard for ev and then fn inside one transition. Nothing
// is written when either fails.
func (l lifecycle) apply(
	ctx context.Context,
	id uint,
	caller domain.Caller,
	ev domain.Event,
	fn domain.TransitionFunc,
) (*models.Appointment, error) {

	return l.repo.Transition(ctx, id, func(ctx context.Context, tx domain.Tx, ap *models.Appointment) error {
		if _, err := domain.Guard(ev, caller, ap); err != nil {
			return err
		}
		return fn(ctx, tx, ap)
	})
}

func (l lifecycle) record(caller domain.Caller, action string, ap *models.Appointment, meta map[string]any) {
	userID := caller.UserID
	apID := ap.ID
	l.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Role:     caller.Role,
		Action:   action,
		Entity:   "appointment",
		EntityID: &apID,
		Metadata: meta,
	})
}
