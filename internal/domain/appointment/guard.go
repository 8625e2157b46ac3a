package appointment

import (
	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID uint
	Role   string
}

func (c Caller) Is(role string) bool {
	return c.Role == role
}

type predicate func(c Caller, ap *models.Appointment) bool

type capability struct {
	name  string
	allow predicate
}

func isManager(c Caller, _ *models.Appointment) bool {
	return c.Is(models.RoleManager)
}

func isAssignedMechanic(c Caller, ap *models.Appointment) bool {
	return c.Is(models.RoleMechanic) && ap.MechanicID != nil && *ap.MechanicID == c.UserID
}

func isOwner(c Caller, ap *models.Appointment) bool {
	return c.Is(models.RoleCustomer) && ap.CustomerID == c.UserID
}

var capabilities = map[Event]capability{
	EventAssign:   {name: "manager", allow: isManager},
	EventStart:    {name: "assigned_mechanic", allow: isAssignedMechanic},
	EventAddPart:  {name: "assigned_mechanic", allow: isAssignedMechanic},
	EventAddLabor: {name: "assigned_mechanic", allow: isAssignedMechanic},
	EventFinish:   {name: "assigned_mechanic", allow: isAssignedMechanic},
	EventCancel:   {name: "owner", allow: isOwner},
}

// Authorize checks the caller predicate of ev. It does not look at status.
func Authorize(ev Event, c Caller, ap *models.Appointment) error {
	capb, ok := capabilities[ev]
	if !ok {
		return httperr.Validation("unknown_event", "Unknown appointment event.")
	}
	if !capb.allow(c, ap) {
		return httperr.WithDetails(
			httperr.KindUnauthorized,
			"not_"+capb.name,
			"Caller may not "+string(ev)+" this appointment.",
			map[string]any{"event": string(ev), "requires": capb.name},
		)
	}
	return nil
}

// Guard evaluates authorization first, then the status precondition, and
// returns the status the appointment moves to.
func Guard(ev Event, c Caller, ap *models.Appointment) (Status, error) {
	if err := Authorize(ev, c, ap); err != nil {
		return Status(ap.Status), err
	}
	return Next(Status(ap.Status), ev)
}

// CanView reports whether c may read ap.
func CanView(c Caller, ap *models.Appointment) bool {
	return isManager(c, ap) || isOwner(c, ap) || isAssignedMechanic(c, ap)
}
