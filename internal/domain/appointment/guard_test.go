package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestGuard(t *testing.T) {
	ap := func(status Status, mechanic *uint) *models.Appointment {
		return &models.Appointment{ID: 1, CustomerID: 10, MechanicID: mechanic, Status: string(status)}
	}

	owner := Caller{UserID: 10, Role: models.RoleCustomer}
	stranger := Caller{UserID: 11, Role: models.RoleCustomer}
	manager := Caller{UserID: 1, Role: models.RoleManager}
	assigned := Caller{UserID: 20, Role: models.RoleMechanic}
	otherMechanic := Caller{UserID: 21, Role: models.RoleMechanic}

	tests := []struct {
		name   string
		ev     Event
		caller Caller
		ap     *models.Appointment
		kind   httperr.Kind
	}{
		{"manager assigns", EventAssign, manager, ap(StatusScheduled, nil), ""},
		{"mechanic cannot assign", EventAssign, assigned, ap(StatusScheduled, nil), httperr.KindUnauthorized},
		{"assigned mechanic starts", EventStart, assigned, ap(StatusScheduled, uintPtr(20)), ""},
		{"unassigned start", EventStart, assigned, ap(StatusScheduled, nil), httperr.KindUnauthorized},
		{"other mechanic adds part", EventAddPart, otherMechanic, ap(StatusInProgress, uintPtr(20)), httperr.KindUnauthorized},
		{"manager cannot finish", EventFinish, manager, ap(StatusInProgress, uintPtr(20)), httperr.KindUnauthorized},
		{"owner cancels", EventCancel, owner, ap(StatusScheduled, nil), ""},
		{"stranger cancels", EventCancel, stranger, ap(StatusScheduled, nil), httperr.KindUnauthorized},
		{"owner cancels started job", EventCancel, owner, ap(StatusInProgress, uintPtr(20)), httperr.KindInvalidTransition},
		{"authorization before status", EventCancel, stranger, ap(StatusCompleted, nil), httperr.KindUnauthorized},
		{"finish twice", EventFinish, assigned, ap(StatusCompleted, uintPtr(20)), httperr.KindInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Guard(tt.ev, tt.caller, tt.ap)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.kind, httperr.KindOf(err))
		})
	}
}

func TestCanView(t *testing.T) {
	ap := &models.Appointment{CustomerID: 10, MechanicID: uintPtr(20)}

	assert.True(t, CanView(Caller{UserID: 10, Role: models.RoleCustomer}, ap))
	assert.True(t, CanView(Caller{UserID: 20, Role: models.RoleMechanic}, ap))
	assert.True(t, CanView(Caller{UserID: 99, Role: models.RoleManager}, ap))
	assert.False(t, CanView(Caller{UserID: 11, Role: models.RoleCustomer}, ap))
	assert.False(t, CanView(Caller{UserID: 10, Role: models.RoleMechanic}, ap))
}
