package appointment

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-center/internal/audit"
	"github.com/BruksfildServices01/service-center/internal/db/dbtest"
	domain "github.com/BruksfildServices01/service-center/internal/domain/appointment"
	infraRepo "github.com/BruksfildServices01/service-center/internal/infra/repository"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

type countingKicker struct {
	n atomic.Int32
}

func (k *countingKicker) Kick() { k.n.Add(1) }

type harness struct {
	db       *gorm.DB
	sink     *recordingSink
	kicker   *countingKicker
	settings *infraRepo.SettingsGormRepository

	book     *BookAppointment
	get      *GetAppointment
	cancel   *CancelAppointment
	assign   *AssignMechanic
	start    *StartService
	addPart  *AddPart
	addLabor *AddLabor
	finish   *FinishService

	customer *models.User
	mechanic *models.User
	manager  *models.User
	vehicle  *models.Vehicle
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := dbtest.New(t)
	repo := infraRepo.NewAppointmentGormRepository(db)
	settingsRepo := infraRepo.NewSettingsGormRepository(db)

	h := &harness{
		db:       db,
		sink:     &recordingSink{},
		kicker:   &countingKicker{},
		settings: settingsRepo,
	}

	h.book = NewBookAppointment(repo, settingsRepo, h.sink, h.kicker, BookConfig{SlotGranularityMinutes: 30})
	h.get = NewGetAppointment(repo)
	h.cancel = NewCancelAppointment(repo, h.sink)
	h.assign = NewAssignMechanic(repo, h.sink)
	h.start = NewStartService(repo, h.sink)
	h.addPart = NewAddPart(repo, h.sink)
	h.addLabor = NewAddLabor(repo, h.sink)
	h.finish = NewFinishService(repo, h.sink, h.kicker)

	h.customer = dbtest.User(t, db, models.RoleCustomer)
	h.mechanic = dbtest.User(t, db, models.RoleMechanic)
	h.manager = dbtest.User(t, db, models.RoleManager)
	h.vehicle = dbtest.Vehicle(t, db, h.customer)

	return h
}

func as(u *models.User) domain.Caller {
	return domain.Caller{UserID: u.ID, Role: u.Role}
}

func (h *harness) bookAt(t *testing.T, date, slot string) *models.Appointment {
	t.Helper()

	ap, err := h.book.Execute(context.Background(), BookAppointmentInput{
		Caller:      as(h.customer),
		VehicleID:   h.vehicle.ID,
		ServiceType: "Brake Service",
		Date:        date,
		Time:        slot,
	})
	require.NoError(t, err)
	return ap
}

// inProgress books, assigns and starts a job.
func (h *harness) inProgress(t *testing.T, date, slot string) *models.Appointment {
	t.Helper()
	ctx := context.Background()

	ap := h.bookAt(t, date, slot)

	_, err := h.assign.Execute(ctx, AssignMechanicInput{
		Caller:        as(h.manager),
		AppointmentID: ap.ID,
		MechanicID:    h.mechanic.ID,
	})
	require.NoError(t, err)

	ap, err = h.start.Execute(ctx, as(h.mechanic), ap.ID)
	require.NoError(t, err)
	return ap
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
