package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-center/internal/db/dbtest"
	"github.com/BruksfildServices01/service-center/internal/models"
)

func TestDispatcher_WritesQueuedEventsOnClose(t *testing.T) {
	db := dbtest.New(t)
	d := NewDispatcher(New(db))

	userID, apID := uint(7), uint(42)
	for i := 0; i < 3; i++ {
		d.Dispatch(Event{
			UserID:   &userID,
			Role:     models.RoleMechanic,
			Action:   ActionPartAdded,
			Entity:   "appointment",
			EntityID: &apID,
			Metadata: map[string]any{"quantity": i + 1},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	var logs []models.AuditLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 3)
	assert.Equal(t, ActionPartAdded, logs[0].Action)
	assert.Equal(t, models.RoleMechanic, logs[0].Role)
	assert.JSONEq(t, `{"quantity":1}`, string(logs[0].Metadata))
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	d := NewDispatcher(New(dbtest.New(t)))
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionSettingsUpdated})
	})
}
