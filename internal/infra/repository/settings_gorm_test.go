package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-center/internal/db/dbtest"
	"github.com/BruksfildServices01/service-center/internal/models"
)

func TestSettings_LazyDefaultThenReplace(t *testing.T) {
	db := dbtest.New(t)
	repo := NewSettingsGormRepository(db)
	ctx := context.Background()

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Tuesday"}, snap.OffPeakDays())

	// a second read does not insert again
	_, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.Settings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = repo.Replace(ctx, []string{"Wednesday"})
	require.NoError(t, err)

	snap, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wednesday"}, snap.OffPeakDays())
}

func TestSettings_ReplaceBeforeFirstRead(t *testing.T) {
	repo := NewSettingsGormRepository(dbtest.New(t))
	ctx := context.Background()

	_, err := repo.Replace(ctx, []string{})
	require.NoError(t, err)

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.OffPeakDays())
}
