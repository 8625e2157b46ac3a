package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-center/internal/httperr"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type OutboxGormRepository struct {
	db *gorm.DB
}

func NewOutboxGormRepository(db *gorm.DB) *OutboxGormRepository {
	return &OutboxGormRepository{db: db}
}

func (r *OutboxGormRepository) Enqueue(ctx context.Context, msg *models.OutboxMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Status == "" {
		msg.Status = models.OutboxPending
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

// Claim hands up to limit messages to the caller, oldest first. A message is
// claimable while pending, or while sending under a claim older than lease.
// Each row is taken with a conditional update, so concurrent workers never
// receive the same message.
func (r *OutboxGormRepository) Claim(ctx context.Context, limit int, lease time.Duration) ([]models.OutboxMessage, error) {
	now := time.Now().UTC()
	staleBefore := now.Add(-lease)

	claimable := func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(status = ? OR (status = ? AND claimed_at < ?))",
			models.OutboxPending, models.OutboxSending, staleBefore,
		)
	}

	var claimed []models.OutboxMessage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []models.OutboxMessage
		if err := tx.Scopes(claimable).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Order("created_at ASC").
			Limit(limit).
			Find(&candidates).Error; err != nil {
			return err
		}

		for i := range candidates {
			res := tx.Model(&models.OutboxMessage{}).
				Where("id = ?", candidates[i].ID).
				Scopes(claimable).
				Updates(map[string]any{
					"status":     models.OutboxSending,
					"claimed_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				candidates[i].Status = models.OutboxSending
				candidates[i].ClaimedAt = &now
				claimed = append(claimed, candidates[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, httperr.Unavailable(err)
	}
	return claimed, nil
}

func (r *OutboxGormRepository) MarkSent(ctx context.Context, id uuid.UUID, artifact *string) error {
	now := time.Now().UTC()
	return httperr.Unavailable(r.db.WithContext(ctx).
		Model(&models.OutboxMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     models.OutboxSent,
			"artifact":   artifact,
			"sent_at":    &now,
			"claimed_at": nil,
		}).Error)
}

// MarkAttempt records a failed delivery and releases the claim. The message
// is parked as failed once attempts reaches maxAttempts.
func (r *OutboxGormRepository) MarkAttempt(ctx context.Context, id uuid.UUID, cause string, maxAttempts int) error {
	return httperr.Unavailable(r.db.WithContext(ctx).
		Model(&models.OutboxMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": cause,
			"claimed_at": nil,
			"status": gorm.Expr(
				"CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
				maxAttempts, models.OutboxFailed, models.OutboxPending,
			),
		}).Error)
}

func (r *OutboxGormRepository) LoadAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return loadAppointment(r.db.WithContext(ctx), id)
}
