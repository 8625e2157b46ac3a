package settings

import (
	"context"

	"github.com/BruksfildServices01/service-center/internal/audit"
	domain "github.com/BruksfildServices01/service-center/internal/domain/settings"
	"github.com/BruksfildServices01/service-center/internal/models"
)

type Service struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewService(repo domain.Repository, sink audit.Sink) *Service {
	if sink == nil {
		sink = audit.Discard
	}
	return &Service{repo: repo, audit: sink}
}

func (s *Service) Get(ctx context.Context) (domain.Snapshot, error) {
	return s.repo.Snapshot(ctx)
}

// Replace swaps the whole off-peak list. Existing appointments keep the
// eligibility they were booked with.
func (s *Service) Replace(ctx context.Context, actorID uint, days []string) (domain.Snapshot, error) {
	normalized, err := domain.NormalizeDays(days)
	if err != nil {
		return domain.Snapshot{}, err
	}

	snap, err := s.repo.Replace(ctx, normalized)
	if err != nil {
		return domain.Snapshot{}, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Role:     models.RoleManager,
		Action:   audit.ActionSettingsUpdated,
		Entity:   "settings",
		Metadata: map[string]any{"off_peak_days": normalized},
	})

	return snap, nil
}
