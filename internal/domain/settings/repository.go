package settings

import "context"

type Repository interface {
	// Snapshot returns the current settings, creating the default row when
	// none exists yet.
	Snapshot(ctx context.Context) (Snapshot, error)

	Replace(ctx context.Context, days []string) (Snapshot, error)
}
