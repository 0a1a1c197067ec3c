package player

import "context"

// Repository persists players. Upsert is idempotent on Key.
type Repository interface {
	Upsert(ctx context.Context, item Player) error
	GetByKey(ctx context.Context, key Key) (Player, bool, error)
}
