package league

import (
	"context"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

// Repository persists leagues. Upsert is idempotent on (provider, external id).
type Repository interface {
	Upsert(ctx context.Context, item League) error
	GetByExternalID(ctx context.Context, providerID provider.ID, externalID string) (League, bool, error)
}
