package team

import (
	"context"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

// Repository persists teams. Upsert is idempotent on (provider, league id, external id)
// and never touches the roster.
type Repository interface {
	Upsert(ctx context.Context, item Team) error
	ListByLeague(ctx context.Context, providerID provider.ID, leagueID string) ([]Team, error)
}
