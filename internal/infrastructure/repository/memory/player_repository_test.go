package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_SameExternalIDAcrossProviders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(nil)

	require.NoError(t, repo.Upsert(ctx, player.Player{Provider: provider.Sleeper, LeagueID: "L", ExternalID: "4046", Name: "Sleeper Guy"}))
	require.NoError(t, repo.Upsert(ctx, player.Player{Provider: provider.ESPN, LeagueID: "L", ExternalID: "4046", Name: "ESPN Guy"}))

	if repo.Len() != 2 {
		t.Fatalf("expected two distinct players, got %d", repo.Len())
	}

	got, ok, err := repo.GetByKey(ctx, player.Key{Provider: provider.Sleeper, LeagueID: "L", ExternalID: "4046"})
	require.NoError(t, err)
	if !ok || got.Name != "Sleeper Guy" {
		t.Fatalf("unexpected sleeper player %+v", got)
	}
	got, ok, err = repo.GetByKey(ctx, player.Key{Provider: provider.ESPN, LeagueID: "L", ExternalID: "4046"})
	require.NoError(t, err)
	if !ok || got.Name != "ESPN Guy" {
		t.Fatalf("unexpected espn player %+v", got)
	}
}

func TestPlayerRepository_UpsertIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPlayerRepository(nil)
	item := player.Player{
		Provider:    provider.Yahoo,
		LeagueID:    "449.l.1",
		ExternalID:  "449.p.30123",
		Name:        "Patrick Mahomes",
		SeasonStats: map[string]float64{"4": 4183},
	}

	require.NoError(t, repo.Upsert(ctx, item))
	require.NoError(t, repo.Upsert(ctx, item))
	if repo.Len() != 1 {
		t.Fatalf("expected a single row after double upsert, got %d", repo.Len())
	}

	item.SeasonStats["4"] = 0
	got, _, err := repo.GetByKey(ctx, item.Key())
	require.NoError(t, err)
	if got.SeasonStats["4"] != 4183 {
		t.Fatalf("stored player shares its stats map with the caller")
	}
}

func TestPlayerRepository_RejectsInvalid(t *testing.T) {
	t.Parallel()

	err := NewPlayerRepository(nil).Upsert(context.Background(), player.Player{Provider: provider.CBS})
	require.Error(t, err)
}
