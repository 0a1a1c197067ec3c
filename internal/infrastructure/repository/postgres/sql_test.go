package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/stretchr/testify/require"
)

func TestUpsertLeagueQuery(t *testing.T) {
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := upsertLeagueQuery(league.League{
		Provider:   provider.Sleeper,
		ExternalID: "900",
		Name:       "Dynasty Masters",
		Season:     "2025",
		Settings:   league.Settings{TeamCount: 14, PlayoffWeeks: []int{15, 16, 17}},
		Metadata:   map[string]any{"status": "in_season"},
	}, now)
	require.NoError(t, err)

	if !strings.HasPrefix(query, "INSERT INTO fantasy_leagues (provider, external_id, name") {
		t.Fatalf("unexpected insert prefix: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (provider, external_id) DO UPDATE SET name = EXCLUDED.name") {
		t.Fatalf("missing upsert clause: %s", query)
	}
	if strings.Contains(query, "created_at = EXCLUDED.created_at") {
		t.Fatalf("created_at must survive updates: %s", query)
	}
	require.Len(t, args, 13)
	require.Equal(t, `{"status":"in_season"}`, string(args[10].([]byte)))
}

func TestPlayerModelRoundTripKeepsStats(t *testing.T) {
	item := player.Player{
		Provider:    provider.ESPN,
		LeagueID:    "1",
		ExternalID:  "3139477",
		Status:      player.StatusInjured,
		SeasonStats: map[string]float64{"applied_total": 301.5},
	}

	model, err := playerModelFrom(item, time.Now())
	require.NoError(t, err)
	require.Equal(t, "{}", string(model.LastGameStats))

	got, ok, err := playerFromModel(model)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 301.5, got.SeasonStats["applied_total"])
	require.Nil(t, got.LastGameStats)
	require.Equal(t, player.StatusInjured, got.Status)
}

func TestSchemaDeclaresEveryTable(t *testing.T) {
	for _, table := range []string{"fantasy_leagues", "fantasy_teams", "fantasy_players", "fantasy_roster_entries", "provider_credentials"} {
		if !strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("schema is missing %s", table)
		}
	}
}
