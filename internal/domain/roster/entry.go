package roster

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

// Entry links a player to the fantasy team that rosters them.
type Entry struct {
	Provider        provider.ID
	LeagueID        string
	TeamID          string
	PlayerID        string
	LineupSlot      string
	Starter         bool
	AcquisitionType string
}

func (e Entry) Validate() error {
	if e.Provider == "" || e.LeagueID == "" {
		return fmt.Errorf("roster entry provider and league id are required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("roster entry team id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("roster entry player id is required")
	}

	return nil
}

// Repository persists roster entries. Upsert is idempotent on
// (provider, league id, team id, player id).
type Repository interface {
	Upsert(ctx context.Context, item Entry) error
	ListByTeam(ctx context.Context, providerID provider.ID, leagueID, teamID string) ([]Entry, error)
}
