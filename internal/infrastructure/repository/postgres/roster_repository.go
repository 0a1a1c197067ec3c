package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/roster"
	qb "github.com/riskibarqy/fantasy-sync/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Upsert(ctx context.Context, item roster.Entry) error {
	if err := item.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	model := rosterEntryTableModel{
		Provider:        string(item.Provider),
		LeagueID:        item.LeagueID,
		TeamID:          item.TeamID,
		PlayerID:        item.PlayerID,
		LineupSlot:      item.LineupSlot,
		Starter:         item.Starter,
		AcquisitionType: item.AcquisitionType,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	query, args, err := qb.UpsertModel("fantasy_roster_entries", model, "provider", "league_id", "team_id", "player_id")
	if err != nil {
		return fmt.Errorf("build upsert roster entry query: %w", err)
	}
	if err := upsert(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("upsert roster entry %s/%s/%s: %w", item.Provider, item.TeamID, item.PlayerID, err)
	}

	return nil
}

func (r *RosterRepository) ListByTeam(ctx context.Context, providerID provider.ID, leagueID, teamID string) ([]roster.Entry, error) {
	query, args, err := qb.Select(qb.Columns(rosterEntryTableModel{})...).From("fantasy_roster_entries").
		Where(
			qb.Eq("provider", string(providerID)),
			qb.Eq("league_id", leagueID),
			qb.Eq("team_id", teamID),
		).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster entries: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Entry{
			Provider:        provider.ID(row.Provider),
			LeagueID:        row.LeagueID,
			TeamID:          row.TeamID,
			PlayerID:        row.PlayerID,
			LineupSlot:      row.LineupSlot,
			Starter:         row.Starter,
			AcquisitionType: row.AcquisitionType,
		})
	}

	return out, nil
}
