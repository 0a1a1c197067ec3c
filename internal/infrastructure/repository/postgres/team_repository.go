package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-sync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	model := teamTableModel{
		Provider:      string(item.Provider),
		LeagueID:      item.LeagueID,
		ExternalID:    item.ExternalID,
		Name:          item.Name,
		Abbreviation:  item.Abbreviation,
		OwnerID:       item.OwnerID,
		OwnerName:     item.OwnerName,
		Wins:          item.Record.Wins,
		Losses:        item.Record.Losses,
		Ties:          item.Record.Ties,
		PointsFor:     item.PointsFor,
		AveragePoints: item.AveragePoints,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	query, args, err := qb.UpsertModel("fantasy_teams", model, "provider", "league_id", "external_id")
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if err := upsert(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("upsert team %s/%s/%s: %w", item.Provider, item.LeagueID, item.ExternalID, err)
	}

	return nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, providerID provider.ID, leagueID string) ([]team.Team, error) {
	query, args, err := qb.Select(qb.Columns(teamTableModel{})...).From("fantasy_teams").
		Where(
			qb.Eq("provider", string(providerID)),
			qb.Eq("league_id", leagueID),
		).
		OrderBy("external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by league query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by league: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			Provider:      provider.ID(row.Provider),
			LeagueID:      row.LeagueID,
			ExternalID:    row.ExternalID,
			Name:          row.Name,
			Abbreviation:  row.Abbreviation,
			OwnerID:       row.OwnerID,
			OwnerName:     row.OwnerName,
			Record:        team.Record{Wins: row.Wins, Losses: row.Losses, Ties: row.Ties},
			PointsFor:     row.PointsFor,
			AveragePoints: row.AveragePoints,
		})
	}

	return out, nil
}
