package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	qb "github.com/riskibarqy/fantasy-sync/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}

	model, err := playerModelFrom(item, time.Now().UTC())
	if err != nil {
		return err
	}
	query, args, err := qb.UpsertModel("fantasy_players", model, "provider", "league_id", "external_id")
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if err := upsert(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("upsert player %s/%s/%s: %w", item.Provider, item.LeagueID, item.ExternalID, err)
	}

	return nil
}

func (r *PlayerRepository) GetByKey(ctx context.Context, key player.Key) (player.Player, bool, error) {
	query, args, err := qb.Select(qb.Columns(playerTableModel{})...).From("fantasy_players").
		Where(
			qb.Eq("provider", string(key.Provider)),
			qb.Eq("league_id", key.LeagueID),
			qb.Eq("external_id", key.ExternalID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player %s/%s/%s: %w", key.Provider, key.LeagueID, key.ExternalID, err)
	}

	return playerFromModel(row)
}

func playerModelFrom(item player.Player, now time.Time) (playerTableModel, error) {
	season, err := encodeJSON(item.SeasonStats)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode season stats: %w", err)
	}
	lastGame, err := encodeJSON(item.LastGameStats)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode last game stats: %w", err)
	}
	projections, err := encodeJSON(item.Projections)
	if err != nil {
		return playerTableModel{}, fmt.Errorf("encode projections: %w", err)
	}

	return playerTableModel{
		Provider:      string(item.Provider),
		LeagueID:      item.LeagueID,
		ExternalID:    item.ExternalID,
		Name:          item.Name,
		Position:      item.Position,
		TeamAbbr:      item.TeamAbbr,
		Status:        string(item.Status),
		InjuryNote:    item.InjuryNote,
		SeasonStats:   season,
		LastGameStats: lastGame,
		Projections:   projections,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func playerFromModel(row playerTableModel) (player.Player, bool, error) {
	season, err := decodeJSON[float64](row.SeasonStats)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("decode season stats: %w", err)
	}
	lastGame, err := decodeJSON[float64](row.LastGameStats)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("decode last game stats: %w", err)
	}
	projections, err := decodeJSON[float64](row.Projections)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("decode projections: %w", err)
	}

	return player.Player{
		Provider:      provider.ID(row.Provider),
		LeagueID:      row.LeagueID,
		ExternalID:    row.ExternalID,
		Name:          row.Name,
		Position:      row.Position,
		TeamAbbr:      row.TeamAbbr,
		Status:        player.Status(row.Status),
		InjuryNote:    row.InjuryNote,
		SeasonStats:   season,
		LastGameStats: lastGame,
		Projections:   projections,
	}, true, nil
}
