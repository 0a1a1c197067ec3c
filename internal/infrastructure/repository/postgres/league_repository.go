package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	qb "github.com/riskibarqy/fantasy-sync/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := upsertLeagueQuery(item, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("build upsert league query: %w", err)
	}
	if err := upsert(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("upsert league %s/%s: %w", item.Provider, item.ExternalID, err)
	}

	return nil
}

func (r *LeagueRepository) GetByExternalID(ctx context.Context, providerID provider.ID, externalID string) (league.League, bool, error) {
	query, args, err := qb.Select(qb.Columns(leagueTableModel{})...).From("fantasy_leagues").
		Where(
			qb.Eq("provider", string(providerID)),
			qb.Eq("external_id", externalID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build select league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("select league %s/%s: %w", providerID, externalID, err)
	}

	item, err := leagueFromModel(row)
	if err != nil {
		return league.League{}, false, err
	}
	return item, true, nil
}

func upsertLeagueQuery(item league.League, now time.Time) (string, []any, error) {
	metadata := []byte("{}")
	if len(item.Metadata) > 0 {
		raw, err := sonic.Marshal(item.Metadata)
		if err != nil {
			return "", nil, fmt.Errorf("encode league metadata: %w", err)
		}
		metadata = raw
	}

	weeks := make(pq.Int64Array, 0, len(item.Settings.PlayoffWeeks))
	for _, week := range item.Settings.PlayoffWeeks {
		weeks = append(weeks, int64(week))
	}

	model := leagueTableModel{
		Provider:     string(item.Provider),
		ExternalID:   item.ExternalID,
		Name:         item.Name,
		Sport:        item.Sport,
		Season:       item.Season,
		TeamCount:    item.Settings.TeamCount,
		RosterSize:   item.Settings.RosterSize,
		PlayoffWeeks: weeks,
		ScoringType:  string(item.Settings.ScoringType),
		Active:       item.Active,
		Metadata:     metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return qb.UpsertModel("fantasy_leagues", model, "provider", "external_id")
}

func leagueFromModel(row leagueTableModel) (league.League, error) {
	var metadata map[string]any
	if len(row.Metadata) > 0 && string(row.Metadata) != "{}" {
		if err := sonic.Unmarshal(row.Metadata, &metadata); err != nil {
			return league.League{}, fmt.Errorf("decode league metadata: %w", err)
		}
	}

	weeks := make([]int, 0, len(row.PlayoffWeeks))
	for _, week := range row.PlayoffWeeks {
		weeks = append(weeks, int(week))
	}

	return league.League{
		Provider:   provider.ID(row.Provider),
		ExternalID: row.ExternalID,
		Name:       row.Name,
		Sport:      row.Sport,
		Season:     row.Season,
		Settings: league.Settings{
			TeamCount:    row.TeamCount,
			RosterSize:   row.RosterSize,
			PlayoffWeeks: weeks,
			ScoringType:  league.ScoringType(row.ScoringType),
		},
		Active:   row.Active,
		Metadata: metadata,
	}, nil
}
