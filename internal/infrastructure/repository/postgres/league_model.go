package postgres

import (
	"time"

	"github.com/lib/pq"
)

type leagueTableModel struct {
	Provider     string        `db:"provider"`
	ExternalID   string        `db:"external_id"`
	Name         string        `db:"name"`
	Sport        string        `db:"sport"`
	Season       string        `db:"season"`
	TeamCount    int           `db:"team_count"`
	RosterSize   int           `db:"roster_size"`
	PlayoffWeeks pq.Int64Array `db:"playoff_weeks"`
	ScoringType  string        `db:"scoring_type"`
	Active       bool          `db:"active"`
	Metadata     []byte        `db:"metadata"`
	CreatedAt    time.Time     `db:"created_at,insertonly"`
	UpdatedAt    time.Time     `db:"updated_at"`
}
