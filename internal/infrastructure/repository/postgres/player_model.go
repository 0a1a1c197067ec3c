package postgres

import "time"

type playerTableModel struct {
	Provider      string    `db:"provider"`
	LeagueID      string    `db:"league_id"`
	ExternalID    string    `db:"external_id"`
	Name          string    `db:"name"`
	Position      string    `db:"position"`
	TeamAbbr      string    `db:"team_abbr"`
	Status        string    `db:"status"`
	InjuryNote    string    `db:"injury_note"`
	SeasonStats   []byte    `db:"season_stats"`
	LastGameStats []byte    `db:"last_game_stats"`
	Projections   []byte    `db:"projections"`
	CreatedAt     time.Time `db:"created_at,insertonly"`
	UpdatedAt     time.Time `db:"updated_at"`
}
