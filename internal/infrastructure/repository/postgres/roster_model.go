package postgres

import "time"

type rosterEntryTableModel struct {
	Provider        string    `db:"provider"`
	LeagueID        string    `db:"league_id"`
	TeamID          string    `db:"team_id"`
	PlayerID        string    `db:"player_id"`
	LineupSlot      string    `db:"lineup_slot"`
	Starter         bool      `db:"starter"`
	AcquisitionType string    `db:"acquisition_type"`
	CreatedAt       time.Time `db:"created_at,insertonly"`
	UpdatedAt       time.Time `db:"updated_at"`
}
