package postgres

import "time"

type teamTableModel struct {
	Provider      string    `db:"provider"`
	LeagueID      string    `db:"league_id"`
	ExternalID    string    `db:"external_id"`
	Name          string    `db:"name"`
	Abbreviation  string    `db:"abbreviation"`
	OwnerID       string    `db:"owner_id"`
	OwnerName     string    `db:"owner_name"`
	Wins          int       `db:"wins"`
	Losses        int       `db:"losses"`
	Ties          int       `db:"ties"`
	PointsFor     float64   `db:"points_for"`
	AveragePoints float64   `db:"average_points"`
	CreatedAt     time.Time `db:"created_at,insertonly"`
	UpdatedAt     time.Time `db:"updated_at"`
}
