package postgres

import (
	"database/sql"
	"time"
)

type credentialTableModel struct {
	UserID       string       `db:"user_id"`
	Provider     string       `db:"provider"`
	AccessToken  string       `db:"access_token"`
	RefreshToken string       `db:"refresh_token"`
	Cookie       string       `db:"cookie"`
	ExpiresAt    sql.NullTime `db:"expires_at"`
	CreatedAt    time.Time    `db:"created_at,insertonly"`
	UpdatedAt    time.Time    `db:"updated_at"`
}
