package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("external_id", "name").
		From("fantasy_teams").
		Where(Eq("provider", "sleeper"), Eq("league_id", "900")).
		OrderBy("external_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT external_id, name FROM fantasy_teams WHERE provider = $1 AND league_id = $2 ORDER BY external_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "sleeper" || args[1] != "900" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_OnConflict(t *testing.T) {
	query, args, err := InsertInto("fantasy_leagues").
		Columns("provider", "external_id", "name").
		Values("yahoo", "449.l.1", "Office").
		OnConflict("provider", "external_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO fantasy_leagues (provider, external_id, name) VALUES ($1, $2, $3) ON CONFLICT (provider, external_id) DO UPDATE SET name = EXCLUDED.name"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
}

type rosterRow struct {
	Provider  string    `db:"provider"`
	LeagueID  string    `db:"league_id"`
	PlayerID  string    `db:"player_id"`
	Slot      string    `db:"lineup_slot"`
	CreatedAt time.Time `db:"created_at,insertonly"`
	internal  string
	Ignored   string `db:"-"`
}

func TestUpsertModel(t *testing.T) {
	row := rosterRow{Provider: "espn", LeagueID: "1", PlayerID: "p", Slot: "QB", internal: "x"}
	query, args, err := UpsertModel("fantasy_roster_entries", row, "provider", "league_id", "player_id")
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}

	wantQuery := "INSERT INTO fantasy_roster_entries (provider, league_id, player_id, lineup_slot, created_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (provider, league_id, player_id) DO UPDATE SET lineup_slot = EXCLUDED.lineup_slot"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 5 || args[3] != "QB" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := UpsertModel("t", row); err == nil {
		t.Fatalf("expected error without conflict keys")
	}
}

func TestColumns(t *testing.T) {
	cols := Columns(rosterRow{})
	if len(cols) != 5 || cols[4] != "created_at" {
		t.Fatalf("unexpected columns %v", cols)
	}
}
