package team

import (
	"fmt"

	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

// Record is a win/loss/tie line.
type Record struct {
	Wins   int
	Losses int
	Ties   int
}

func (r Record) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

// Team is a fantasy team inside one provider league. Roster is rebuilt on
// every sync.
type Team struct {
	Provider      provider.ID
	LeagueID      string
	ExternalID    string
	Name          string
	Abbreviation  string
	OwnerID       string
	OwnerName     string
	Record        Record
	PointsFor     float64
	AveragePoints float64
	Roster        []player.Player
}

func (t Team) Validate() error {
	if t.Provider == "" {
		return fmt.Errorf("team provider is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.ExternalID == "" {
		return fmt.Errorf("team external id is required")
	}

	return nil
}

// AveragePointsFor derives per-game scoring; zero games yields zero.
func AveragePointsFor(points float64, record Record) float64 {
	games := record.GamesPlayed()
	if games == 0 {
		return 0
	}
	return points / float64(games)
}
