package player

import (
	"fmt"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

// RosterSlot describes how a player sits on a fantasy roster.
type RosterSlot struct {
	LineupSlot      string
	Starter         bool
	AcquisitionType string
}

// Player is an athlete as seen by one provider inside one league.
// ExternalID is only unique within (Provider, LeagueID).
type Player struct {
	Provider      provider.ID
	LeagueID      string
	ExternalID    string
	Name          string
	Position      string
	TeamAbbr      string
	Status        Status
	InjuryNote    string
	SeasonStats   map[string]float64
	LastGameStats map[string]float64
	Projections   map[string]float64
	Slot          *RosterSlot
}

// Key is the identity of a stored player.
type Key struct {
	Provider   provider.ID
	LeagueID   string
	ExternalID string
}

func (p Player) Key() Key {
	return Key{Provider: p.Provider, LeagueID: p.LeagueID, ExternalID: p.ExternalID}
}

func (p Player) Validate() error {
	if p.Provider == "" {
		return fmt.Errorf("player provider is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("player league id is required")
	}
	if p.ExternalID == "" {
		return fmt.Errorf("player external id is required")
	}

	return nil
}
