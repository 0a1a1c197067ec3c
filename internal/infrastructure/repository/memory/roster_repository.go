package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/roster"
)

type rosterKey struct {
	provider provider.ID
	leagueID string
	teamID   string
	playerID string
}

type RosterRepository struct {
	mu      sync.RWMutex
	entries map[rosterKey]roster.Entry
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{entries: make(map[rosterKey]roster.Entry)}
}

func (r *RosterRepository) Upsert(_ context.Context, item roster.Entry) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[rosterKey{item.Provider, item.LeagueID, item.TeamID, item.PlayerID}] = item
	return nil
}

func (r *RosterRepository) ListByTeam(_ context.Context, providerID provider.ID, leagueID, teamID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0)
	for key, item := range r.entries {
		if key.provider == providerID && key.leagueID == leagueID && key.teamID == teamID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}
