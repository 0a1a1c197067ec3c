package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
)

type leagueScope struct {
	provider provider.ID
	leagueID string
}

// TeamRepository keeps teams per (provider, league). Rosters are not stored
// here; see RosterRepository.
type TeamRepository struct {
	mu            sync.RWMutex
	teamsByLeague map[leagueScope]map[string]team.Team
}

func NewTeamRepository(seed []team.Team) *TeamRepository {
	repo := &TeamRepository{teamsByLeague: make(map[leagueScope]map[string]team.Team)}
	for _, item := range seed {
		repo.put(item)
	}

	return repo
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(item)
	return nil
}

func (r *TeamRepository) put(item team.Team) {
	item.Roster = nil
	scope := leagueScope{item.Provider, item.LeagueID}
	rows, ok := r.teamsByLeague[scope]
	if !ok {
		rows = make(map[string]team.Team)
		r.teamsByLeague[scope] = rows
	}
	rows[item.ExternalID] = item
}

func (r *TeamRepository) ListByLeague(_ context.Context, providerID provider.ID, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.teamsByLeague[leagueScope{providerID, leagueID}]
	out := make([]team.Team, 0, len(rows))
	for _, item := range rows {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })

	return out, nil
}
