package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

type leagueKey struct {
	provider   provider.ID
	externalID string
}

type LeagueRepository struct {
	mu      sync.RWMutex
	leagues map[leagueKey]league.League
}

func NewLeagueRepository(seed []league.League) *LeagueRepository {
	repo := &LeagueRepository{leagues: make(map[leagueKey]league.League, len(seed))}
	for _, item := range seed {
		repo.leagues[leagueKey{item.Provider, item.ExternalID}] = cloneLeague(item)
	}

	return repo
}

func (r *LeagueRepository) Upsert(_ context.Context, item league.League) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.leagues[leagueKey{item.Provider, item.ExternalID}] = cloneLeague(item)
	return nil
}

func (r *LeagueRepository) GetByExternalID(_ context.Context, providerID provider.ID, externalID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.leagues[leagueKey{providerID, externalID}]
	if !ok {
		return league.League{}, false, nil
	}
	return cloneLeague(item), true, nil
}

func (r *LeagueRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.leagues)
}

func cloneLeague(item league.League) league.League {
	item.Settings.PlayoffWeeks = append([]int(nil), item.Settings.PlayoffWeeks...)
	item.Metadata = maps.Clone(item.Metadata)
	return item
}
