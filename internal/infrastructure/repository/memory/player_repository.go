package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
)

// PlayerRepository keys players by (provider, league, external id), so the
// same external id from two providers never collides.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[player.Key]player.Player
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	repo := &PlayerRepository{players: make(map[player.Key]player.Player, len(seed))}
	for _, item := range seed {
		repo.players[item.Key()] = clonePlayer(item)
	}

	return repo
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.Key()] = clonePlayer(item)
	return nil
}

func (r *PlayerRepository) GetByKey(_ context.Context, key player.Key) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[key]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(item), true, nil
}

func (r *PlayerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.players)
}

func clonePlayer(item player.Player) player.Player {
	item.SeasonStats = maps.Clone(item.SeasonStats)
	item.LastGameStats = maps.Clone(item.LastGameStats)
	item.Projections = maps.Clone(item.Projections)
	if item.Slot != nil {
		slot := *item.Slot
		item.Slot = &slot
	}
	return item
}
