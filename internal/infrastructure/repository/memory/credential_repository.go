package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-sync/internal/domain/credential"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

type CredentialRepository struct {
	mu     sync.RWMutex
	byUser map[string]map[provider.ID]credential.Credential
}

func NewCredentialRepository(seed []credential.Credential) *CredentialRepository {
	repo := &CredentialRepository{byUser: make(map[string]map[provider.ID]credential.Credential)}
	for _, item := range seed {
		repo.put(item)
	}

	return repo
}

func (r *CredentialRepository) Upsert(_ context.Context, item credential.Credential) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(item)
	return nil
}

func (r *CredentialRepository) put(item credential.Credential) {
	rows, ok := r.byUser[item.UserID]
	if !ok {
		rows = make(map[provider.ID]credential.Credential)
		r.byUser[item.UserID] = rows
	}
	rows[item.Provider] = item
}

func (r *CredentialRepository) ListByUser(_ context.Context, userID string) ([]credential.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byUser[userID]
	out := make([]credential.Credential, 0, len(rows))
	for _, item := range rows {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })

	return out, nil
}

func (r *CredentialRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byUser))
	for userID := range r.byUser {
		out = append(out, userID)
	}
	sort.Strings(out)

	return out, nil
}
