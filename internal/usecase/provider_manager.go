package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// SyncAllResult aggregates one user's sync across every initialized provider.
type SyncAllResult struct {
	Success      bool                         `json:"success"`
	Results      map[provider.ID][]SyncResult `json:"results"`
	TotalLeagues int                          `json:"totalLeagues"`
	Errors       []string                     `json:"errors"`
}

type providerSyncOutcome struct {
	provider provider.ID
	results  []SyncResult
	errors   []string
}

// ProviderManager holds at most one ProviderClient per provider for one
// user session and fans syncs out across them.
type ProviderManager struct {
	mu        sync.RWMutex
	clients   map[provider.ID]*ProviderClient
	factories ProviderAPIFactories
	repos     Repositories
	cfg       ClientConfig
	logger    *logging.Logger
}

func NewProviderManager(factories ProviderAPIFactories, repos Repositories, cfg ClientConfig, logger *logging.Logger) *ProviderManager {
	if logger == nil {
		logger = logging.Default()
	}

	return &ProviderManager{
		clients:   make(map[provider.ID]*ProviderClient),
		factories: factories,
		repos:     repos,
		cfg:       cfg,
		logger:    logger,
	}
}

// InitializeProvider builds a fresh client for p, replacing any previous one.
// The new client starts with an empty cache and its own rate limiter.
func (m *ProviderManager) InitializeProvider(p provider.ID, creds Credentials) (*ProviderClient, error) {
	info, ok := provider.Lookup(p)
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, p)
	}
	factory, ok := m.factories[p]
	if !ok || factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, p)
	}
	if err := validateCredentials(info, creds); err != nil {
		return nil, err
	}

	api, err := factory(creds)
	if err != nil {
		return nil, fmt.Errorf("build %s client: %w", p, err)
	}

	client := NewProviderClient(info, api, m.repos, m.cfg, m.logger)

	m.mu.Lock()
	m.clients[p] = client
	m.mu.Unlock()

	m.logger.Info("provider initialized", "provider", string(p), "auth_style", string(info.AuthStyle))
	return client, nil
}

func (m *ProviderManager) Client(p provider.ID) (*ProviderClient, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	client, ok := m.clients[p]
	return client, ok
}

// Providers lists initialized providers in a stable order.
func (m *ProviderManager) Providers() []provider.ID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]provider.ID, 0, len(m.clients))
	for p := range m.clients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SyncAllUserLeagues syncs every league of userID on every initialized
// provider. Providers run concurrently; leagues of one provider run one after
// another so that provider's rate limiter is respected. All providers are
// joined before returning, successful or not.
func (m *ProviderManager) SyncAllUserLeagues(ctx context.Context, userID string) SyncAllResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderManager.SyncAllUserLeagues")
	defer span.End()

	started := time.Now()
	providers := m.Providers()

	p := pool.NewWithResults[providerSyncOutcome]()
	for _, id := range providers {
		client, ok := m.Client(id)
		if !ok {
			continue
		}
		p.Go(func() providerSyncOutcome {
			return m.syncProvider(ctx, client, userID)
		})
	}
	outcomes := p.Wait()
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].provider < outcomes[j].provider })

	out := SyncAllResult{
		Success: true,
		Results: make(map[provider.ID][]SyncResult, len(outcomes)),
		Errors:  []string{},
	}
	for _, outcome := range outcomes {
		out.Results[outcome.provider] = outcome.results
		out.TotalLeagues += len(outcome.results)
		if len(outcome.errors) > 0 {
			out.Success = false
			out.Errors = append(out.Errors, outcome.errors...)
		}
		for _, result := range outcome.results {
			if !result.Success {
				out.Success = false
			}
			for _, msg := range result.Errors {
				out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", outcome.provider, msg))
			}
		}
	}

	m.cfg.Metrics.ObserveUserSync(out.Success, time.Since(started))
	m.logger.InfoContext(ctx, "user sync finished",
		"user_id", userID,
		"providers", len(providers),
		"total_leagues", out.TotalLeagues,
		"success", out.Success,
		"errors", len(out.Errors),
	)
	return out
}

func (m *ProviderManager) syncProvider(ctx context.Context, client *ProviderClient, userID string) providerSyncOutcome {
	outcome := providerSyncOutcome{
		provider: client.Provider(),
		results:  []SyncResult{},
	}

	leagues, err := client.GetLeagues(ctx, userID)
	if err != nil {
		outcome.errors = append(outcome.errors, fmt.Sprintf("%s: list leagues: %v", outcome.provider, err))
		return outcome
	}

	for _, item := range leagues {
		if item.Placeholder {
			outcome.errors = append(outcome.errors, fmt.Sprintf("%s: provider unreachable", outcome.provider))
			continue
		}
		if err := ctx.Err(); err != nil {
			outcome.errors = append(outcome.errors, fmt.Sprintf("%s: sync aborted: %v", outcome.provider, err))
			break
		}
		outcome.results = append(outcome.results, client.SyncLeagueToDatabase(ctx, item.ExternalID, userID))
	}
	return outcome
}
