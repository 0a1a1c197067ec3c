package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/roster"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
)

// ProviderAPI is the raw, already-normalizing endpoint surface of one
// provider. Implementations rate limit every dispatched request and return
// errors wrapping ErrUnauthorized for HTTP 401 and ErrDependencyUnavailable
// for everything transient.
type ProviderAPI interface {
	Provider() provider.ID
	FetchLeagues(ctx context.Context, userID string) ([]league.League, error)
	FetchLeague(ctx context.Context, leagueID string) (league.League, error)
	FetchTeams(ctx context.Context, leagueID string) ([]team.Team, error)
	FetchPlayer(ctx context.Context, playerID string, week int) (player.Player, error)
	VerifyAuth(ctx context.Context) error
}

// Credentials are what a provider client authenticates with. Which field is
// required depends on the provider's auth style.
type Credentials struct {
	AccessToken string
	Cookie      string
}

// ProviderAPIFactory builds a fresh ProviderAPI, with its own rate limiter,
// for one credential.
type ProviderAPIFactory func(creds Credentials) (ProviderAPI, error)

// ProviderAPIFactories selects the implementation for each provider.
type ProviderAPIFactories map[provider.ID]ProviderAPIFactory

// Repositories is the upsert store the sync writes into.
type Repositories struct {
	Leagues league.Repository
	Teams   team.Repository
	Players player.Repository
	Rosters roster.Repository
}

// FallbackMode decides what GetLeagues returns when the provider is unreachable.
type FallbackMode string

const (
	// FallbackLenient returns a single placeholder league.
	FallbackLenient FallbackMode = "lenient"
	// FallbackStrict returns ErrDependencyUnavailable.
	FallbackStrict FallbackMode = "strict"
)

// CacheTTLs are the lifetimes per resource class.
type CacheTTLs struct {
	Leagues time.Duration
	Teams   time.Duration
	Players time.Duration
	Live    time.Duration
}

func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		Leagues: 5 * time.Minute,
		Teams:   2 * time.Minute,
		Players: time.Minute,
		Live:    30 * time.Second,
	}
}

func (c CacheTTLs) normalize() CacheTTLs {
	defaults := DefaultCacheTTLs()
	if c.Leagues <= 0 {
		c.Leagues = defaults.Leagues
	}
	if c.Teams <= 0 {
		c.Teams = defaults.Teams
	}
	if c.Players <= 0 {
		c.Players = defaults.Players
	}
	if c.Live <= 0 {
		c.Live = defaults.Live
	}
	return c
}

func validateCredentials(info provider.Info, creds Credentials) error {
	switch info.AuthStyle {
	case provider.AuthOAuth2:
		if creds.AccessToken == "" {
			return fmt.Errorf("%w: %s requires an access token", ErrInvalidInput, info.DisplayName)
		}
	case provider.AuthCookie:
		if creds.Cookie == "" {
			return fmt.Errorf("%w: %s requires a cookie", ErrInvalidInput, info.DisplayName)
		}
	}
	return nil
}
