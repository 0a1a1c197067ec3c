package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
	"github.com/riskibarqy/fantasy-sync/internal/platform/cache"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/platform/metrics"
)

const (
	resourceLeagues = "leagues"
	resourceLeague  = "league"
	resourceTeams   = "teams"
	resourcePlayer  = "player"
)

// ClientConfig is shared by every ProviderClient a manager builds.
type ClientConfig struct {
	FallbackMode FallbackMode
	CacheTTLs    CacheTTLs
	Clock        clockwork.Clock
	Metrics      *metrics.Metrics
}

// ProviderClient is the per-(provider, credential) entry point. Reads go
// through its private cache first; only misses reach the provider API, whose
// transport applies the rate limit.
type ProviderClient struct {
	info    provider.Info
	api     ProviderAPI
	cache   *cache.Store
	repos   Repositories
	cfg     ClientConfig
	logger  *logging.Logger
	metrics *metrics.Metrics
}

func NewProviderClient(info provider.Info, api ProviderAPI, repos Repositories, cfg ClientConfig, logger *logging.Logger) *ProviderClient {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.FallbackMode == "" {
		cfg.FallbackMode = FallbackLenient
	}
	cfg.CacheTTLs = cfg.CacheTTLs.normalize()

	return &ProviderClient{
		info:    info,
		api:     api,
		cache:   cache.NewStore(cfg.Clock),
		repos:   repos,
		cfg:     cfg,
		logger:  logger.With("provider", string(info.ID)),
		metrics: cfg.Metrics,
	}
}

func (c *ProviderClient) Provider() provider.ID {
	return c.info.ID
}

// GetLeagues lists the user's leagues. When the provider cannot be reached the
// result depends on the fallback mode: lenient returns one placeholder league,
// strict returns ErrDependencyUnavailable. ErrUnauthorized is always returned
// as is.
func (c *ProviderClient) GetLeagues(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderClient.GetLeagues", providerAttr(string(c.info.ID)))
	defer span.End()

	leagues, err := c.fetchLeagues(ctx, userID)
	if err == nil {
		return leagues, nil
	}
	if !c.degradable(ctx, err) {
		return nil, err
	}

	c.logger.WarnContext(ctx, "list leagues failed", "user_id", userID, "fallback_mode", string(c.cfg.FallbackMode), "error", err)
	if c.cfg.FallbackMode == FallbackStrict {
		return nil, fmt.Errorf("%w: list %s leagues: %v", ErrDependencyUnavailable, c.info.ID, err)
	}
	return []league.League{c.placeholderLeague(userID, err)}, nil
}

// GetLeagueInfo returns nil, not a placeholder, when the league cannot be fetched.
func (c *ProviderClient) GetLeagueInfo(ctx context.Context, leagueID string) (*league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderClient.GetLeagueInfo", providerAttr(string(c.info.ID)))
	defer span.End()

	item, err := c.fetchLeague(ctx, leagueID)
	if err == nil {
		return &item, nil
	}
	if !c.degradable(ctx, err) {
		return nil, err
	}

	c.logger.WarnContext(ctx, "get league info failed", "league_id", leagueID, "error", err)
	return nil, nil
}

// GetTeams returns the league's teams with rosters merged in, or an empty
// slice when the provider cannot be reached. An empty result does not mean
// the league has no teams.
func (c *ProviderClient) GetTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderClient.GetTeams", providerAttr(string(c.info.ID)))
	defer span.End()

	teams, err := c.fetchTeams(ctx, leagueID)
	if err == nil {
		return teams, nil
	}
	if !c.degradable(ctx, err) {
		return nil, err
	}

	c.logger.WarnContext(ctx, "get teams failed", "league_id", leagueID, "error", err)
	return []team.Team{}, nil
}

// GetPlayerStats loads one player's stats. week <= 0 asks for season totals.
func (c *ProviderClient) GetPlayerStats(ctx context.Context, playerID string, week int) (*player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderClient.GetPlayerStats", providerAttr(string(c.info.ID)))
	defer span.End()

	item, err := c.fetchPlayer(ctx, playerID, week)
	if err == nil {
		return &item, nil
	}
	if !c.degradable(ctx, err) {
		return nil, err
	}

	c.logger.WarnContext(ctx, "get player stats failed", "player_id", playerID, "week", week, "error", err)
	return nil, nil
}

func (c *ProviderClient) fetchLeagues(ctx context.Context, userID string) ([]league.League, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	key := cache.Key{Provider: string(c.info.ID), Resource: resourceLeagues, ID: userID}
	return loadCached(ctx, c, key, c.cfg.CacheTTLs.Leagues, func(ctx context.Context) ([]league.League, error) {
		return c.api.FetchLeagues(ctx, userID)
	})
}

func (c *ProviderClient) fetchLeague(ctx context.Context, leagueID string) (league.League, error) {
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	key := cache.Key{Provider: string(c.info.ID), Resource: resourceLeague, ID: leagueID}
	return loadCached(ctx, c, key, c.cfg.CacheTTLs.Leagues, func(ctx context.Context) (league.League, error) {
		return c.api.FetchLeague(ctx, leagueID)
	})
}

func (c *ProviderClient) fetchTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	key := cache.Key{Provider: string(c.info.ID), Resource: resourceTeams, ID: leagueID}
	return loadCached(ctx, c, key, c.cfg.CacheTTLs.Teams, func(ctx context.Context) ([]team.Team, error) {
		return c.api.FetchTeams(ctx, leagueID)
	})
}

func (c *ProviderClient) fetchPlayer(ctx context.Context, playerID string, week int) (player.Player, error) {
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	sub, ttl := "season", c.cfg.CacheTTLs.Players
	if week > 0 {
		sub, ttl = "week-"+strconv.Itoa(week), c.cfg.CacheTTLs.Live
	}
	key := cache.Key{Provider: string(c.info.ID), Resource: resourcePlayer, ID: playerID, Sub: sub}
	return loadCached(ctx, c, key, ttl, func(ctx context.Context) (player.Player, error) {
		return c.api.FetchPlayer(ctx, playerID, week)
	})
}

func loadCached[T any](ctx context.Context, c *ProviderClient, key cache.Key, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	value, hit, err := cache.Load(ctx, c.cache, key, ttl, fetch)
	c.metrics.ObserveCache(key.Provider, key.Resource, hit)
	return value, err
}

// degradable reports whether err may be swallowed by a read operation.
// Auth failures, bad input and caller cancellation never are.
func (c *ProviderClient) degradable(ctx context.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case ctx.Err() != nil:
		return false
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidInput), errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

func (c *ProviderClient) placeholderLeague(userID string, cause error) league.League {
	return league.League{
		Provider:   c.info.ID,
		ExternalID: "placeholder-" + userID,
		Name:       c.info.DisplayName + " League",
		Sport:      "nfl",
		Season:     league.SeasonFor(c.cfg.Clock.Now()),
		Settings: league.Settings{
			TeamCount:   league.DefaultTeamCount,
			ScoringType: league.ScoringStandard,
		},
		Placeholder: true,
		Metadata: map[string]any{
			"placeholder": true,
			"reason":      cause.Error(),
		},
	}
}
