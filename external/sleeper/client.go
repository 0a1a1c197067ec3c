package sleeper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/riskibarqy/fantasy-sync/external/providerhttp"
	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
)

// Stats are served from a different host than the league API.
const defaultStatsBaseURL = "https://api.sleeper.com"

type Config struct {
	Transport    providerhttp.Config
	StatsBaseURL string
	// Season is used for the user league listing; empty means the current one.
	Season string
}

// API is the public, unauthenticated Sleeper read API.
type API struct {
	http         *providerhttp.Client
	statsBaseURL string
	season       string
}

var _ usecase.ProviderAPI = (*API)(nil)

func New(cfg Config) *API {
	transport := cfg.Transport
	transport.Provider = provider.Sleeper

	statsBaseURL := cfg.StatsBaseURL
	if statsBaseURL == "" {
		statsBaseURL = defaultStatsBaseURL
	}
	season := cfg.Season
	if season == "" {
		season = league.SeasonFor(time.Now())
	}

	return &API{
		http:         providerhttp.New(transport),
		statsBaseURL: statsBaseURL,
		season:       season,
	}
}

// NewFactory ignores credentials: Sleeper has no auth.
func NewFactory(cfg Config) usecase.ProviderAPIFactory {
	return func(usecase.Credentials) (usecase.ProviderAPI, error) {
		return New(cfg), nil
	}
}

func (a *API) Provider() provider.ID {
	return provider.Sleeper
}

func (a *API) FetchLeagues(ctx context.Context, userID string) ([]league.League, error) {
	var raw []leagueRaw
	path := fmt.Sprintf("/v1/user/%s/leagues/nfl/%s", url.PathEscape(userID), url.PathEscape(a.season))
	if err := a.http.GetJSON(ctx, providerhttp.Request{Path: path}, &raw); err != nil {
		return nil, fmt.Errorf("fetch sleeper leagues user=%s: %w", userID, err)
	}

	out := make([]league.League, 0, len(raw))
	for _, item := range raw {
		out = append(out, mapLeague(item, a.season))
	}
	return out, nil
}

func (a *API) FetchLeague(ctx context.Context, leagueID string) (league.League, error) {
	var raw leagueRaw
	path := "/v1/league/" + url.PathEscape(leagueID)
	if err := a.http.GetJSON(ctx, providerhttp.Request{Path: path}, &raw); err != nil {
		return league.League{}, fmt.Errorf("fetch sleeper league=%s: %w", leagueID, err)
	}
	return mapLeague(raw, a.season), nil
}

// FetchTeams joins the league's rosters to its users on owner id.
func (a *API) FetchTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	base := "/v1/league/" + url.PathEscape(leagueID)

	var users []userRaw
	if err := a.http.GetJSON(ctx, providerhttp.Request{Path: base + "/users"}, &users); err != nil {
		return nil, fmt.Errorf("fetch sleeper users league=%s: %w", leagueID, err)
	}
	var rosters []rosterRaw
	if err := a.http.GetJSON(ctx, providerhttp.Request{Path: base + "/rosters"}, &rosters); err != nil {
		return nil, fmt.Errorf("fetch sleeper rosters league=%s: %w", leagueID, err)
	}

	owners := make(map[string]*userRaw, len(users))
	for i := range users {
		owners[users[i].UserID.String()] = &users[i]
	}

	out := make([]team.Team, 0, len(rosters))
	for _, roster := range rosters {
		out = append(out, mapTeam(leagueID, roster, owners[roster.OwnerID.String()]))
	}
	return out, nil
}

func (a *API) FetchPlayer(ctx context.Context, playerID string, week int) (player.Player, error) {
	query := url.Values{
		"season_type": {"regular"},
		"season":      {a.season},
	}
	req := providerhttp.Request{
		BaseURL: a.statsBaseURL,
		Path:    "/stats/nfl/player/" + url.PathEscape(playerID),
		Query:   query,
	}

	if week <= 0 {
		var raw playerStatsRaw
		if err := a.http.GetJSON(ctx, req, &raw); err != nil {
			return player.Player{}, fmt.Errorf("fetch sleeper season stats player=%s: %w", playerID, err)
		}
		return mapPlayer(raw, 0), nil
	}

	query.Set("grouping", "week")
	var weeks map[string]*playerStatsRaw
	if err := a.http.GetJSON(ctx, req, &weeks); err != nil {
		return player.Player{}, fmt.Errorf("fetch sleeper week=%d stats player=%s: %w", week, playerID, err)
	}
	raw := weeks[strconv.Itoa(week)]
	if raw == nil {
		return player.Player{}, fmt.Errorf("%w: sleeper has no week=%d stats for player=%s", usecase.ErrNotFound, week, playerID)
	}
	if raw.PlayerID == "" {
		raw.PlayerID = providerhttp.FlexString(playerID)
	}
	return mapPlayer(*raw, week), nil
}

// VerifyAuth only checks that the API is reachable.
func (a *API) VerifyAuth(ctx context.Context) error {
	return a.http.GetJSON(ctx, providerhttp.Request{Path: "/v1/state/nfl"}, nil)
}
