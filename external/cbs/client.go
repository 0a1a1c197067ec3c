package cbs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-sync/external/providerhttp"
	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
)

const apiVersion = "3.0"

type Config struct {
	Transport providerhttp.Config
	Season    string
}

// API reads the CBS Sports fantasy API. The access token travels as a query
// parameter, so it is registered as a secret for redaction.
type API struct {
	http        *providerhttp.Client
	accessToken string
	season      string
}

var _ usecase.ProviderAPI = (*API)(nil)

func New(cfg Config, accessToken string) (*API, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("%w: cbs access token is required", usecase.ErrInvalidInput)
	}

	transport := cfg.Transport
	transport.Provider = provider.CBS
	transport.Secrets = append(append([]string(nil), transport.Secrets...), accessToken)

	season := cfg.Season
	if season == "" {
		season = league.SeasonFor(time.Now())
	}
	return &API{
		http:        providerhttp.New(transport),
		accessToken: accessToken,
		season:      season,
	}, nil
}

func NewFactory(cfg Config) usecase.ProviderAPIFactory {
	return func(creds usecase.Credentials) (usecase.ProviderAPI, error) {
		return New(cfg, creds.AccessToken)
	}
}

func (a *API) Provider() provider.ID {
	return provider.CBS
}

func (a *API) FetchLeagues(ctx context.Context, userID string) ([]league.League, error) {
	var out envelope[userLeaguesBody]
	if err := a.http.GetJSON(ctx, a.request("/user/leagues", nil), &out); err != nil {
		return nil, fmt.Errorf("fetch cbs leagues user=%s: %w", userID, err)
	}

	leagues := make([]league.League, 0, len(out.Body.Leagues))
	for _, item := range out.Body.Leagues {
		leagues = append(leagues, mapLeague(item, a.season))
	}
	return leagues, nil
}

func (a *API) FetchLeague(ctx context.Context, leagueID string) (league.League, error) {
	var out envelope[leagueDetailsBody]
	if err := a.http.GetJSON(ctx, a.request("/league/details", url.Values{"league_id": {leagueID}}), &out); err != nil {
		return league.League{}, fmt.Errorf("fetch cbs league=%s: %w", leagueID, err)
	}
	return mapLeague(out.Body.LeagueDetails, a.season), nil
}

// FetchTeams merges the team list with the all-teams roster call on team id.
func (a *API) FetchTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	var teams envelope[teamsBody]
	if err := a.http.GetJSON(ctx, a.request("/league/teams", url.Values{"league_id": {leagueID}}), &teams); err != nil {
		return nil, fmt.Errorf("fetch cbs teams league=%s: %w", leagueID, err)
	}
	var rosters envelope[rostersBody]
	query := url.Values{"league_id": {leagueID}, "team_id": {"all"}}
	if err := a.http.GetJSON(ctx, a.request("/league/rosters", query), &rosters); err != nil {
		return nil, fmt.Errorf("fetch cbs rosters league=%s: %w", leagueID, err)
	}

	byTeam := make(map[string]rosterRaw, len(rosters.Body.Rosters.Teams))
	for _, roster := range rosters.Body.Rosters.Teams {
		byTeam[roster.ID.String()] = roster
	}

	out := make([]team.Team, 0, len(teams.Body.Teams))
	for _, raw := range teams.Body.Teams {
		item := mapTeam(leagueID, raw)
		item.Roster = mapRoster(leagueID, byTeam[item.ExternalID])
		out = append(out, item)
	}
	return out, nil
}

func (a *API) FetchPlayer(ctx context.Context, playerID string, week int) (player.Player, error) {
	query := url.Values{"player_id": {playerID}, "timeframe": {a.season}}
	if week > 0 {
		query.Set("period", strconv.Itoa(week))
	}

	var out envelope[playerProfileBody]
	if err := a.http.GetJSON(ctx, a.request("/players/profile", query), &out); err != nil {
		return player.Player{}, fmt.Errorf("fetch cbs player=%s week=%d: %w", playerID, week, err)
	}
	return mapPlayer(out.Body.PlayerProfile.Player, week), nil
}

func (a *API) VerifyAuth(ctx context.Context) error {
	return a.http.GetJSON(ctx, a.request("/user/leagues", nil), nil)
}

func (a *API) request(path string, extra url.Values) providerhttp.Request {
	query := url.Values{
		"version":         {apiVersion},
		"response_format": {"json"},
		"access_token":    {a.accessToken},
	}
	for key, values := range extra {
		query[key] = values
	}
	return providerhttp.Request{Path: path, Query: query}
}
