package espn

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-sync/external/providerhttp"
	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
)

const (
	defaultFanBaseURL = "https://fan.api.espn.com"
	fantasyFilterKey  = "X-Fantasy-Filter"
)

type Config struct {
	Transport  providerhttp.Config
	FanBaseURL string
	Season     string
}

// API reads the ESPN fantasy football v3 API. Private leagues need the
// espn_s2 and SWID cookies of a logged-in browser session.
type API struct {
	http       *providerhttp.Client
	fanBaseURL string
	swid       string
	season     string
}

var _ usecase.ProviderAPI = (*API)(nil)

func New(cfg Config, cookie string) (*API, error) {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return nil, fmt.Errorf("%w: espn cookie is required", usecase.ErrInvalidInput)
	}
	cookies, err := http.ParseCookie(cookie)
	if err != nil {
		return nil, fmt.Errorf("%w: parse espn cookie: %v", usecase.ErrInvalidInput, err)
	}

	var swid string
	secrets := append([]string(nil), cfg.Transport.Secrets...)
	for _, item := range cookies {
		secrets = append(secrets, item.Value)
		if strings.EqualFold(item.Name, "SWID") {
			swid = item.Value
		}
	}

	transport := cfg.Transport
	transport.Provider = provider.ESPN
	transport.Secrets = secrets
	transport.Authorize = func(r *http.Request) {
		r.Header.Set("Cookie", cookie)
	}

	fanBaseURL := cfg.FanBaseURL
	if fanBaseURL == "" {
		fanBaseURL = defaultFanBaseURL
	}
	season := cfg.Season
	if season == "" {
		season = league.SeasonFor(time.Now())
	}

	return &API{
		http:       providerhttp.New(transport),
		fanBaseURL: fanBaseURL,
		swid:       swid,
		season:     season,
	}, nil
}

func NewFactory(cfg Config) usecase.ProviderAPIFactory {
	return func(creds usecase.Credentials) (usecase.ProviderAPI, error) {
		return New(cfg, creds.Cookie)
	}
}

func (a *API) Provider() provider.ID {
	return provider.ESPN
}

// FetchLeagues reads the fan profile of the cookie's SWID. userID is used
// when the cookie carries no SWID.
func (a *API) FetchLeagues(ctx context.Context, userID string) ([]league.League, error) {
	var profile fanProfileRaw
	if err := a.http.GetJSON(ctx, a.fanProfileRequest(userID), &profile); err != nil {
		return nil, fmt.Errorf("fetch espn fan profile user=%s: %w", userID, err)
	}
	return mapFanGroups(profile, a.season), nil
}

func (a *API) FetchLeague(ctx context.Context, leagueID string) (league.League, error) {
	var raw leagueRaw
	if err := a.http.GetJSON(ctx, a.leagueRequest(leagueID, "mSettings"), &raw); err != nil {
		return league.League{}, fmt.Errorf("fetch espn league=%s: %w", leagueID, err)
	}
	return mapLeague(raw, a.season), nil
}

// FetchTeams gets teams, members and rosters in one call.
func (a *API) FetchTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	var raw leagueRaw
	if err := a.http.GetJSON(ctx, a.leagueRequest(leagueID, "mTeam", "mRoster"), &raw); err != nil {
		return nil, fmt.Errorf("fetch espn teams league=%s: %w", leagueID, err)
	}

	members := make(map[string]memberRaw, len(raw.Members))
	for _, member := range raw.Members {
		members[member.ID.String()] = member
	}

	out := make([]team.Team, 0, len(raw.Teams))
	for _, item := range raw.Teams {
		out = append(out, mapTeam(leagueID, item, members))
	}
	return out, nil
}

func (a *API) FetchPlayer(ctx context.Context, playerID string, week int) (player.Player, error) {
	id, err := strconv.ParseInt(playerID, 10, 64)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: espn player id must be numeric: %q", usecase.ErrInvalidInput, playerID)
	}
	filter, err := sonic.Marshal(map[string]any{
		"players": map[string]any{
			"filterIds": map[string]any{"value": []int64{id}},
		},
	})
	if err != nil {
		return player.Player{}, fmt.Errorf("encode espn player filter: %w", err)
	}

	req := providerhttp.Request{
		Path:   "/seasons/" + url.PathEscape(a.season) + "/segments/0/leaguedefaults/3",
		Query:  url.Values{"view": {"kona_player_info"}},
		Header: http.Header{fantasyFilterKey: {string(filter)}},
	}
	var raw playersRaw
	if err := a.http.GetJSON(ctx, req, &raw); err != nil {
		return player.Player{}, fmt.Errorf("fetch espn player=%s: %w", playerID, err)
	}

	for _, item := range raw.Players {
		if item.Player.ID.String() == playerID {
			return mapPlayer(item.Player, week), nil
		}
	}
	return player.Player{}, fmt.Errorf("%w: espn player=%s", usecase.ErrNotFound, playerID)
}

// VerifyAuth loads the fan profile, which rejects a stale cookie.
func (a *API) VerifyAuth(ctx context.Context) error {
	if a.swid == "" {
		return fmt.Errorf("%w: espn cookie has no SWID", usecase.ErrInvalidInput)
	}
	return a.http.GetJSON(ctx, a.fanProfileRequest(""), nil)
}

func (a *API) fanProfileRequest(userID string) providerhttp.Request {
	swid := a.swid
	if swid == "" {
		swid = userID
	}
	return providerhttp.Request{
		BaseURL: a.fanBaseURL,
		Path:    "/apis/v2/fans/" + url.PathEscape(swid),
		Query: url.Values{
			"displayEvents": {"true"},
			"context":       {"fantasy"},
			"source":        {"espncom-fantasy-lm"},
		},
	}
}

func (a *API) leagueRequest(leagueID string, views ...string) providerhttp.Request {
	return providerhttp.Request{
		Path:  "/seasons/" + url.PathEscape(a.season) + "/segments/0/leagues/" + url.PathEscape(leagueID),
		Query: url.Values{"view": views},
	}
}
