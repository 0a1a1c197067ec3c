package yahoo

import (
	"context"
	"fmt"
	"net/http"
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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

var jsonFormat = url.Values{"format": {"json"}}

type Config struct {
	Transport providerhttp.Config
	Season    string
}

// API reads the Yahoo Fantasy Sports v2 API with an OAuth bearer token.
type API struct {
	http   *providerhttp.Client
	season string
}

var _ usecase.ProviderAPI = (*API)(nil)

func New(cfg Config, accessToken string) (*API, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("%w: yahoo access token is required", usecase.ErrInvalidInput)
	}

	transport := cfg.Transport
	transport.Provider = provider.Yahoo
	transport.HTTPClient = bearerClient(cfg.Transport.HTTPClient, accessToken)
	transport.Secrets = append(append([]string(nil), transport.Secrets...), accessToken)

	season := cfg.Season
	if season == "" {
		season = league.SeasonFor(time.Now())
	}
	return &API{http: providerhttp.New(transport), season: season}, nil
}

// bearerClient wraps base, or an otelhttp transport when base is nil, so every
// request carries the access token.
func bearerClient(base *http.Client, accessToken string) *http.Client {
	client := &http.Client{}
	var next http.RoundTripper
	if base != nil {
		*client = *base
		next = base.Transport
	} else {
		next = otelhttp.NewTransport(http.DefaultTransport)
	}
	client.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
		Base:   next,
	}
	return client
}

func NewFactory(cfg Config) usecase.ProviderAPIFactory {
	return func(creds usecase.Credentials) (usecase.ProviderAPI, error) {
		return New(cfg, creds.AccessToken)
	}
}

func (a *API) Provider() provider.ID {
	return provider.Yahoo
}

// FetchLeagues lists the logged-in user's NFL leagues. Yahoo resolves the
// user from the token, so userID is only used for error context.
func (a *API) FetchLeagues(ctx context.Context, userID string) ([]league.League, error) {
	var out envelope[usersContent]
	req := providerhttp.Request{Path: "/users;use_login=1/games;game_keys=nfl/leagues", Query: jsonFormat}
	if err := a.http.GetJSON(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("fetch yahoo leagues user=%s: %w", userID, err)
	}

	leagues := make([]league.League, 0)
	for _, user := range out.FantasyContent.Users {
		for _, game := range user.Value.Games {
			season := game.Value.Season.String()
			if season == "" {
				season = a.season
			}
			for _, item := range game.Value.Leagues {
				leagues = append(leagues, mapLeague(item.Value, season))
			}
		}
	}
	return leagues, nil
}

func (a *API) FetchLeague(ctx context.Context, leagueKey string) (league.League, error) {
	var out envelope[leagueContent]
	req := providerhttp.Request{Path: "/league/" + url.PathEscape(leagueKey) + ";out=settings", Query: jsonFormat}
	if err := a.http.GetJSON(ctx, req, &out); err != nil {
		return league.League{}, fmt.Errorf("fetch yahoo league=%s: %w", leagueKey, err)
	}
	return mapLeague(out.FantasyContent.League.Value, a.season), nil
}

// FetchTeams merges the standings call, which carries records and owners,
// with the roster call on team key.
func (a *API) FetchTeams(ctx context.Context, leagueKey string) ([]team.Team, error) {
	base := "/league/" + url.PathEscape(leagueKey)

	var standings envelope[leagueContent]
	if err := a.http.GetJSON(ctx, providerhttp.Request{Path: base + "/standings", Query: jsonFormat}, &standings); err != nil {
		return nil, fmt.Errorf("fetch yahoo standings league=%s: %w", leagueKey, err)
	}
	var rosters envelope[leagueContent]
	if err := a.http.GetJSON(ctx, providerhttp.Request{Path: base + "/teams/roster", Query: jsonFormat}, &rosters); err != nil {
		return nil, fmt.Errorf("fetch yahoo rosters league=%s: %w", leagueKey, err)
	}

	teams := make([]team.Team, 0)
	index := make(map[string]int)
	for _, entry := range standings.FantasyContent.League.Value.Standings.Value.Teams {
		index[entry.Value.TeamKey] = len(teams)
		teams = append(teams, mapTeam(leagueKey, entry.Value))
	}
	for _, entry := range rosters.FantasyContent.League.Value.Teams {
		roster := mapRoster(leagueKey, entry.Value.Roster.Value)
		if i, ok := index[entry.Value.TeamKey]; ok {
			teams[i].Roster = roster
			continue
		}
		item := mapTeam(leagueKey, entry.Value)
		item.Roster = roster
		teams = append(teams, item)
	}
	return teams, nil
}

func (a *API) FetchPlayer(ctx context.Context, playerKey string, week int) (player.Player, error) {
	path := "/player/" + url.PathEscape(playerKey) + "/stats;type=season"
	if week > 0 {
		path = "/player/" + url.PathEscape(playerKey) + "/stats;type=week;week=" + strconv.Itoa(week)
	}

	var out envelope[playerContent]
	if err := a.http.GetJSON(ctx, providerhttp.Request{Path: path, Query: jsonFormat}, &out); err != nil {
		return player.Player{}, fmt.Errorf("fetch yahoo stats player=%s week=%d: %w", playerKey, week, err)
	}
	return mapPlayer(out.FantasyContent.Player.Value), nil
}

func (a *API) VerifyAuth(ctx context.Context) error {
	return a.http.GetJSON(ctx, providerhttp.Request{Path: "/users;use_login=1", Query: jsonFormat}, nil)
}
