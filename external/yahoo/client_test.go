package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-sync/external/providerhttp"
	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/player"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
	"github.com/stretchr/testify/require"
)

const leaguesFixture = `{"fantasy_content":{"users":{"0":{"user":[{"guid":"G1"},{"games":{"0":{"game":[
	{"game_key":"449","code":"nfl","season":"2025"},
	{"leagues":{"0":{"league":[{"league_key":"449.l.1001","league_id":"1001","name":"Office League","num_teams":10,"season":"2025","is_finished":0}]},"count":1}}
]},"count":1}}]},"count":1}}}`

const settingsFixture = `{"fantasy_content":{"league":[
	{"league_key":"449.l.1001","league_id":"1001","name":"Office League","num_teams":"10","season":"2025","is_finished":1},
	{"settings":[{"playoff_start_week":"15","num_playoff_teams":"4",
		"roster_positions":[{"roster_position":{"position":"QB","count":1}},{"roster_position":{"position":"WR","count":"3"}},{"roster_position":{"position":"BN","count":5}}],
		"stat_modifiers":{"stats":[{"stat":{"stat_id":4,"value":"0.04"}},{"stat":{"stat_id":11,"value":"1"}}]}}]}
]}}`

const standingsFixture = `{"fantasy_content":{"league":[
	{"league_key":"449.l.1001","name":"Office League"},
	{"standings":[{"teams":{"0":{"team":[
		[{"team_key":"449.l.1001.t.1"},{"team_id":"1"},{"name":"Taco Corp"},[],{"managers":[{"manager":{"manager_id":"1","nickname":"Jo","guid":"G1"}}]}],
		{"team_points":{"coverage_type":"season","total":"1204.36"}},
		{"team_standings":{"rank":"1","outcome_totals":{"wins":"9","losses":"4","ties":0},"points_for":"1204.36"}}
	]},"1":{"team":[
		[{"team_key":"449.l.1001.t.2"},{"name":"Bench Mob"}],
		{"team_standings":{"outcome_totals":{"wins":4,"losses":9,"ties":0}}}
	]},"count":2}}]}
]}}`

const rostersFixture = `{"fantasy_content":{"league":[
	{"league_key":"449.l.1001","name":"Office League"},
	{"teams":{"0":{"team":[
		[{"team_key":"449.l.1001.t.1"},{"name":"Taco Corp"}],
		{"roster":{"coverage_type":"date","0":{"players":{
			"0":{"player":[[{"player_key":"449.p.30123"},{"player_id":"30123"},{"name":{"full":"Patrick Mahomes"}},{"editorial_team_abbr":"KC"},{"display_position":"QB"}],{"selected_position":[{"coverage_type":"date"},{"position":"QB"}]}]},
			"1":{"player":[[{"player_key":"449.p.40000"},{"name":{"full":"Hurt Guy"}},{"status":"IR"},{"status_full":"Injured Reserve"},{"injury_note":"Knee"}],{"selected_position":[{"position":"IR"}]}]},
			"count":2}}}}
	]},"count":1}}
]}}`

const playerFixture = `{"fantasy_content":{"player":[
	[{"player_key":"449.p.30123"},{"name":{"full":"Patrick Mahomes"}},{"display_position":"QB"},{"editorial_team_abbr":"KC"}],
	{"player_stats":{"coverage_type":"week","week":"3","stats":[{"stat":{"stat_id":"4","value":"301"}},{"stat":{"stat_id":"5","value":"-"}}]},"player_points":{"total":"24.5"}}
]}}`

func newFakeYahoo(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("format") != "json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		switch path := r.URL.Path; {
		case path == "/users;use_login=1/games;game_keys=nfl/leagues":
			_, _ = w.Write([]byte(leaguesFixture))
		case path == "/users;use_login=1":
			_, _ = w.Write([]byte(`{"fantasy_content":{"users":{"count":0}}}`))
		case strings.HasSuffix(path, ";out=settings"):
			_, _ = w.Write([]byte(settingsFixture))
		case strings.HasSuffix(path, "/standings"):
			_, _ = w.Write([]byte(standingsFixture))
		case strings.HasSuffix(path, "/teams/roster"):
			_, _ = w.Write([]byte(rostersFixture))
		case strings.HasPrefix(path, "/player/449.p.30123/stats;type=week;week=3"):
			_, _ = w.Write([]byte(playerFixture))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAPI(t *testing.T, srvURL, token string) *API {
	t.Helper()

	api, err := New(Config{
		Transport: providerhttp.Config{
			BaseURL:     srvURL,
			HTTPClient:  http.DefaultClient,
			Timeout:     time.Second,
			MinInterval: time.Millisecond,
		},
		Season: "2025",
	}, token)
	require.NoError(t, err)
	return api
}

func TestNew_RequiresToken(t *testing.T) {
	t.Parallel()

	_, err := New(Config{}, "  ")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAPI_FetchLeagues(t *testing.T) {
	t.Parallel()

	srv := newFakeYahoo(t)
	leagues, err := newTestAPI(t, srv.URL, "good-token").FetchLeagues(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, leagues, 1)
	if leagues[0].ExternalID != "449.l.1001" || leagues[0].Settings.TeamCount != 10 || !leagues[0].Active {
		t.Fatalf("unexpected league %+v", leagues[0])
	}
}

func TestAPI_FetchLeague_Settings(t *testing.T) {
	t.Parallel()

	srv := newFakeYahoo(t)
	got, err := newTestAPI(t, srv.URL, "good-token").FetchLeague(context.Background(), "449.l.1001")
	require.NoError(t, err)

	if got.Settings.ScoringType != league.ScoringPPR {
		t.Fatalf("scoring = %s, want ppr", got.Settings.ScoringType)
	}
	if got.Settings.RosterSize != 9 {
		t.Fatalf("roster size = %d, want 9", got.Settings.RosterSize)
	}
	if len(got.Settings.PlayoffWeeks) != 2 || got.Active {
		t.Fatalf("unexpected league %+v", got)
	}
}

func TestAPI_FetchTeams_MergesStandingsAndRosters(t *testing.T) {
	t.Parallel()

	srv := newFakeYahoo(t)
	teams, err := newTestAPI(t, srv.URL, "good-token").FetchTeams(context.Background(), "449.l.1001")
	require.NoError(t, err)
	require.Len(t, teams, 2)

	taco := teams[0]
	if taco.Name != "Taco Corp" || taco.OwnerID != "G1" || taco.OwnerName != "Jo" || taco.Record.Wins != 9 {
		t.Fatalf("unexpected team %+v", taco)
	}
	require.Len(t, taco.Roster, 2)
	if !taco.Roster[0].Slot.Starter || taco.Roster[0].TeamAbbr != "KC" || taco.Roster[0].LeagueID != "449.l.1001" {
		t.Fatalf("unexpected starter %+v", taco.Roster[0])
	}
	hurt := taco.Roster[1]
	if hurt.Slot.Starter || hurt.Status != player.StatusInjured || hurt.InjuryNote != "Knee" {
		t.Fatalf("unexpected reserve player %+v", hurt)
	}

	if teams[1].Name != "Bench Mob" || len(teams[1].Roster) != 0 {
		t.Fatalf("unexpected second team %+v", teams[1])
	}
}

func TestAPI_FetchPlayer_Week(t *testing.T) {
	t.Parallel()

	srv := newFakeYahoo(t)
	got, err := newTestAPI(t, srv.URL, "good-token").FetchPlayer(context.Background(), "449.p.30123", 3)
	require.NoError(t, err)
	if got.Name != "Patrick Mahomes" || got.LastGameStats["4"] != 301 || got.LastGameStats["points"] != 24.5 {
		t.Fatalf("unexpected player %+v", got)
	}
	if got.LastGameStats["5"] != 0 {
		t.Fatalf("dash stat should decode as zero, got %v", got.LastGameStats["5"])
	}
}

func TestAPI_ExpiredTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	srv := newFakeYahoo(t)
	api := newTestAPI(t, srv.URL, "stale-token")

	_, err := api.FetchLeagues(context.Background(), "u1")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := api.VerifyAuth(context.Background()); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized from VerifyAuth, got %v", err)
	}
}

func TestAPI_VerifyAuth(t *testing.T) {
	t.Parallel()

	srv := newFakeYahoo(t)
	require.NoError(t, newTestAPI(t, srv.URL, "good-token").VerifyAuth(context.Background()))
}

type countingTransport struct {
	calls int
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

func TestNew_BearerTokenWrapsInjectedTransport(t *testing.T) {
	t.Parallel()

	srv := newFakeYahoo(t)
	base := &countingTransport{next: http.DefaultTransport}
	injected := &http.Client{Transport: base}

	api, err := New(Config{
		Transport: providerhttp.Config{
			BaseURL:     srv.URL,
			HTTPClient:  injected,
			Timeout:     time.Second,
			MinInterval: time.Millisecond,
		},
		Season: "2025",
	}, "good-token")
	require.NoError(t, err)

	require.NoError(t, api.VerifyAuth(context.Background()))
	require.Equal(t, 1, base.calls)
	require.Same(t, base, injected.Transport)
}
