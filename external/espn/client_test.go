package espn

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

const testCookie = "espn_s2=AEBsecret%2Bvalue; SWID={ABC-123}"

const settingsFixture = `{"id":555,"seasonId":2025,"status":{"isActive":true,"currentMatchupPeriod":4},
"settings":{"name":"Family League","size":8,
	"rosterSettings":{"lineupSlotCounts":{"0":1,"2":2,"4":2,"20":6}},
	"scoringSettings":{"scoringItems":[{"statId":3,"points":0.04},{"statId":53,"points":0.5}]},
	"scheduleSettings":{"matchupPeriodCount":14,"playoffTeamCount":4}}}`

const teamsFixture = `{"id":555,"seasonId":2025,
"members":[{"id":"{OWNER-1}","displayName":"dad"},{"id":"{OWNER-2}","firstName":"Aunt","lastName":"May"}],
"teams":[
	{"id":1,"location":"Big","nickname":"Dogs","abbrev":"BIG","primaryOwner":"{OWNER-1}",
	 "record":{"overall":{"wins":3,"losses":1,"ties":0,"pointsFor":480.4}},
	 "roster":{"entries":[
		{"playerId":3139477,"lineupSlotId":0,"acquisitionType":"DRAFT","playerPoolEntry":{"player":{"id":3139477,"fullName":"Patrick Mahomes","defaultPositionId":1,"proTeamId":12,"injuryStatus":"ACTIVE"}}},
		{"playerId":4241389,"lineupSlotId":21,"acquisitionType":"ADD","playerPoolEntry":{"player":{"id":4241389,"fullName":"Hurt Receiver","defaultPositionId":3,"proTeamId":9,"injuryStatus":"INJURY_RESERVE"}}},
		{"playerId":15847,"lineupSlotId":20,"playerPoolEntry":{"player":{"id":15847,"fullName":"Travis Kelce","defaultPositionId":4,"proTeamId":12}}}
	 ]}},
	{"id":2,"name":"Web Slingers","primaryOwner":"{OWNER-2}","record":{"overall":{"wins":0,"losses":0}}}
]}`

const fanFixture = `{"id":"{ABC-123}","preferences":[
	{"typeId":9,"metaData":{"entry":{"entryId":1,"gameId":1,"seasonId":2025,"abbrev":"BIG","groups":[{"groupId":555,"groupName":"Family League","groupSize":8}]}}},
	{"typeId":9,"metaData":{"entry":{"entryId":2,"gameId":2,"seasonId":2025,"groups":[{"groupId":777,"groupName":"Baseball"}]}}},
	{"typeId":9,"metaData":{"entry":{"entryId":3,"gameId":1,"seasonId":2025,"groups":[{"groupId":555,"groupName":"Family League"}]}}}
]}`

const playersFixture = `{"players":[{"player":{"id":3139477,"fullName":"Patrick Mahomes","defaultPositionId":1,"proTeamId":12,"stats":[
	{"scoringPeriodId":0,"seasonId":2025,"statSourceId":0,"statSplitTypeId":0,"appliedTotal":88.5,"stats":{"3":1200}},
	{"scoringPeriodId":3,"seasonId":2025,"statSourceId":0,"statSplitTypeId":1,"appliedTotal":24.5,"stats":{"3":301}},
	{"scoringPeriodId":3,"seasonId":2025,"statSourceId":1,"statSplitTypeId":1,"appliedTotal":20.1,"stats":{"3":280}}
]}}]}`

func newFakeESPN(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Cookie"), "SWID={ABC-123}") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch path := r.URL.Path; {
		case path == "/apis/v2/fans/{ABC-123}":
			_, _ = w.Write([]byte(fanFixture))
		case path == "/seasons/2025/segments/0/leagues/555":
			views := r.URL.Query()["view"]
			if len(views) == 2 && views[0] == "mTeam" && views[1] == "mRoster" {
				_, _ = w.Write([]byte(teamsFixture))
				return
			}
			_, _ = w.Write([]byte(settingsFixture))
		case path == "/seasons/2025/segments/0/leaguedefaults/3":
			if !strings.Contains(r.Header.Get(fantasyFilterKey), "3139477") {
				_, _ = w.Write([]byte(`{"players":[]}`))
				return
			}
			_, _ = w.Write([]byte(playersFixture))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAPI(t *testing.T, srvURL, cookie string) *API {
	t.Helper()

	api, err := New(Config{
		Transport: providerhttp.Config{
			BaseURL:     srvURL,
			HTTPClient:  http.DefaultClient,
			Timeout:     time.Second,
			MinInterval: time.Millisecond,
		},
		FanBaseURL: srvURL,
		Season:     "2025",
	}, cookie)
	require.NoError(t, err)
	return api
}

func TestNew_RequiresCookie(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}, ""); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAPI_FetchLeagues_FromFanProfile(t *testing.T) {
	t.Parallel()

	srv := newFakeESPN(t)
	leagues, err := newTestAPI(t, srv.URL, testCookie).FetchLeagues(context.Background(), "ignored")
	require.NoError(t, err)
	require.Len(t, leagues, 1, "non-football and duplicate groups must be dropped")
	if leagues[0].ExternalID != "555" || leagues[0].Settings.TeamCount != 8 || leagues[0].Season != "2025" {
		t.Fatalf("unexpected league %+v", leagues[0])
	}
}

func TestAPI_FetchLeague(t *testing.T) {
	t.Parallel()

	srv := newFakeESPN(t)
	got, err := newTestAPI(t, srv.URL, testCookie).FetchLeague(context.Background(), "555")
	require.NoError(t, err)

	if got.Name != "Family League" || got.Settings.ScoringType != league.ScoringHalfPPR || got.Settings.RosterSize != 11 {
		t.Fatalf("unexpected league %+v", got)
	}
	if len(got.Settings.PlayoffWeeks) != 2 || got.Settings.PlayoffWeeks[0] != 15 {
		t.Fatalf("playoff weeks = %v", got.Settings.PlayoffWeeks)
	}
}

func TestAPI_FetchTeams(t *testing.T) {
	t.Parallel()

	srv := newFakeESPN(t)
	teams, err := newTestAPI(t, srv.URL, testCookie).FetchTeams(context.Background(), "555")
	require.NoError(t, err)
	require.Len(t, teams, 2)

	dogs := teams[0]
	if dogs.Name != "Big Dogs" || dogs.OwnerName != "dad" || dogs.AveragePoints != 120.1 {
		t.Fatalf("unexpected team %+v", dogs)
	}
	require.Len(t, dogs.Roster, 3)

	qb := dogs.Roster[0]
	if qb.Position != "QB" || qb.TeamAbbr != "KC" || !qb.Slot.Starter || qb.Slot.LineupSlot != "QB" || qb.Slot.AcquisitionType != "draft" {
		t.Fatalf("unexpected qb %+v slot=%+v", qb, qb.Slot)
	}
	if ir := dogs.Roster[1]; ir.Slot.Starter || ir.Status != player.StatusInjured {
		t.Fatalf("unexpected reserve %+v", ir)
	}
	if bench := dogs.Roster[2]; bench.Slot.Starter || bench.Slot.LineupSlot != "BN" {
		t.Fatalf("unexpected bench %+v", bench.Slot)
	}

	if teams[1].Name != "Web Slingers" || teams[1].OwnerName != "Aunt May" {
		t.Fatalf("unexpected second team %+v", teams[1])
	}
}

func TestAPI_FetchPlayer(t *testing.T) {
	t.Parallel()

	srv := newFakeESPN(t)
	api := newTestAPI(t, srv.URL, testCookie)

	week, err := api.FetchPlayer(context.Background(), "3139477", 3)
	require.NoError(t, err)
	if week.LastGameStats["3"] != 301 || week.LastGameStats["applied_total"] != 24.5 {
		t.Fatalf("projected line must be ignored, got %+v", week.LastGameStats)
	}

	season, err := api.FetchPlayer(context.Background(), "3139477", 0)
	require.NoError(t, err)
	if season.SeasonStats["3"] != 1200 {
		t.Fatalf("unexpected season line %+v", season.SeasonStats)
	}

	if _, err := api.FetchPlayer(context.Background(), "42", 0); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := api.FetchPlayer(context.Background(), "abc", 0); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAPI_StaleCookieIsUnauthorized(t *testing.T) {
	t.Parallel()

	srv := newFakeESPN(t)
	api := newTestAPI(t, srv.URL, "espn_s2=old; SWID={OTHER}")

	if err := api.VerifyAuth(context.Background()); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := api.FetchTeams(context.Background(), "555"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
