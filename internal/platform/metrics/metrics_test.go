package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRequest("sleeper", "ok")
	m.ObserveCache("sleeper", "leagues", true)
	m.ObserveRateLimitWait("sleeper", 10*time.Millisecond)
	m.ObserveLeagueSync("sleeper", false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`fantasy_sync_provider_requests_total{outcome="ok",provider="sleeper"} 1`,
		`fantasy_sync_cache_lookups_total{provider="sleeper",resource="leagues",result="hit"} 1`,
		`fantasy_sync_league_syncs_total{provider="sleeper",result="failure"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestMetrics_NilIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveRequest("espn", "error")
	m.ObserveCache("espn", "teams", false)
	m.ObserveUserSync(true, time.Second)
}
