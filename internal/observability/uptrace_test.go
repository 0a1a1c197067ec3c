package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fantasy-sync/internal/config"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "fantasy-sync",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartDebugServer_Disabled(t *testing.T) {
	srv, err := StartDebugServer(config.Config{}, nil, logging.NewNop())
	if err != nil || srv != nil {
		t.Fatalf("expected no server when disabled, got %v %v", srv, err)
	}
	if err := StopDebugServer(nil, logging.NewNop(), 0); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}

func TestDebugMux_ServesMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fantasy_sync_up 1\n"))
	})

	rec := httptest.NewRecorder()
	debugMux(metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "fantasy_sync_up 1\n" {
		t.Fatalf("unexpected metrics response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	debugMux(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("metrics should be absent without a handler, got %d", rec.Code)
	}
}
