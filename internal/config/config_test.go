package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store by default, got %q", cfg.StoreDriver)
	}
	if cfg.ProviderFallbackMode != FallbackLenient {
		t.Fatalf("expected lenient fallback by default, got %q", cfg.ProviderFallbackMode)
	}
	if cfg.ProviderMinInterval != time.Second || cfg.ProviderMaxRetries != 1 {
		t.Fatalf("unexpected provider transport defaults: interval=%s retries=%d", cfg.ProviderMinInterval, cfg.ProviderMaxRetries)
	}
	if cfg.CacheTTLLeagues != 5*time.Minute || cfg.CacheTTLTeams != 2*time.Minute ||
		cfg.CacheTTLPlayers != time.Minute || cfg.CacheTTLLive != 30*time.Second {
		t.Fatalf("unexpected cache ttl defaults: %+v", cfg)
	}
	if cfg.SyncWorkers != 4 || cfg.SyncSchedule == "" {
		t.Fatalf("unexpected sync defaults: workers=%d schedule=%q", cfg.SyncWorkers, cfg.SyncSchedule)
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("pyroscope app name should default to service name")
	}
}

func TestLoad_RejectsInvalidEnums(t *testing.T) {
	cases := map[string]string{
		"STORE_DRIVER":           "sqlite",
		"PROVIDER_FALLBACK_MODE": "maybe",
		"SYNC_SCHEDULE":          "every tuesday",
		"PROVIDER_MAX_RETRIES":   "-1",
		"SYNC_WORKERS":           "0",
		"CACHE_TTL_TEAMS":        "0s",
		"PROVIDER_MIN_INTERVAL":  "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_ProviderBaseURLOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SLEEPER_BASE_URL", "http://localhost:9000/")
	t.Setenv("ESPN_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got := cfg.ProviderBaseURLs[provider.Sleeper]; got != "http://localhost:9000" {
		t.Fatalf("unexpected sleeper override %q", got)
	}
	if _, ok := cfg.ProviderBaseURLs[provider.ESPN]; ok {
		t.Fatalf("empty override must not be recorded")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestConfig_OAuthClient(t *testing.T) {
	cfg := Config{YahooClientID: "y-id", YahooClientSecret: "y-secret", CBSClientID: "c-id"}

	if id, secret := cfg.OAuthClient(provider.Yahoo); id != "y-id" || secret != "y-secret" {
		t.Fatalf("unexpected yahoo client %q %q", id, secret)
	}
	if id, _ := cfg.OAuthClient(provider.CBS); id != "c-id" {
		t.Fatalf("unexpected cbs client %q", id)
	}
	if id, _ := cfg.OAuthClient(provider.Sleeper); id != "" {
		t.Fatalf("sleeper has no oauth client")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FANTASY_SYNC_DOTENV_PROBE=from-file\nSYNC_WORKERS=9\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("FANTASY_SYNC_DOTENV_PROBE", "")
	os.Unsetenv("FANTASY_SYNC_DOTENV_PROBE")
	t.Setenv("SYNC_WORKERS", "2")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("FANTASY_SYNC_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("SYNC_WORKERS"); got != "2" {
		t.Fatalf("existing variables must win, got %q", got)
	}
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	t.Run("prod", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}
