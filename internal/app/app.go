package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-sync/external/cbs"
	"github.com/riskibarqy/fantasy-sync/external/espn"
	"github.com/riskibarqy/fantasy-sync/external/providerhttp"
	"github.com/riskibarqy/fantasy-sync/external/sleeper"
	"github.com/riskibarqy/fantasy-sync/external/yahoo"
	"github.com/riskibarqy/fantasy-sync/internal/config"
	"github.com/riskibarqy/fantasy-sync/internal/domain/credential"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/infrastructure/oauth"
	"github.com/riskibarqy/fantasy-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-sync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-sync/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/fantasy-sync/internal/platform/id"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-sync/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
)

// App holds the services shared by the api and the syncer.
type App struct {
	Auth    *usecase.AuthService
	Sync    *usecase.BatchSyncService
	Metrics *metrics.Metrics

	closeStore func() error
}

type stores struct {
	repos       usecase.Repositories
	credentials credential.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	st, closeStore, err := newStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	clock := clockwork.NewRealClock()
	factories := providerFactories(cfg, logger, m)
	clientCfg := usecase.ClientConfig{
		FallbackMode: usecase.FallbackMode(cfg.ProviderFallbackMode),
		CacheTTLs: usecase.CacheTTLs{
			Leagues: cfg.CacheTTLLeagues,
			Teams:   cfg.CacheTTLTeams,
			Players: cfg.CacheTTLPlayers,
			Live:    cfg.CacheTTLLive,
		},
		Clock:   clock,
		Metrics: m,
	}
	newManager := func() *usecase.ProviderManager {
		return usecase.NewProviderManager(factories, st.repos, clientCfg, logger)
	}

	return &App{
		Auth: usecase.NewAuthService(
			oauth.NewExchanger(logger, oauth.WithTimeout(cfg.ProviderRequestTimeout)),
			factories,
			st.credentials,
			idgen.NewRandomGenerator(),
			clock,
			logger,
		),
		Sync:       usecase.NewBatchSyncService(st.credentials, newManager, cfg.SyncWorkers, clock, logger),
		Metrics:    m,
		closeStore: closeStore,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

func NewHTTPServer(cfg config.Config, application *App, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if application == nil {
		return nil, fmt.Errorf("app cannot be nil")
	}

	handler := httpapi.NewHandler(application.Auth, application.Sync, cfg.OAuthClient, cfg.OAuthRedirectURL, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, application.Metrics.Handler())

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func newStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (stores, func() error, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return stores{}, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return stores{}, nil, err
		}
		logger.Info("store ready", "driver", config.StorePostgres, "db_name", dbNameFromURL(cfg.DBURL))

		return stores{
			repos: usecase.Repositories{
				Leagues: postgres.NewLeagueRepository(db),
				Teams:   postgres.NewTeamRepository(db),
				Players: postgres.NewPlayerRepository(db),
				Rosters: postgres.NewRosterRepository(db),
			},
			credentials: postgres.NewCredentialRepository(db),
		}, db.Close, nil
	default:
		logger.Info("store ready", "driver", config.StoreMemory)

		return stores{
			repos: usecase.Repositories{
				Leagues: memory.NewLeagueRepository(nil),
				Teams:   memory.NewTeamRepository(nil),
				Players: memory.NewPlayerRepository(nil),
				Rosters: memory.NewRosterRepository(),
			},
			credentials: memory.NewCredentialRepository(nil),
		}, func() error { return nil }, nil
	}
}

// providerFactories builds one factory per provider. Every credential gets
// its own transport, and with it its own rate limiter and breaker.
func providerFactories(cfg config.Config, logger *logging.Logger, m *metrics.Metrics) usecase.ProviderAPIFactories {
	transport := func(p provider.ID) providerhttp.Config {
		return providerhttp.Config{
			Provider:    p,
			BaseURL:     cfg.ProviderBaseURLs[p],
			Timeout:     cfg.ProviderRequestTimeout,
			MaxRetries:  cfg.ProviderMaxRetries,
			MinInterval: cfg.ProviderMinInterval,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ProviderCircuitEnabled,
				FailureThreshold: cfg.ProviderCircuitFailureCount,
				OpenTimeout:      cfg.ProviderCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ProviderCircuitHalfOpenMaxReq,
			},
			Logger:  logger,
			Metrics: m,
		}
	}

	return usecase.ProviderAPIFactories{
		provider.Sleeper: sleeper.NewFactory(sleeper.Config{Transport: transport(provider.Sleeper), Season: cfg.ProviderSeason}),
		provider.Yahoo:   yahoo.NewFactory(yahoo.Config{Transport: transport(provider.Yahoo), Season: cfg.ProviderSeason}),
		provider.ESPN:    espn.NewFactory(espn.Config{Transport: transport(provider.ESPN), Season: cfg.ProviderSeason}),
		provider.CBS:     cbs.NewFactory(cbs.Config{Transport: transport(provider.CBS), Season: cfg.ProviderSeason}),
	}
}
