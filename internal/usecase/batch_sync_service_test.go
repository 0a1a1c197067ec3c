package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-sync/internal/domain/credential"
	"github.com/riskibarqy/fantasy-sync/internal/domain/league"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/domain/team"
	"github.com/riskibarqy/fantasy-sync/internal/infrastructure/repository/memory"
	credentialmock "github.com/riskibarqy/fantasy-sync/internal/mocks/domain/credential"
	usecasemock "github.com/riskibarqy/fantasy-sync/internal/mocks/usecase"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBatchSyncService_SyncAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 10, 12, 6, 0, 0, 0, time.UTC)
	creds := memory.NewCredentialRepository([]credential.Credential{
		{UserID: "alice", Provider: provider.Sleeper},
		{UserID: "bob", Provider: provider.Yahoo, AccessToken: "old", ExpiresAt: now.Add(-time.Hour)},
		{UserID: "carol", Provider: provider.CBS, AccessToken: "live"},
	})

	sleeperAPI := usecasemock.NewProviderAPI(t)
	sleeperAPI.On("FetchLeagues", mock.Anything, "alice").Return([]league.League{sleeperLeague("900")}, nil).Once()
	sleeperAPI.On("FetchLeague", mock.Anything, "900").Return(sleeperLeague("900"), nil).Once()
	sleeperAPI.On("FetchTeams", mock.Anything, "900").Return([]team.Team{teamWithPlayers("900", "1", 1)}, nil).Once()

	stores := newMemoryStores()
	factories := usecase.ProviderAPIFactories{
		provider.Sleeper: factoryFor(sleeperAPI),
		provider.Yahoo:   factoryFor(usecasemock.NewProviderAPI(t)),
	}
	newManager := func() *usecase.ProviderManager {
		return usecase.NewProviderManager(factories, stores.repositories(), usecase.ClientConfig{}, logging.NewNop())
	}

	service := usecase.NewBatchSyncService(creds, newManager, 2, clockwork.NewFakeClockAt(now), logging.NewNop())
	report, err := service.SyncAll(ctx)
	require.NoError(t, err)

	require.Len(t, report.Users, 3)
	require.Equal(t, 1, report.SuccessCount)
	require.Equal(t, 2, report.FailedCount)

	alice, bob, carol := report.Users[0], report.Users[1], report.Users[2]
	require.Equal(t, "alice", alice.UserID)
	require.True(t, alice.Result.Success)
	require.Equal(t, 1, alice.Result.TotalLeagues)

	require.Equal(t, "bob", bob.UserID)
	require.Contains(t, strings.Join(bob.Skipped, ","), "access token expired")
	require.False(t, bob.Result.Success)

	require.Equal(t, "carol", carol.UserID)
	require.Contains(t, strings.Join(carol.Result.Errors, ","), "no usable provider credentials")
	require.Contains(t, strings.Join(carol.Skipped, ","), "provider not configured")

	require.Equal(t, 1, stores.leagues.Len())
}

func TestBatchSyncService_ListUsersFails(t *testing.T) {
	t.Parallel()

	creds := credentialmock.NewRepository(t)
	creds.On("ListUserIDs", mock.Anything).Return(nil, errors.New("db offline")).Once()

	service := usecase.NewBatchSyncService(creds, nil, 0, nil, logging.NewNop())
	_, err := service.SyncAll(context.Background())
	require.ErrorContains(t, err, "db offline")
}

func TestBatchSyncService_NoUsers(t *testing.T) {
	t.Parallel()

	service := usecase.NewBatchSyncService(memory.NewCredentialRepository(nil), nil, 1, nil, logging.NewNop())
	report, err := service.SyncAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Users)
}

func TestBatchSyncService_SyncUserWithCredentials(t *testing.T) {
	t.Parallel()

	sleeperAPI := usecasemock.NewProviderAPI(t)
	sleeperAPI.On("FetchLeagues", mock.Anything, "dave").Return([]league.League{sleeperLeague("901")}, nil).Once()
	sleeperAPI.On("FetchLeague", mock.Anything, "901").Return(sleeperLeague("901"), nil).Once()
	sleeperAPI.On("FetchTeams", mock.Anything, "901").Return([]team.Team{teamWithPlayers("901", "1", 3)}, nil).Once()

	stores := newMemoryStores()
	factories := usecase.ProviderAPIFactories{provider.Sleeper: factoryFor(sleeperAPI)}
	newManager := func() *usecase.ProviderManager {
		return usecase.NewProviderManager(factories, stores.repositories(), usecase.ClientConfig{}, logging.NewNop())
	}
	creds := credentialmock.NewRepository(t)

	service := usecase.NewBatchSyncService(creds, newManager, 1, nil, logging.NewNop())

	_, err := service.SyncUserWithCredentials(context.Background(), "dave", nil)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	_, err = service.SyncUserWithCredentials(context.Background(), " ", map[provider.ID]usecase.Credentials{provider.Sleeper: {}})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	row, err := service.SyncUserWithCredentials(context.Background(), "dave", map[provider.ID]usecase.Credentials{
		provider.Sleeper: {},
		provider.ESPN:    {Cookie: "SWID={A}; espn_s2=b"},
	})
	require.NoError(t, err)
	require.True(t, row.Result.Success)
	require.Equal(t, 3, row.Result.Results[provider.Sleeper][0].SyncedData.Players)
	require.Len(t, row.Skipped, 1)
	require.Contains(t, row.Skipped[0], "provider not configured")
}

func TestBatchSyncService_SyncUserUsesStoredCredentials(t *testing.T) {
	t.Parallel()

	creds := credentialmock.NewRepository(t)
	creds.On("ListByUser", mock.Anything, "erin").Return(nil, errors.New("db offline")).Once()

	service := usecase.NewBatchSyncService(creds, nil, 1, nil, logging.NewNop())

	row, err := service.SyncUser(context.Background(), "erin")
	require.NoError(t, err)
	require.False(t, row.Result.Success)
	require.Contains(t, strings.Join(row.Result.Errors, ","), "load credentials: db offline")

	_, err = service.SyncUser(context.Background(), "")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}
