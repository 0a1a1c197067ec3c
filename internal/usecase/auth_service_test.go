package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-sync/internal/domain/credential"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/infrastructure/repository/memory"
	credentialmock "github.com/riskibarqy/fantasy-sync/internal/mocks/domain/credential"
	usecasemock "github.com/riskibarqy/fantasy-sync/internal/mocks/usecase"
	idgen "github.com/riskibarqy/fantasy-sync/internal/platform/id"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_GenerateOAuthURL(t *testing.T) {
	t.Parallel()

	exchanger := usecasemock.NewOAuthExchanger(t)
	exchanger.On("BuildAuthorizationURL", provider.Yahoo, "client", "https://app/cb", "generated-state").
		Return("https://api.login.yahoo.com/oauth2/request_auth?state=generated-state", nil).Once()
	exchanger.On("BuildAuthorizationURL", provider.ESPN, "client", "https://app/cb", "given").
		Return("", fmt.Errorf("%w: espn does not support oauth", usecase.ErrUnsupported)).Once()

	service := usecase.NewAuthService(exchanger, nil, nil, idgen.Static("generated-state"), nil, logging.NewNop())

	got, err := service.GenerateOAuthURL(provider.Yahoo, "client", "https://app/cb", "")
	require.NoError(t, err)
	require.Equal(t, "generated-state", got.State)

	_, err = service.GenerateOAuthURL(provider.ESPN, "client", "https://app/cb", "given")
	require.ErrorIs(t, err, usecase.ErrUnsupported)

	_, err = service.GenerateOAuthURL(provider.Yahoo, "", "https://app/cb", "")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestAuthService_ExchangeCodeStoresCredential(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	exchanger := usecasemock.NewOAuthExchanger(t)
	exchanger.On("ExchangeCodeForToken", mock.Anything, provider.CBS, "code-1", "client", "secret", "https://app/cb").
		Return(usecase.OAuthToken{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 3600}, nil).Once()

	creds := memory.NewCredentialRepository(nil)
	service := usecase.NewAuthService(exchanger, nil, creds, nil, clockwork.NewFakeClockAt(now), logging.NewNop())

	token, err := service.ExchangeCodeForToken(ctx, usecase.ExchangeInput{
		UserID:       "u1",
		Provider:     provider.CBS,
		Code:         "code-1",
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "https://app/cb",
	})
	require.NoError(t, err)
	require.Equal(t, "at", token.AccessToken)

	stored, err := creds.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "rt", stored[0].RefreshToken)
	require.Equal(t, now.Add(time.Hour), stored[0].ExpiresAt)
}

func TestAuthService_ExchangeCodeFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	exchanger := usecasemock.NewOAuthExchanger(t)
	exchanger.On("ExchangeCodeForToken", mock.Anything, provider.Yahoo, "expired", "client", "secret", "https://app/cb").
		Return(usecase.OAuthToken{}, fmt.Errorf("%w: status=400", usecase.ErrTokenExchange)).Once()
	exchanger.On("ExchangeCodeForToken", mock.Anything, provider.Yahoo, "good", "client", "secret", "https://app/cb").
		Return(usecase.OAuthToken{AccessToken: "at"}, nil).Once()

	creds := credentialmock.NewRepository(t)
	creds.On("Upsert", mock.Anything, mock.MatchedBy(func(c credential.Credential) bool { return c.UserID == "u1" })).
		Return(errors.New("connection reset")).Once()

	service := usecase.NewAuthService(exchanger, nil, creds, nil, nil, logging.NewNop())
	in := usecase.ExchangeInput{UserID: "u1", Provider: provider.Yahoo, ClientID: "client", ClientSecret: "secret", RedirectURI: "https://app/cb"}

	_, err := service.ExchangeCodeForToken(ctx, in)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	in.Code = "expired"
	_, err = service.ExchangeCodeForToken(ctx, in)
	require.ErrorIs(t, err, usecase.ErrTokenExchange)

	in.Code = "good"
	_, err = service.ExchangeCodeForToken(ctx, in)
	require.ErrorContains(t, err, "connection reset")
}

func TestAuthService_ValidateProviderAuth(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	yahooAPI := usecasemock.NewProviderAPI(t)
	yahooAPI.On("VerifyAuth", mock.Anything).Return(fmt.Errorf("%w: yahoo responded 401", usecase.ErrUnauthorized)).Once()
	espnAPI := usecasemock.NewProviderAPI(t)
	espnAPI.On("VerifyAuth", mock.Anything).Return(nil).Once()

	service := usecase.NewAuthService(nil, usecase.ProviderAPIFactories{
		provider.Yahoo: factoryFor(yahooAPI),
		provider.ESPN:  factoryFor(espnAPI),
	}, nil, nil, nil, logging.NewNop())

	cases := []struct {
		name      string
		provider  provider.ID
		creds     usecase.Credentials
		wantValid bool
		wantError string
	}{
		{name: "sleeper needs nothing", provider: provider.Sleeper, wantValid: true},
		{name: "expired yahoo token", provider: provider.Yahoo, creds: usecase.Credentials{AccessToken: "stale"}, wantError: "token expired or invalid"},
		{name: "espn cookie", provider: provider.ESPN, creds: usecase.Credentials{Cookie: "SWID={A}"}, wantValid: true},
		{name: "espn without cookie", provider: provider.ESPN, creds: usecase.Credentials{AccessToken: "x"}, wantError: "requires a cookie"},
		{name: "cbs not configured", provider: provider.CBS, creds: usecase.Credentials{AccessToken: "x"}, wantError: "is not configured"},
		{name: "unknown provider", provider: "myfantasyleague", wantError: "unknown provider"},
	}
	for _, tc := range cases {
		got := service.ValidateProviderAuth(ctx, tc.provider, tc.creds)
		if got.Valid != tc.wantValid {
			t.Fatalf("%s: valid=%v want %v (%s)", tc.name, got.Valid, tc.wantValid, got.Error)
		}
		if tc.wantError != "" {
			require.Contains(t, got.Error, tc.wantError, tc.name)
		}
	}
}
