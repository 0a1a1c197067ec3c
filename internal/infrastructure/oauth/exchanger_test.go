package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
	"github.com/stretchr/testify/require"
)

type countingTransport struct {
	calls atomic.Int32
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls.Add(1)
	return nil, errors.New("network must not be used")
}

func TestExchanger_UnsupportedProvidersNeverTouchTheNetwork(t *testing.T) {
	t.Parallel()

	transport := &countingTransport{}
	exchanger := NewExchanger(logging.NewNop(), WithHTTPClient(&http.Client{Transport: transport}))

	for _, p := range []provider.ID{provider.ESPN, provider.Sleeper} {
		if _, err := exchanger.BuildAuthorizationURL(p, "client", "https://app/cb", "s"); !errors.Is(err, usecase.ErrUnsupported) {
			t.Fatalf("%s authorize url: expected ErrUnsupported, got %v", p, err)
		}
		if _, err := exchanger.ExchangeCodeForToken(context.Background(), p, "code", "client", "secret", "https://app/cb"); !errors.Is(err, usecase.ErrUnsupported) {
			t.Fatalf("%s exchange: expected ErrUnsupported, got %v", p, err)
		}
	}
	if transport.calls.Load() != 0 {
		t.Fatalf("unsupported providers made %d network calls", transport.calls.Load())
	}
}

func TestExchanger_BuildAuthorizationURL(t *testing.T) {
	t.Parallel()

	exchanger := NewExchanger(logging.NewNop())
	raw, err := exchanger.BuildAuthorizationURL(provider.Yahoo, "client-1", "https://app/cb", "state-9")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	if parsed.Host != "api.login.yahoo.com" || parsed.Path != "/oauth2/request_auth" {
		t.Fatalf("unexpected authorize endpoint %s", raw)
	}
	query := parsed.Query()
	for key, want := range map[string]string{
		"client_id":     "client-1",
		"redirect_uri":  "https://app/cb",
		"response_type": "code",
		"scope":         "fspt-r",
		"state":         "state-9",
	} {
		if got := query.Get(key); got != want {
			t.Fatalf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestExchanger_ExchangeCodeForToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Form.Get("grant_type") != "authorization_code" || r.Form.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.Form.Get("code") {
		case "good":
			_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","token_type":"bearer","expires_in":3600}`))
		case "empty":
			_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}
	}))
	defer srv.Close()

	exchanger := NewExchanger(logging.NewNop(),
		WithHTTPClient(srv.Client()),
		WithEndpoint(provider.CBS, srv.URL+"/authorize", srv.URL+"/token"),
	)

	token, err := exchanger.ExchangeCodeForToken(context.Background(), provider.CBS, "good", "client", "secret", "https://app/cb")
	require.NoError(t, err)
	if token.AccessToken != "at-1" || token.RefreshToken != "rt-1" || token.ExpiresIn != 3600 || token.Expiry.IsZero() {
		t.Fatalf("unexpected token %+v", token)
	}

	_, err = exchanger.ExchangeCodeForToken(context.Background(), provider.CBS, "expired", "client", "secret", "https://app/cb")
	if !errors.Is(err, usecase.ErrTokenExchange) || !strings.Contains(err.Error(), "status=400") {
		t.Fatalf("expected ErrTokenExchange with status, got %v", err)
	}

	_, err = exchanger.ExchangeCodeForToken(context.Background(), provider.CBS, "empty", "client", "secret", "https://app/cb")
	if !errors.Is(err, usecase.ErrTokenExchange) {
		t.Fatalf("expected ErrTokenExchange for missing access_token, got %v", err)
	}
}

func TestExchanger_RequiresClientID(t *testing.T) {
	t.Parallel()

	_, err := NewExchanger(logging.NewNop()).BuildAuthorizationURL(provider.CBS, " ", "https://app/cb", "s")
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExchanger_TimesOutStalledTokenEndpoint(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	exchanger := NewExchanger(logging.NewNop(),
		WithHTTPClient(srv.Client()),
		WithEndpoint(provider.Yahoo, srv.URL+"/authorize", srv.URL+"/token"),
		WithTimeout(50*time.Millisecond),
	)

	started := time.Now()
	_, err := exchanger.ExchangeCodeForToken(context.Background(), provider.Yahoo, "good", "client", "secret", "https://app/cb")
	if !errors.Is(err, usecase.ErrTokenExchange) || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected ErrTokenExchange timeout, got %v", err)
	}
	if took := time.Since(started); took > 2*time.Second {
		t.Fatalf("exchange took %s, expected it to stop near the timeout", took)
	}
}
