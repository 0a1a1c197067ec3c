package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

const defaultExchangeTimeout = 10 * time.Second

type Option func(*Exchanger)

// WithTimeout bounds each token exchange. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(e *Exchanger) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithEndpoint overrides a provider's registry endpoints, for sandboxes and tests.
func WithEndpoint(p provider.ID, authURL, tokenURL string) Option {
	return func(e *Exchanger) {
		e.endpoints[p] = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(e *Exchanger) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// Exchanger implements usecase.OAuthExchanger on golang.org/x/oauth2 with
// the provider registry's endpoints.
type Exchanger struct {
	httpClient *http.Client
	timeout    time.Duration
	endpoints  map[provider.ID]oauth2.Endpoint
	logger     *logging.Logger
}

var _ usecase.OAuthExchanger = (*Exchanger)(nil)

func NewExchanger(logger *logging.Logger, opts ...Option) *Exchanger {
	if logger == nil {
		logger = logging.Default()
	}
	e := &Exchanger{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		timeout:    defaultExchangeTimeout,
		endpoints:  make(map[provider.ID]oauth2.Endpoint),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exchanger) BuildAuthorizationURL(p provider.ID, clientID, redirectURI, state string) (string, error) {
	cfg, err := e.config(p, clientID, "", redirectURI)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state), nil
}

func (e *Exchanger) ExchangeCodeForToken(ctx context.Context, p provider.ID, code, clientID, clientSecret, redirectURI string) (usecase.OAuthToken, error) {
	cfg, err := e.config(p, clientID, clientSecret, redirectURI)
	if err != nil {
		return usecase.OAuthToken{}, err
	}

	exchangeCtx, cancel := context.WithTimeout(context.WithValue(ctx, oauth2.HTTPClient, e.httpClient), e.timeout)
	defer cancel()

	token, err := cfg.Exchange(exchangeCtx, code)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return usecase.OAuthToken{}, ctxErr
		}
		if errors.Is(exchangeCtx.Err(), context.DeadlineExceeded) {
			return usecase.OAuthToken{}, fmt.Errorf("%w: %s token endpoint timed out after %s",
				usecase.ErrTokenExchange, p, e.timeout)
		}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return usecase.OAuthToken{}, fmt.Errorf("%w: %s token endpoint responded status=%d body=%s",
				usecase.ErrTokenExchange, p, retrieveErr.Response.StatusCode, abbreviate(string(retrieveErr.Body)))
		}
		return usecase.OAuthToken{}, fmt.Errorf("%w: %s: %v", usecase.ErrTokenExchange, p, err)
	}
	if token.AccessToken == "" {
		return usecase.OAuthToken{}, fmt.Errorf("%w: %s response has no access_token", usecase.ErrTokenExchange, p)
	}

	e.logger.InfoContext(ctx, "oauth code exchanged", "provider", string(p), "has_refresh_token", token.RefreshToken != "")
	return usecase.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresIn:    token.ExpiresIn,
		Expiry:       token.Expiry,
	}, nil
}

// config fails with ErrUnsupported before anything touches the network.
func (e *Exchanger) config(p provider.ID, clientID, clientSecret, redirectURI string) (*oauth2.Config, error) {
	info, ok := provider.Lookup(p)
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", usecase.ErrInvalidInput, p)
	}
	if !info.SupportsOAuth {
		return nil, fmt.Errorf("%w: %s does not support oauth", usecase.ErrUnsupported, info.DisplayName)
	}
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("%w: client id is required", usecase.ErrInvalidInput)
	}

	endpoint, ok := e.endpoints[p]
	if !ok {
		endpoint = oauth2.Endpoint{AuthURL: info.AuthorizeURL, TokenURL: info.TokenURL}
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURI,
		Scopes:       info.Scopes,
	}, nil
}

func abbreviate(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= 200 {
		return text
	}
	return text[:200] + "..."
}
