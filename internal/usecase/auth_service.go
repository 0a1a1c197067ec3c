package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-sync/internal/domain/credential"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	idgen "github.com/riskibarqy/fantasy-sync/internal/platform/id"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
)

// OAuthToken is the result of an authorization code exchange.
type OAuthToken struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	TokenType    string    `json:"tokenType,omitempty"`
	ExpiresIn    int64     `json:"expiresIn,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// OAuthExchanger builds authorize URLs and redeems codes. Both calls must fail
// with ErrUnsupported, without network I/O, for providers that do not support
// OAuth.
type OAuthExchanger interface {
	BuildAuthorizationURL(p provider.ID, clientID, redirectURI, state string) (string, error)
	ExchangeCodeForToken(ctx context.Context, p provider.ID, code, clientID, clientSecret, redirectURI string) (OAuthToken, error)
}

// OAuthURL is an authorize URL with the state it was built with.
type OAuthURL struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// ExchangeInput is a code redemption request. UserID is optional; when set,
// the resulting token is stored for scheduled syncs.
type ExchangeInput struct {
	UserID       string
	Provider     provider.ID
	Code         string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// AuthValidation reports whether credentials work against the provider.
type AuthValidation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type AuthService struct {
	exchanger   OAuthExchanger
	factories   ProviderAPIFactories
	credentials credential.Repository
	ids         idgen.Generator
	clock       clockwork.Clock
	logger      *logging.Logger
}

func NewAuthService(
	exchanger OAuthExchanger,
	factories ProviderAPIFactories,
	credentials credential.Repository,
	ids idgen.Generator,
	clock clockwork.Clock,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewRandomGenerator()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &AuthService{
		exchanger:   exchanger,
		factories:   factories,
		credentials: credentials,
		ids:         ids,
		clock:       clock,
		logger:      logger,
	}
}

// GenerateOAuthURL builds the provider's authorize URL. An empty state is
// replaced with a random one, which is returned alongside the URL.
func (s *AuthService) GenerateOAuthURL(p provider.ID, clientID, redirectURI, state string) (OAuthURL, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(redirectURI) == "" {
		return OAuthURL{}, fmt.Errorf("%w: client id and redirect uri are required", ErrInvalidInput)
	}

	if state == "" {
		generated, err := s.ids.NewID()
		if err != nil {
			return OAuthURL{}, fmt.Errorf("generate oauth state: %w", err)
		}
		state = generated
	}

	url, err := s.exchanger.BuildAuthorizationURL(p, clientID, redirectURI, state)
	if err != nil {
		return OAuthURL{}, err
	}
	return OAuthURL{URL: url, State: state}, nil
}

func (s *AuthService) ExchangeCodeForToken(ctx context.Context, in ExchangeInput) (OAuthToken, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ExchangeCodeForToken", providerAttr(string(in.Provider)))
	defer span.End()

	if strings.TrimSpace(in.Code) == "" {
		return OAuthToken{}, fmt.Errorf("%w: authorization code is required", ErrInvalidInput)
	}

	token, err := s.exchanger.ExchangeCodeForToken(ctx, in.Provider, in.Code, in.ClientID, in.ClientSecret, in.RedirectURI)
	if err != nil {
		s.logger.WarnContext(ctx, "oauth code exchange failed", "provider", string(in.Provider), "error", err)
		return OAuthToken{}, err
	}

	if in.UserID != "" && s.credentials != nil {
		now := s.clock.Now()
		expiresAt := token.Expiry
		if expiresAt.IsZero() && token.ExpiresIn > 0 {
			expiresAt = now.Add(time.Duration(token.ExpiresIn) * time.Second)
		}
		if err := s.credentials.Upsert(ctx, credential.Credential{
			UserID:       in.UserID,
			Provider:     in.Provider,
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			ExpiresAt:    expiresAt,
			UpdatedAt:    now,
		}); err != nil {
			return OAuthToken{}, fmt.Errorf("store %s credential for user=%s: %w", in.Provider, in.UserID, err)
		}
	}

	return token, nil
}

// ValidateProviderAuth checks that the credential kind matches the provider's
// auth style and then makes one authenticated call. Providers without auth
// are always valid.
func (s *AuthService) ValidateProviderAuth(ctx context.Context, p provider.ID, creds Credentials) AuthValidation {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ValidateProviderAuth", providerAttr(string(p)))
	defer span.End()

	info, ok := provider.Lookup(p)
	if !ok {
		return AuthValidation{Error: fmt.Sprintf("unknown provider %q", p)}
	}
	if info.AuthStyle == provider.AuthNone {
		return AuthValidation{Valid: true}
	}
	if err := validateCredentials(info, creds); err != nil {
		return AuthValidation{Error: err.Error()}
	}

	factory, ok := s.factories[p]
	if !ok || factory == nil {
		return AuthValidation{Error: fmt.Sprintf("%s is not configured", info.DisplayName)}
	}
	api, err := factory(creds)
	if err != nil {
		return AuthValidation{Error: err.Error()}
	}

	if err := api.VerifyAuth(ctx); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return AuthValidation{Error: "token expired or invalid"}
		}
		s.logger.WarnContext(ctx, "provider auth check failed", "provider", string(p), "error", err)
		return AuthValidation{Error: err.Error()}
	}
	return AuthValidation{Valid: true}
}
