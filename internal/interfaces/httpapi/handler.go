package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
)

const maxBodyBytes = 1 << 20

// OAuthClientLookup returns the configured OAuth app for a provider.
type OAuthClientLookup func(p provider.ID) (clientID, clientSecret string)

type Handler struct {
	authService  *usecase.AuthService
	syncService  *usecase.BatchSyncService
	oauthClients OAuthClientLookup
	redirectURL  string
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	syncService *usecase.BatchSyncService,
	oauthClients OAuthClientLookup,
	redirectURL string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if oauthClients == nil {
		oauthClients = func(provider.ID) (string, string) { return "", "" }
	}

	return &Handler{
		authService:  authService,
		syncService:  syncService,
		oauthClients: oauthClients,
		redirectURL:  redirectURL,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeBody decodes a JSON body into dst. An empty body leaves dst untouched
// when allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func providerFromPath(r *http.Request) (provider.ID, error) {
	p, err := provider.Parse(r.PathValue("provider"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return p, nil
}
