package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-sync/internal/usecase"
)

func (h *Handler) GetOAuthURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOAuthURL")
	defer span.End()

	p, err := providerFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	clientID := strings.TrimSpace(query.Get("client_id"))
	if clientID == "" {
		clientID, _ = h.oauthClients(p)
	}
	redirectURI := strings.TrimSpace(query.Get("redirect_uri"))
	if redirectURI == "" {
		redirectURI = h.redirectURL
	}

	out, err := h.authService.GenerateOAuthURL(p, clientID, redirectURI, strings.TrimSpace(query.Get("state")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// ExchangeOAuthCode redeems an authorization code. Client credentials and the
// redirect URI fall back to the configured OAuth app when omitted.
func (h *Handler) ExchangeOAuthCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExchangeOAuthCode")
	defer span.End()

	p, err := providerFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req exchangeCodeRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	clientID, clientSecret := req.ClientID, req.ClientSecret
	if clientID == "" && clientSecret == "" {
		clientID, clientSecret = h.oauthClients(p)
	}
	redirectURI := req.RedirectURI
	if redirectURI == "" {
		redirectURI = h.redirectURL
	}

	token, err := h.authService.ExchangeCodeForToken(ctx, usecase.ExchangeInput{
		UserID:       strings.TrimSpace(req.UserID),
		Provider:     p,
		Code:         req.Code,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "exchange oauth code failed", "provider", string(p), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, token)
}
