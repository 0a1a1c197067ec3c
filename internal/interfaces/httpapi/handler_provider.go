package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
)

func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProviders")
	defer span.End()

	all := provider.All()
	items := make([]providerDTO, 0, len(all))
	for _, info := range all {
		items = append(items, providerToDTO(info))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// ValidateProviderAuth always answers 200; the verdict is in the body.
func (h *Handler) ValidateProviderAuth(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateProviderAuth")
	defer span.End()

	p, err := providerFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req credentialsRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	result := h.authService.ValidateProviderAuth(ctx, p, req.toUsecase())
	if !result.Valid {
		h.logger.InfoContext(ctx, "provider auth invalid", "provider", string(p), "reason", result.Error)
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
