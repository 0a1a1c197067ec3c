package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-sync/internal/domain/provider"
	"github.com/riskibarqy/fantasy-sync/internal/usecase"
)

func (h *Handler) SyncUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncUser")
	defer span.End()

	userID := r.PathValue("userID")

	var req syncUserRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		row usecase.UserSyncReport
		err error
	)
	if len(req.Credentials) > 0 {
		inline := make(map[provider.ID]usecase.Credentials, len(req.Credentials))
		for name, creds := range req.Credentials {
			p, parseErr := provider.Parse(name)
			if parseErr != nil {
				writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, parseErr))
				return
			}
			inline[p] = creds.toUsecase()
		}
		row, err = h.syncService.SyncUserWithCredentials(ctx, userID, inline)
	} else {
		row, err = h.syncService.SyncUser(ctx, userID)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !row.Result.Success {
		h.logger.WarnContext(ctx, "user sync finished with errors", "user_id", userID, "errors", len(row.Result.Errors))
	}

	writeSuccess(ctx, w, http.StatusOK, syncReportToDTO(row))
}
