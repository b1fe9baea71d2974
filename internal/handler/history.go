package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/middleware"
)

func (h *Handler) UserChecksHandler(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok || userID == 0 {
		http.Error(rw, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	checks, err := h.store.ListByUser(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to list user checks",
			zap.Int64("userID", userID),
			zap.Error(err))
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(checks) == 0 {
		rw.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(rw, http.StatusOK, checks)
}
