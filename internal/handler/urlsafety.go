package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/middleware"
	"github.com/dkraev/safecheck/internal/models"
)

func (h *Handler) URLCheckHandler(rw http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "application/json" {
		h.writeError(rw, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	var req models.URLCheckRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.writeError(rw, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.URL == "" {
		h.writeError(rw, http.StatusBadRequest, "URL cannot be empty")
		return
	}

	ctx := r.Context()
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok || userID == 0 {
		http.Error(rw, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	verdict, err := h.urlEngine.CheckAndRecord(ctx, req.URL, userID)
	if err != nil {
		if errors.Is(err, models.ErrConfiguration) {
			h.writeError(rw, http.StatusInternalServerError, "API key not configured")
			return
		}
		h.logger.Error("URL check failed", zap.String("url", req.URL), zap.Error(err))
		h.writeError(rw, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.writeJSON(rw, http.StatusOK, models.URLCheckResponse{
		URL:    req.URL,
		Result: verdict,
	})
}
