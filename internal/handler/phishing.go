package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/models"
)

func (h *Handler) PhishingCheckHandler(rw http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "application/json" {
		h.writeError(rw, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	var req models.PhishingCheckRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.writeError(rw, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Message == "" {
		h.writeError(rw, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	verdict, findings, err := h.phishingEngine.Evaluate(r.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDependencyUnavailable):
			h.writeError(rw, http.StatusServiceUnavailable, "Phishing detector not available")
		case errors.Is(err, models.ErrConfiguration):
			h.writeError(rw, http.StatusInternalServerError, "API key not configured")
		default:
			h.logger.Error("Phishing check failed", zap.Error(err))
			h.writeError(rw, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	h.writeJSON(rw, http.StatusOK, models.PhishingCheckResponse{
		Result:     verdict,
		URLResults: findings,
	})
}
