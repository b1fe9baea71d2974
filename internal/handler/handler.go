package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/history"
	"github.com/dkraev/safecheck/internal/middleware"
	"github.com/dkraev/safecheck/internal/models"
	"github.com/dkraev/safecheck/internal/phishing"
	"github.com/dkraev/safecheck/internal/urlcheck"
)

// ImageClassifier is the adapter contract over the AI-image detector.
type ImageClassifier interface {
	Classify(imageBytes []byte) (*models.ImageResult, error)
}

type Handler struct {
	urlEngine      *urlcheck.Engine
	phishingEngine *phishing.Engine
	detector       ImageClassifier
	store          history.Store
	auth           *middleware.AuthMiddleware
	staticDir      string
	logger         *zap.Logger
}

func NewHandler(
	urlEngine *urlcheck.Engine,
	phishingEngine *phishing.Engine,
	detector ImageClassifier,
	store history.Store,
	auth *middleware.AuthMiddleware,
	staticDir string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		urlEngine:      urlEngine,
		phishingEngine: phishingEngine,
		detector:       detector,
		store:          store,
		auth:           auth,
		staticDir:      staticDir,
		logger:         logger,
	}
}

func (h *Handler) writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(rw http.ResponseWriter, status int, message string) {
	h.writeJSON(rw, status, models.ErrorResponse{Error: message})
}
