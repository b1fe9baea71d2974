package handler

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/models"
)

const maxImageBytes = 10 << 20

func (h *Handler) AIDetectionHandler(rw http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		h.writeError(rw, http.StatusBadRequest, "No image file provided")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(rw, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.writeError(rw, http.StatusBadRequest, "No selected file")
		return
	}

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		h.writeError(rw, http.StatusBadRequest, "Failed to read image")
		return
	}

	result, err := h.detector.Classify(imageBytes)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDependencyUnavailable):
			h.writeError(rw, http.StatusServiceUnavailable, "Model not loaded")
		case errors.Is(err, models.ErrInvalidInput):
			h.writeError(rw, http.StatusBadRequest, "Unsupported or corrupt image")
		default:
			h.logger.Error("Image classification failed",
				zap.String("filename", header.Filename),
				zap.Error(err))
			h.writeError(rw, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	h.writeJSON(rw, http.StatusOK, result)
}
