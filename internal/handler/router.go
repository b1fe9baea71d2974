package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkraev/safecheck/internal/middleware"
)

func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.GzipMiddleware)
	r.Use(h.auth.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/url-check", h.URLCheckHandler)
		r.Post("/phishing-check", h.PhishingCheckHandler)
		r.Post("/ai-detection", h.AIDetectionHandler)
		r.Get("/user/checks", h.UserChecksHandler)
	})

	r.Get("/ping", h.PingHandler)

	if h.staticDir != "" {
		fs := http.FileServer(http.Dir(h.staticDir))
		r.Handle("/*", fs)
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Not Found", http.StatusNotFound)
		})
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	return r
}
