package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dkraev/safecheck/internal/blacklist"
	"github.com/dkraev/safecheck/internal/config"
	"github.com/dkraev/safecheck/internal/handler"
	"github.com/dkraev/safecheck/internal/history"
	"github.com/dkraev/safecheck/internal/imagedetect"
	"github.com/dkraev/safecheck/internal/middleware"
	"github.com/dkraev/safecheck/internal/phishing"
	"github.com/dkraev/safecheck/internal/safebrowsing"
	"github.com/dkraev/safecheck/internal/urlcheck"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	sugar.Infow("Starting safecheck service")

	cfg, err := config.ParseFlags()
	if err != nil {
		sugar.Fatalw("Configuration error",
			"error", err.Error())
	}

	sugar.Infow("Configuration loaded",
		"server_address", cfg.ServerAddress,
		"database_configured", cfg.DatabaseDSN != "",
		"api_key_configured", cfg.SafeBrowsingKey != "",
	)

	var store history.Store
	if cfg.DatabaseDSN != "" {
		pgStore, err := history.NewPostgres(cfg.DatabaseDSN, logger)
		if err != nil {
			sugar.Fatalw("Failed to initialize history store", "error", err.Error())
		}
		store = pgStore
	} else {
		logger.Info("No database DSN configured, using in-memory history")
		store = history.NewMemory()
	}
	defer store.Close()

	textModel := phishing.NewTextModel(cfg.TextModelPath)
	if err := textModel.Load(); err != nil {
		logger.Error("Phishing text model not available", zap.Error(err))
	}

	detector := imagedetect.NewDetector(cfg.ImageModelPath)
	if err := detector.Load(); err != nil {
		logger.Error("AI image detector not available", zap.Error(err))
	}

	bl := blacklist.NewMatcher(nil)
	reputation := safebrowsing.NewClient(cfg.SafeBrowsingKey)
	urlEngine := urlcheck.NewEngine(bl, reputation, store, logger)

	// Sub-verdicts for URLs embedded in messages are displayed, not persisted.
	phishingEngine := phishing.NewEngine(textModel, urlcheck.NewEngine(bl, reputation, nil, logger), logger)

	auth := middleware.NewAuthMiddleware(cfg.AuthSecret, logger)

	h := handler.NewHandler(urlEngine, phishingEngine, detector, store, auth, cfg.StaticDir, logger)
	r := h.SetupRouter()

	sugar.Infow("Server starting",
		"address", cfg.ServerAddress,
	)

	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		sugar.Fatalw(err.Error(), "event", "start server")
	}
}
