package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	ServerAddress   string `env:"SERVER_ADDRESS"`
	DatabaseDSN     string `env:"DATABASE_DSN"`
	SafeBrowsingKey string `env:"SAFE_BROWSING_API_KEY"`
	AuthSecret      string `env:"AUTH_SECRET"`
	TextModelPath   string `env:"TEXT_MODEL_PATH"`
	ImageModelPath  string `env:"IMAGE_MODEL_PATH"`
	StaticDir       string `env:"STATIC_DIR"`
}

func ParseFlags() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	envServerAddress := cfg.ServerAddress
	envDatabaseDSN := cfg.DatabaseDSN
	envSafeBrowsingKey := cfg.SafeBrowsingKey
	envAuthSecret := cfg.AuthSecret
	envTextModelPath := cfg.TextModelPath
	envImageModelPath := cfg.ImageModelPath
	envStaticDir := cfg.StaticDir

	flag.StringVar(&cfg.ServerAddress, "a", "localhost:8080", "Address of the server")
	flag.StringVar(&cfg.DatabaseDSN, "d", "", "PostgreSQL DSN (in-memory history when empty)")
	flag.StringVar(&cfg.SafeBrowsingKey, "k", "", "Google Safe Browsing API key")
	flag.StringVar(&cfg.AuthSecret, "s", "testkey", "Secret for signing user cookies")
	flag.StringVar(&cfg.TextModelPath, "m", "model/phishing_model.json", "Path to the phishing text model")
	flag.StringVar(&cfg.ImageModelPath, "i", "model/ai_detector.gob", "Path to the AI image detector weights")
	flag.StringVar(&cfg.StaticDir, "static", "", "Directory with static pages (disabled when empty)")
	flag.Parse()

	if envServerAddress != "" {
		cfg.ServerAddress = envServerAddress
	}
	if envDatabaseDSN != "" {
		cfg.DatabaseDSN = envDatabaseDSN
	}
	if envSafeBrowsingKey != "" {
		cfg.SafeBrowsingKey = envSafeBrowsingKey
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}
	if envTextModelPath != "" {
		cfg.TextModelPath = envTextModelPath
	}
	if envImageModelPath != "" {
		cfg.ImageModelPath = envImageModelPath
	}
	if envStaticDir != "" {
		cfg.StaticDir = envStaticDir
	}

	cfg.applyDefaultValues()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.AuthSecret == "" {
		return fmt.Errorf("auth secret cannot be empty")
	}
	return nil
}

func (c *Config) applyDefaultValues() {
	if c.ServerAddress == "" {
		c.ServerAddress = "localhost:8080"
	}
}
