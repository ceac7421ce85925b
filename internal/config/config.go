package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const envDev = "dev"

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"dev"`
	Port            string        `env:"PORT" envDefault:"8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"./dev.db"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	SeedDemo        bool          `env:"SEED_DEMO" envDefault:"false"`
	GenAIAPIKey     string        `env:"GENAI_API_KEY"`
	GenAIModel      string        `env:"GENAI_MODEL" envDefault:"gemini-2.0-flash"`
	ChatMaxChars    int           `env:"CHAT_MAX_CHARS" envDefault:"4000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the local .env file, if any, then parses the environment.
func Load() (Config, error) {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the application runs in the development environment.
func (c Config) IsDev() bool {
	return c.AppEnv == envDev
}

// ChatEnabled reports whether a generative model key is configured.
func (c Config) ChatEnabled() bool {
	return c.GenAIAPIKey != ""
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
