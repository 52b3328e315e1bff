package config

import (
	"fmt"
	"log"
	"os"
	"time"
)

type Config struct {
	HTTPAddr          string
	QuoteAPIURL       string
	DatabaseURL       string
	CORSAllowOrigin   string
	HTTPClientTimeout time.Duration
	LogLevel          string
	OpenAIBaseURL     string
	OpenAIAPIKey      string
	OpenAIModel       string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	timeout, err := envDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		HTTPAddr:          env("HTTP_ADDR", ":8080"),
		QuoteAPIURL:       os.Getenv("QUOTE_API_URL"),
		DatabaseURL:       env("DATABASE_URL", ""),
		CORSAllowOrigin:   env("CORS_ALLOW_ORIGIN", "*"),
		HTTPClientTimeout: timeout,
		LogLevel:          env("LOG_LEVEL", "info"),
		OpenAIBaseURL:     env("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:      env("OPENAI_API_KEY", ""),
		OpenAIModel:       env("OPENAI_MODEL", "gpt-4o-mini"),
	}
	if cfg.QuoteAPIURL == "" {
		return Config{}, fmt.Errorf("missing env QUOTE_API_URL")
	}
	return cfg, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", k, v)
	}
	return d, nil
}
