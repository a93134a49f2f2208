package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "pricewatch"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	JWT      JWTConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRICEWATCH_APP_ENV" required:"true"`
	Port         string `envconfig:"PRICEWATCH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PRICEWATCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRICEWATCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the gateway at the external price-tracker backend.
type UpstreamConfig struct {
	BaseURL      string        `envconfig:"PRICEWATCH_UPSTREAM_BASE_URL" required:"true"`
	Timeout      time.Duration `envconfig:"PRICEWATCH_UPSTREAM_TIMEOUT" default:"10s"`
	HistoryLimit int           `envconfig:"PRICEWATCH_UPSTREAM_HISTORY_LIMIT" default:"1000"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("upstream base URL %q is not a valid absolute URL", u.BaseURL)
	}
	if u.HistoryLimit <= 0 {
		return fmt.Errorf("upstream history limit must be positive, got %d", u.HistoryLimit)
	}
	return nil
}

type JWTConfig struct {
	Secret string `envconfig:"PRICEWATCH_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"PRICEWATCH_JWT_ISSUER" required:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PRICEWATCH_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}
