package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Port int    `envconfig:"PORT" default:"3000"`
	Host string `envconfig:"HOST" default:"localhost"`

	// RenderExternalURL is set by the hosting platform; when present the
	// server binds on all interfaces.
	RenderExternalURL string `envconfig:"RENDER_EXTERNAL_URL"`

	APIBaseURL string `envconfig:"API_BASE_URL" default:"https://api-ugi2pflmha-ew.a.run.app"`
	APIKey     string `envconfig:"API_KEY"`

	CityPath    string `envconfig:"UPSTREAM_CITY_PATH" default:"/cities/{cityId}/insights"`
	WeatherPath string `envconfig:"UPSTREAM_WEATHER_PATH" default:"/weather-predictions?cityId={cityId}"`
	HealthPath  string `envconfig:"UPSTREAM_HEALTH_PATH" default:"/cities"`

	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	MaxRetries    int           `envconfig:"UPSTREAM_MAX_RETRIES" default:"2"`
	RetryInitial  time.Duration `envconfig:"UPSTREAM_RETRY_INITIAL" default:"200ms"`
	RetryMax      time.Duration `envconfig:"UPSTREAM_RETRY_MAX" default:"2s"`
	ProbeInterval time.Duration `envconfig:"UPSTREAM_PROBE_INTERVAL" default:"5m"` // 0 disables the probe

	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins     string        `envconfig:"CORS_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no .env file loaded")
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL: %q", c.APIBaseURL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid UPSTREAM_MAX_RETRIES: %d", c.MaxRetries)
	}
	if c.RetryInitial <= 0 {
		return fmt.Errorf("invalid UPSTREAM_RETRY_INITIAL: %s", c.RetryInitial)
	}
	if c.ProbeInterval < 0 {
		return fmt.Errorf("invalid UPSTREAM_PROBE_INTERVAL: %s", c.ProbeInterval)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// ListenAddr returns the host:port the server binds to.
func (c *AppConfig) ListenAddr() string {
	host := c.Host
	if c.RenderExternalURL != "" {
		host = "0.0.0.0"
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Port))
}
