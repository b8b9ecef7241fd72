package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/i474232898/cityinfo-aggregation/internal/cityinfo"
	"github.com/i474232898/cityinfo-aggregation/internal/metrics"
)

const (
	endpointCity    = "city"
	endpointWeather = "weather"
	endpointProbe   = "probe"
)

// UpstreamConfig describes how to reach the upstream city/weather API. Paths
// may contain a {cityId} placeholder and an optional query string.
type UpstreamConfig struct {
	BaseURL     string
	APIKey      string
	CityPath    string
	WeatherPath string
	HealthPath  string
	Timeout     time.Duration
	Backoff     BackoffConfig
}

// UpstreamProvider implements the cityinfo.Provider interface over HTTP.
type UpstreamProvider struct {
	name    string
	cfg     UpstreamConfig
	client  *resty.Client
	city    *gobreaker.CircuitBreaker
	weather *gobreaker.CircuitBreaker
}

func NewUpstreamProvider(cfg UpstreamConfig) *UpstreamProvider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &UpstreamProvider{
		name:    "upstream",
		cfg:     cfg,
		client:  client,
		city:    newBreaker("upstream-city"),
		weather: newBreaker("upstream-weather"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

func (p *UpstreamProvider) Name() string {
	return p.name
}

// FetchCity returns the decoded city payload. A 404 maps to
// cityinfo.ErrCityNotFound. A 2xx body that is not valid JSON decodes to nil
// so normalization applies its defaults.
func (p *UpstreamProvider) FetchCity(ctx context.Context, cityID string) (any, error) {
	resp, err := doRequestWithResilience(ctx, p.client, p.cfg.Backoff, p.city, p.get(p.cfg.CityPath, cityID))
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpointCity, "error").Inc()
		return nil, errors.Wrapf(err, "fetch city %s", cityID)
	}

	if resp.StatusCode() == http.StatusNotFound {
		metrics.UpstreamRequests.WithLabelValues(endpointCity, "not_found").Inc()
		return nil, cityinfo.ErrCityNotFound
	}
	if !isSuccess(resp.StatusCode()) {
		metrics.UpstreamRequests.WithLabelValues(endpointCity, "error").Inc()
		return nil, errors.Wrapf(errUnexpected, "fetch city %s: status %d", cityID, resp.StatusCode())
	}
	metrics.UpstreamRequests.WithLabelValues(endpointCity, "ok").Inc()

	var payload any
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		log.Warn().Err(err).Str("city_id", cityID).Msg("city payload is not valid JSON")
		return nil, nil
	}
	return payload, nil
}

// FetchWeather returns the decoded forecast payload for the city.
func (p *UpstreamProvider) FetchWeather(ctx context.Context, cityID string) (any, error) {
	resp, err := doRequestWithResilience(ctx, p.client, p.cfg.Backoff, p.weather, p.get(p.cfg.WeatherPath, cityID))
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpointWeather, "error").Inc()
		return nil, errors.Wrapf(err, "fetch weather %s", cityID)
	}
	if !isSuccess(resp.StatusCode()) {
		outcome := "error"
		if resp.StatusCode() == http.StatusNotFound {
			outcome = "not_found"
		}
		metrics.UpstreamRequests.WithLabelValues(endpointWeather, outcome).Inc()
		return nil, errors.Wrapf(errUnexpected, "fetch weather %s: status %d", cityID, resp.StatusCode())
	}

	var payload any
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpointWeather, "error").Inc()
		return nil, errors.Wrapf(err, "decode weather %s", cityID)
	}
	metrics.UpstreamRequests.WithLabelValues(endpointWeather, "ok").Inc()
	return payload, nil
}

// Ping issues a single GET to the health path, without retries.
func (p *UpstreamProvider) Ping(ctx context.Context) error {
	resp, err := p.withAPIKey(p.client.R().SetContext(ctx)).Get(p.cfg.HealthPath)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpointProbe, "error").Inc()
		return errors.Wrap(err, "probe upstream")
	}
	if !isSuccess(resp.StatusCode()) {
		metrics.UpstreamRequests.WithLabelValues(endpointProbe, "error").Inc()
		return errors.Wrapf(errUnexpected, "probe upstream: status %d", resp.StatusCode())
	}
	metrics.UpstreamRequests.WithLabelValues(endpointProbe, "ok").Inc()
	return nil
}

func (p *UpstreamProvider) get(path, cityID string) func(req *resty.Request) (*resty.Response, error) {
	return func(req *resty.Request) (*resty.Response, error) {
		return p.withAPIKey(req).
			SetPathParam("cityId", cityID).
			Get(path)
	}
}

func (p *UpstreamProvider) withAPIKey(req *resty.Request) *resty.Request {
	if p.cfg.APIKey != "" {
		req.SetQueryParam("apiKey", p.cfg.APIKey)
	}
	return req
}
