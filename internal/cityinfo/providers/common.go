package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var (
	errRateLimited   = errors.New("rate limited")
	errServerError   = errors.New("server error")
	errUnexpected    = errors.New("unexpected status code")
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// doRequestWithResilience sends the request with retries, exponential backoff
// and a circuit breaker. Rate limiting, 5xx and transport errors are retried
// and count against the breaker. Any other status is returned to the caller
// untouched, so a 404 is neither retried nor treated as a provider failure.
func doRequestWithResilience(
	ctx context.Context,
	client *resty.Client,
	backoff BackoffConfig,
	cb *gobreaker.CircuitBreaker,
	send func(req *resty.Request) (*resty.Response, error),
) (*resty.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}
	if backoff.MaxRetries < 0 || backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := send(client.R().SetContext(ctx))
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode() == http.StatusTooManyRequests {
				return nil, errRateLimited
			}
			if resp.StatusCode() >= 500 {
				return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode())
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*resty.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= backoff.MaxRetries {
			return nil, lastErr
		}

		delay := backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > backoff.MaxInterval && backoff.MaxInterval > 0 {
			delay = backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
