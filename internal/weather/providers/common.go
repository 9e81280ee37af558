package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// RateConfig controls client-side request spacing.
type RateConfig struct {
	RPS   float64
	Burst int
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client *http.Client
	Rate   RateConfig
}

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
	errEmptyBody    = errors.New("empty response body")
)

// statusError lets a failed status pass through the breaker as an error
// while preserving the code.
type statusError struct{ code int }

func (e statusError) Error() string { return fmt.Sprintf("unexpected status code: %d", e.code) }

func newLimiter(cfg RateConfig) *rate.Limiter {
	if cfg.RPS <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RPS), burst)
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// Client errors (bad key, unknown date) are not provider outages.
		IsSuccessful: func(err error) bool {
			var se statusError
			if errors.As(err, &se) {
				return se.code < 500 && se.code != http.StatusTooManyRequests
			}
			return err == nil
		},
	})
}

// getJSON executes a single GET through the limiter and circuit breaker and
// decodes the body into out. There are no retries: a bad status or unusable
// body becomes a *weather.ProviderError.
func getJSON(
	ctx context.Context,
	cfg HTTPClientConfig,
	limiter *rate.Limiter,
	cb *gobreaker.CircuitBreaker,
	endpoint string,
	url string,
	out any,
) error {
	if cfg.Client == nil {
		return errNoHTTPClient
	}

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := cfg.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, statusError{code: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return body, nil
	})
	if err != nil {
		var se statusError
		switch {
		case errors.As(err, &se):
			return &weather.ProviderError{Endpoint: endpoint, Status: se.code, Err: err}
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			return &weather.ProviderError{Endpoint: endpoint, Err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
		default:
			return &weather.ProviderError{Endpoint: endpoint, Err: err}
		}
	}

	body, ok := result.([]byte)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &weather.ProviderError{Endpoint: endpoint, ParseFailure: true, Err: errEmptyBody}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &weather.ProviderError{Endpoint: endpoint, ParseFailure: true, Err: err}
	}
	return nil
}
