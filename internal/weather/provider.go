package weather

import (
	"context"
	"errors"
	"fmt"
)

// Gateway abstracts the remote weather provider. Every call issues exactly
// one request; implementations do not retry or cache.
type Gateway interface {
	GetCurrent(ctx context.Context, loc Location, lang string) (*WeatherSnapshot, error)
	GetForecast(ctx context.Context, loc Location, days int, lang string) (*WeatherSnapshot, error)
	GetHistory(ctx context.Context, loc Location, date string, lang string) (*WeatherSnapshot, error)
	// GetFuture has no guaranteed provider support; callers must expect it
	// to fail and fall back to GetForecast.
	GetFuture(ctx context.Context, loc Location, date string, lang string) (*WeatherSnapshot, error)
	GetAstronomy(ctx context.Context, loc Location, date string) (*AstronomyResponse, error)
	SearchLocations(ctx context.Context, query string) ([]SearchResult, error)
}

// ErrProvider matches every ProviderError via errors.Is.
var ErrProvider = errors.New("weather provider error")

// ProviderError reports a bad status or an unusable body from the provider.
type ProviderError struct {
	Endpoint     string
	Status       int
	ParseFailure bool
	Err          error
}

func (e *ProviderError) Error() string {
	switch {
	case e.ParseFailure:
		return fmt.Sprintf("weather provider %s: unparseable response: %v", e.Endpoint, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("weather provider %s: status %d", e.Endpoint, e.Status)
	default:
		return fmt.Sprintf("weather provider %s: %v", e.Endpoint, e.Err)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }
