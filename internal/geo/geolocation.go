// Package geo resolves the device position and names it.
package geo

import (
	"context"
	"fmt"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrorCode follows the numbering of the browser geolocation API, with 0
// reserved for a missing geolocation facility.
type ErrorCode int

const (
	Unsupported         ErrorCode = 0
	PermissionDenied    ErrorCode = 1
	PositionUnavailable ErrorCode = 2
	Timeout             ErrorCode = 3
)

func (c ErrorCode) String() string {
	switch c {
	case Unsupported:
		return "unsupported"
	case PermissionDenied:
		return "permission-denied"
	case PositionUnavailable:
		return "unavailable"
	case Timeout:
		return "timeout"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// GeolocationError is returned by every Geolocator failure.
type GeolocationError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *GeolocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation %s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("geolocation %s: %s", e.Code, e.Message)
}

func (e *GeolocationError) Unwrap() error { return e.Err }

// Options mirrors the position request options of the device API.
type Options struct {
	EnableHighAccuracy bool
	Timeout            time.Duration
	MaximumAge         time.Duration
}

// DefaultOptions: high accuracy, 10s timeout, positions up to 5 minutes old
// may be reused.
func DefaultOptions() Options {
	return Options{
		EnableHighAccuracy: true,
		Timeout:            10 * time.Second,
		MaximumAge:         5 * time.Minute,
	}
}

// Geolocator produces the current device position. Failures are
// *GeolocationError.
type Geolocator interface {
	GetCurrentPosition(ctx context.Context) (weather.Location, error)
}
