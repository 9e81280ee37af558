package geo

import (
	"context"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// FixedGeolocator always reports the configured coordinates.
type FixedGeolocator struct {
	Lat float64
	Lng float64
}

func (f FixedGeolocator) GetCurrentPosition(ctx context.Context) (weather.Location, error) {
	if err := ctx.Err(); err != nil {
		return weather.Location{}, &GeolocationError{Code: Timeout, Message: "position request cancelled", Err: err}
	}
	return weather.Location{Lat: f.Lat, Lng: f.Lng}, nil
}

// UnsupportedGeolocator stands in when no geolocation facility exists.
type UnsupportedGeolocator struct{}

func (UnsupportedGeolocator) GetCurrentPosition(context.Context) (weather.Location, error) {
	return weather.Location{}, &GeolocationError{Code: Unsupported, Message: "geolocation is not supported"}
}

// DeniedGeolocator behaves as if the user refused the permission prompt.
type DeniedGeolocator struct{}

func (DeniedGeolocator) GetCurrentPosition(context.Context) (weather.Location, error) {
	return weather.Location{}, &GeolocationError{Code: PermissionDenied, Message: "geolocation permission denied"}
}
