package geo

import (
	"context"
	"fmt"
	"log"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ReverseGeocoder names a coordinate pair.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64, lang string) (weather.Location, error)
}

// GeocodingError is produced by reverse geocoders. Resolver absorbs it.
type GeocodingError struct {
	Provider string
	Err      error
}

func (e *GeocodingError) Error() string {
	return fmt.Sprintf("reverse geocoding via %s: %v", e.Provider, e.Err)
}

func (e *GeocodingError) Unwrap() error { return e.Err }

// Resolver wraps a ReverseGeocoder and never fails: on any error the bare
// coordinates are returned.
type Resolver struct {
	geocoder ReverseGeocoder
}

// NewResolver returns a Resolver. A nil geocoder yields coordinates only.
func NewResolver(g ReverseGeocoder) *Resolver {
	return &Resolver{geocoder: g}
}

func (r *Resolver) ReverseGeocode(ctx context.Context, lat, lng float64, lang string) weather.Location {
	bare := weather.Location{Lat: lat, Lng: lng}
	if r == nil || r.geocoder == nil {
		return bare
	}
	loc, err := r.geocoder.ReverseGeocode(ctx, lat, lng, lang)
	if err != nil {
		log.Printf("ERROR: geo: %v", err)
		return bare
	}
	loc.Lat, loc.Lng = lat, lng
	return loc
}
