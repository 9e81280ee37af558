package geo

import (
	"context"
	"errors"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var errNoAddress = errors.New("no address for location")

// geocoder keeps its key in a package variable.
var googleKeyMu sync.Mutex

// GoogleGeocoder reverse-geocodes through the Google Geocoding API. The API
// does not take a language here; names come back in the provider default.
type GoogleGeocoder struct {
	apiKey  string
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey, reverse: geocoder.GeocodingReverse}
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64, _ string) (weather.Location, error) {
	if err := ctx.Err(); err != nil {
		return weather.Location{}, &GeocodingError{Provider: "google", Err: err}
	}

	googleKeyMu.Lock()
	geocoder.ApiKey = g.apiKey
	addresses, err := g.reverse(geocoder.Location{Latitude: lat, Longitude: lng})
	googleKeyMu.Unlock()

	if err != nil {
		return weather.Location{}, &GeocodingError{Provider: "google", Err: err}
	}
	for _, a := range addresses {
		if a.City != "" || a.Country != "" {
			return weather.Location{Lat: lat, Lng: lng, City: a.City, Country: a.Country}, nil
		}
	}
	return weather.Location{}, &GeocodingError{Provider: "google", Err: errNoAddress}
}
