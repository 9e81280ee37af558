package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	nominatimUserAgent  = "weather-dashboard/1.0"
)

// NominatimGeocoder reverse-geocodes through an OpenStreetMap Nominatim
// instance.
type NominatimGeocoder struct {
	client  *http.Client
	baseURL string
}

// NewNominatimGeocoder builds a geocoder. An empty baseURL selects the
// public instance.
func NewNominatimGeocoder(client *http.Client, baseURL string) *NominatimGeocoder {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}
	return &NominatimGeocoder{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

func (n *NominatimGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64, lang string) (weather.Location, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	if lang != "" {
		values.Set("accept-language", lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+values.Encode(), nil)
	if err != nil {
		return weather.Location{}, &GeocodingError{Provider: "nominatim", Err: err}
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return weather.Location{}, &GeocodingError{Provider: "nominatim", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return weather.Location{}, &GeocodingError{
			Provider: "nominatim",
			Err:      fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	var payload nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Location{}, &GeocodingError{Provider: "nominatim", Err: err}
	}

	city := payload.Address.City
	if city == "" {
		city = payload.Address.Town
	}
	if city == "" {
		city = payload.Address.Village
	}

	return weather.Location{
		Lat:     lat,
		Lng:     lng,
		City:    city,
		Country: payload.Address.Country,
	}, nil
}
