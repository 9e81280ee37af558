package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const defaultIPGeoURL = "http://ip-api.com/json"

// IPGeolocator estimates the position from the public IP address. The last
// fix is reused for Options.MaximumAge.
type IPGeolocator struct {
	client *http.Client
	url    string
	opts   Options
	now    func() time.Time

	mu      sync.Mutex
	last    weather.Location
	lastFix time.Time
}

// NewIPGeolocator builds an IP geolocator. An empty url selects ip-api.com.
func NewIPGeolocator(client *http.Client, url string, opts Options) *IPGeolocator {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = defaultIPGeoURL
	}
	return &IPGeolocator{
		client: client,
		url:    url,
		opts:   opts,
		now:    time.Now,
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

func (g *IPGeolocator) GetCurrentPosition(ctx context.Context) (weather.Location, error) {
	if loc, ok := g.cached(); ok {
		return loc, nil
	}

	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return weather.Location{}, &GeolocationError{Code: PositionUnavailable, Message: "building request", Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return weather.Location{}, &GeolocationError{Code: Timeout, Message: "position request timed out", Err: err}
		}
		return weather.Location{}, &GeolocationError{Code: PositionUnavailable, Message: "position lookup failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return weather.Location{}, &GeolocationError{
			Code:    PositionUnavailable,
			Message: fmt.Sprintf("position lookup returned status %d", resp.StatusCode),
		}
	}

	var payload ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return weather.Location{}, &GeolocationError{Code: Timeout, Message: "position request timed out", Err: err}
		}
		return weather.Location{}, &GeolocationError{Code: PositionUnavailable, Message: "decoding position", Err: err}
	}
	if payload.Status != "" && payload.Status != "success" {
		return weather.Location{}, &GeolocationError{Code: PositionUnavailable, Message: "position lookup failed: " + payload.Message}
	}

	loc := weather.Location{Lat: payload.Lat, Lng: payload.Lon}
	log.Printf("DEBUG: geo: ip position %s", loc.Query())

	g.mu.Lock()
	g.last = loc
	g.lastFix = g.now()
	g.mu.Unlock()

	return loc, nil
}

func (g *IPGeolocator) cached() (weather.Location, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastFix.IsZero() || g.opts.MaximumAge <= 0 {
		return weather.Location{}, false
	}
	if g.now().Sub(g.lastFix) > g.opts.MaximumAge {
		return weather.Location{}, false
	}
	return g.last, true
}
