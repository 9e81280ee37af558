package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const defaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

// ErrMissingAPIKey is returned before any request when no key is configured.
var ErrMissingAPIKey = errors.New("weatherapi api key is not configured")

// WeatherAPIGateway implements weather.Gateway for WeatherAPI.com.
type WeatherAPIGateway struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	limiter *rate.Limiter
	circuit *gobreaker.CircuitBreaker
}

// NewWeatherAPIGateway builds the gateway. An empty baseURL selects the
// public endpoint.
func NewWeatherAPIGateway(client *http.Client, apiKey, baseURL string, rateCfg RateConfig) *WeatherAPIGateway {
	if baseURL == "" {
		baseURL = defaultWeatherAPIBaseURL
	}
	return &WeatherAPIGateway{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client: client,
			Rate:   rateCfg,
		},
		limiter: newLimiter(rateCfg),
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIGateway) Name() string {
	return p.name
}

func (p *WeatherAPIGateway) GetCurrent(ctx context.Context, loc weather.Location, lang string) (*weather.WeatherSnapshot, error) {
	values := url.Values{}
	values.Set("q", loc.Query())
	values.Set("aqi", "yes")
	setLang(values, lang)

	var out weather.WeatherSnapshot
	if err := p.get(ctx, "current.json", values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *WeatherAPIGateway) GetForecast(ctx context.Context, loc weather.Location, days int, lang string) (*weather.WeatherSnapshot, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be greater than zero")
	}
	values := url.Values{}
	values.Set("q", loc.Query())
	values.Set("days", strconv.Itoa(days))
	values.Set("aqi", "yes")
	values.Set("alerts", "yes")
	setLang(values, lang)

	var out weather.WeatherSnapshot
	if err := p.get(ctx, "forecast.json", values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *WeatherAPIGateway) GetHistory(ctx context.Context, loc weather.Location, date string, lang string) (*weather.WeatherSnapshot, error) {
	return p.getDated(ctx, "history.json", loc, date, lang)
}

func (p *WeatherAPIGateway) GetFuture(ctx context.Context, loc weather.Location, date string, lang string) (*weather.WeatherSnapshot, error) {
	return p.getDated(ctx, "future.json", loc, date, lang)
}

func (p *WeatherAPIGateway) GetAstronomy(ctx context.Context, loc weather.Location, date string) (*weather.AstronomyResponse, error) {
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	values := url.Values{}
	values.Set("q", loc.Query())
	values.Set("dt", date)

	var out weather.AstronomyResponse
	if err := p.get(ctx, "astronomy.json", values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *WeatherAPIGateway) SearchLocations(ctx context.Context, query string) ([]weather.SearchResult, error) {
	values := url.Values{}
	values.Set("q", query)

	var out []weather.SearchResult
	if err := p.get(ctx, "search.json", values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *WeatherAPIGateway) getDated(ctx context.Context, endpoint string, loc weather.Location, date, lang string) (*weather.WeatherSnapshot, error) {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	values := url.Values{}
	values.Set("q", loc.Query())
	values.Set("dt", date)
	values.Set("aqi", "yes")
	setLang(values, lang)

	var out weather.WeatherSnapshot
	if err := p.get(ctx, endpoint, values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *WeatherAPIGateway) get(ctx context.Context, endpoint string, values url.Values, out any) error {
	if p.apiKey == "" {
		return ErrMissingAPIKey
	}
	values.Set("key", p.apiKey)
	u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
	return getJSON(ctx, p.httpCfg, p.limiter, p.circuit, endpoint, u, out)
}

func setLang(values url.Values, lang string) {
	if lang != "" {
		values.Set("lang", lang)
	}
}

var _ weather.Gateway = (*WeatherAPIGateway)(nil)
