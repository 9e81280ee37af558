package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-dashboard/internal/calendar"
)

// Geolocation modes.
const (
	GeoIP     = "ip"
	GeoFixed  = "fixed"
	GeoDenied = "denied"
	GeoOff    = "off"
)

// Storage drivers.
const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type AppConfig struct {
	WeatherAPIKey     string `yaml:"weatherapi_api_key"`
	WeatherAPIBaseURL string `yaml:"weatherapi_base_url"`

	NominatimBaseURL     string `yaml:"nominatim_base_url"`
	GoogleGeocoderAPIKey string `yaml:"google_geocoder_api_key"`
	IPGeoURL             string `yaml:"ipgeo_url"`

	// GeolocationMode selects where the device position comes from.
	GeolocationMode string  `yaml:"geolocation_mode"`
	DeviceLat       float64 `yaml:"device_lat"`
	DeviceLng       float64 `yaml:"device_lng"`

	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	ProviderRPS   float64       `yaml:"provider_rps"`
	ProviderBurst int           `yaml:"provider_burst"`

	ForecastDays         int                   `yaml:"forecast_days"`
	FallbackForecastDays int                   `yaml:"fallback_forecast_days"`
	FuturePolicy         calendar.FuturePolicy `yaml:"future_policy"`

	StorageDriver string `yaml:"storage_driver"`
	StorageDSN    string `yaml:"storage_dsn"`

	// RefreshInterval controls how often the active location is refetched
	// while serving (0 disables).
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	Port string `yaml:"port"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *AppConfig {
	return &AppConfig{
		WeatherAPIBaseURL:    "https://api.weatherapi.com/v1",
		NominatimBaseURL:     "https://nominatim.openstreetmap.org",
		IPGeoURL:             "http://ip-api.com/json",
		GeolocationMode:      GeoIP,
		HTTPTimeout:          10 * time.Second,
		ProviderRPS:          5,
		ProviderBurst:        5,
		ForecastDays:         10,
		FallbackForecastDays: 14,
		FuturePolicy:         calendar.FutureThenForecast,
		StorageDriver:        StorageFile,
		StorageDSN:           "weather-dashboard.json",
		RefreshInterval:      15 * time.Minute,
		Port:                 "8080",
	}
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables override values from the file.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := Defaults()

	path := getenvDefault("WEATHER_CONFIG_FILE", "config.yaml")
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	log.Printf("INFO: config: loaded %s", path)
	return nil
}

func (c *AppConfig) applyEnv() error {
	c.WeatherAPIKey = getenvDefault("WEATHERAPI_API_KEY", c.WeatherAPIKey)
	c.WeatherAPIBaseURL = getenvDefault("WEATHERAPI_BASE_URL", c.WeatherAPIBaseURL)
	c.NominatimBaseURL = getenvDefault("NOMINATIM_BASE_URL", c.NominatimBaseURL)
	c.GoogleGeocoderAPIKey = getenvDefault("GOOGLE_GEOCODER_API_KEY", c.GoogleGeocoderAPIKey)
	c.IPGeoURL = getenvDefault("IPGEO_URL", c.IPGeoURL)
	c.GeolocationMode = getenvDefault("GEOLOCATION_MODE", c.GeolocationMode)
	c.ProviderBurst = getenvInt("PROVIDER_BURST", c.ProviderBurst)
	c.ForecastDays = getenvInt("FORECAST_DAYS", c.ForecastDays)
	c.FallbackForecastDays = getenvInt("FALLBACK_FORECAST_DAYS", c.FallbackForecastDays)
	c.FuturePolicy = calendar.FuturePolicy(getenvDefault("FUTURE_POLICY", string(c.FuturePolicy)))
	c.StorageDriver = getenvDefault("STORAGE_DRIVER", c.StorageDriver)
	c.StorageDSN = getenvDefault("STORAGE_DSN", c.StorageDSN)
	c.Port = getenvDefault("PORT", c.Port)

	var err error
	if c.DeviceLat, err = getenvFloat("DEVICE_LAT", c.DeviceLat); err != nil {
		return err
	}
	if c.DeviceLng, err = getenvFloat("DEVICE_LNG", c.DeviceLng); err != nil {
		return err
	}
	if c.ProviderRPS, err = getenvFloat("PROVIDER_RPS", c.ProviderRPS); err != nil {
		return err
	}
	if c.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", c.HTTPTimeout); err != nil {
		return err
	}
	if c.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", c.RefreshInterval); err != nil {
		return err
	}
	return nil
}

// Validate rejects unknown modes, drivers and policies and out-of-range
// numbers.
func (c *AppConfig) Validate() error {
	switch c.GeolocationMode {
	case GeoIP, GeoFixed, GeoDenied, GeoOff:
	default:
		return fmt.Errorf("invalid GEOLOCATION_MODE %q", c.GeolocationMode)
	}
	if c.GeolocationMode == GeoFixed && (c.DeviceLat < -90 || c.DeviceLat > 90 || c.DeviceLng < -180 || c.DeviceLng > 180) {
		return fmt.Errorf("device position %v,%v is out of range", c.DeviceLat, c.DeviceLng)
	}

	switch c.StorageDriver {
	case StorageFile, StorageSQLite, StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageDriver != StorageMemory && c.StorageDSN == "" {
		return fmt.Errorf("STORAGE_DSN is required for driver %s", c.StorageDriver)
	}

	if !c.FuturePolicy.Valid() {
		return fmt.Errorf("invalid FUTURE_POLICY %q", c.FuturePolicy)
	}
	if c.ForecastDays <= 0 || c.FallbackForecastDays <= 0 {
		return fmt.Errorf("forecast day counts must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL must not be negative")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
