package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/calendar"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.ForecastDays != 10 || cfg.FallbackForecastDays != 14 {
		t.Fatalf("unexpected day counts %d/%d", cfg.ForecastDays, cfg.FallbackForecastDays)
	}
	if cfg.RefreshInterval != 15*time.Minute || cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected durations %v/%v", cfg.RefreshInterval, cfg.HTTPTimeout)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeFile(t, `
weatherapi_api_key: from-file
geolocation_mode: fixed
device_lat: 59.93
device_lng: 30.31
refresh_interval: 5m
future_policy: forecast-only
storage_driver: memory
port: "9000"
`)
	t.Setenv("WEATHER_CONFIG_FILE", path)
	t.Setenv("WEATHERAPI_API_KEY", "from-env")
	t.Setenv("PORT", "")
	t.Setenv("REFRESH_INTERVAL", "")
	t.Setenv("GEOLOCATION_MODE", "")
	t.Setenv("FUTURE_POLICY", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DEVICE_LAT", "")
	t.Setenv("DEVICE_LNG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WeatherAPIKey != "from-env" {
		t.Errorf("expected env to override file, got %q", cfg.WeatherAPIKey)
	}
	if cfg.GeolocationMode != GeoFixed || cfg.DeviceLat != 59.93 || cfg.DeviceLng != 30.31 {
		t.Errorf("unexpected geolocation config %+v", cfg)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("expected 5m refresh, got %v", cfg.RefreshInterval)
	}
	if cfg.FuturePolicy != calendar.ForecastOnly {
		t.Errorf("expected forecast-only, got %s", cfg.FuturePolicy)
	}
	if cfg.Port != "9000" || cfg.StorageDriver != StorageMemory {
		t.Errorf("unexpected port/driver %s/%s", cfg.Port, cfg.StorageDriver)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	t.Setenv("WEATHER_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("GEOLOCATION_MODE", "off")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("FUTURE_POLICY", "")
	t.Setenv("REFRESH_INTERVAL", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GeolocationMode != GeoOff || cfg.RefreshInterval != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"bad duration": {"HTTP_TIMEOUT", "soon"},
		"bad lat":      {"DEVICE_LAT", "north"},
		"bad mode":     {"GEOLOCATION_MODE", "gps"},
		"bad driver":   {"STORAGE_DRIVER", "redis"},
		"bad policy":   {"FUTURE_POLICY", "never"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("WEATHER_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.GeolocationMode = GeoFixed
	cfg.DeviceLat = 95
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected out-of-range device position to fail")
	}

	cfg = Defaults()
	cfg.ForecastDays = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected zero forecast days to fail")
	}

	cfg = Defaults()
	cfg.StorageDSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected empty DSN to fail for the file driver")
	}
	cfg.StorageDriver = StorageMemory
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory driver needs no DSN: %v", err)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Setenv("WEATHER_CONFIG_FILE", writeFile(t, "port: [unterminated"))
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
