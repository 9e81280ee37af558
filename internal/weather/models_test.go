package weather

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestLocationQuery(t *testing.T) {
	loc := Location{Lat: 55.7558, Lng: 37.6173}
	if got := loc.Query(); got != "55.7558,37.6173" {
		t.Fatalf("unexpected query %q", got)
	}
}

func TestMoonIlluminationAcceptsNumberAndString(t *testing.T) {
	var a, b Astro
	if err := json.Unmarshal([]byte(`{"moon_illumination": 42}`), &a); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"moon_illumination": "42"}`), &b); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if a.MoonIllumination != "42" || b.MoonIllumination != "42" {
		t.Fatalf("got %q and %q, want 42", a.MoonIllumination, b.MoonIllumination)
	}
}

func TestSnapshotDayLookup(t *testing.T) {
	snap := &WeatherSnapshot{Forecast: Forecast{ForecastDay: []ForecastDay{
		{Date: "2026-10-19"}, {Date: "2026-10-20"},
	}}}
	if _, ok := snap.Day("2026-10-20"); !ok {
		t.Fatal("expected day to be found")
	}
	if _, ok := snap.Day("2026-10-21"); ok {
		t.Fatal("did not expect day to be found")
	}
	var nilSnap *WeatherSnapshot
	if _, ok := nilSnap.Today(); ok {
		t.Fatal("nil snapshot has no today")
	}
}

func TestProviderErrorMatchesSentinel(t *testing.T) {
	var err error = &ProviderError{Endpoint: "forecast.json", Status: 503}
	if !errors.Is(err, ErrProvider) {
		t.Fatal("expected ProviderError to match ErrProvider")
	}
}
