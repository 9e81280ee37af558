package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestDefaultsBeforeHydrate(t *testing.T) {
	mem := store.NewMemoryStore()
	_ = mem.Set(SettingsKey, `{"name":"Ann","language":"en","temperatureUnit":"fahrenheit"}`)
	_ = mem.Set(ThemeKey, "light")

	s := NewStore(mem, nil)

	if s.IsHydrated() {
		t.Fatal("store must not start hydrated")
	}
	if got := s.Settings(); got.Name != Defaults().Name || got.Language != i18n.RU || got.TemperatureUnit != weather.Celsius {
		t.Fatalf("expected defaults before hydrate, got %+v", got)
	}
	if s.Theme() != Dark {
		t.Fatalf("expected default theme, got %s", s.Theme())
	}
	if s.DisplayLanguage() != i18n.DefaultLanguage {
		t.Fatalf("display language must be the default before hydrate")
	}
}

func TestHydrateMergesOverDefaults(t *testing.T) {
	mem := store.NewMemoryStore()
	_ = mem.Set(SettingsKey, `{"name":"Ann","language":"en"}`)
	_ = mem.Set(ThemeKey, "light")

	s := NewStore(mem, nil)
	if err := s.Hydrate(); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	got := s.Settings()
	want := Defaults()
	want.Name = "Ann"
	want.Language = i18n.EN
	if got.Name != want.Name || got.Language != want.Language ||
		got.TemperatureUnit != want.TemperatureUnit ||
		got.AutoDetectLocation != want.AutoDetectLocation ||
		got.Notifications != want.Notifications {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if s.Theme() != Light {
		t.Fatalf("expected stored theme, got %s", s.Theme())
	}
	if !s.IsHydrated() || s.DisplayLanguage() != i18n.EN {
		t.Fatalf("expected hydrated store rendering in en")
	}
}

func TestHydrateDiscardsCorruptJSON(t *testing.T) {
	mem := store.NewMemoryStore()
	_ = mem.Set(SettingsKey, `{"name": "Ann",`)

	s := NewStore(mem, nil)
	err := s.Hydrate()

	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if got := s.Settings(); got.Name != Defaults().Name {
		t.Fatalf("expected defaults after corrupt payload, got %+v", got)
	}
	if _, err := mem.Get(SettingsKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("corrupt entry must be removed, got %v", err)
	}
	if !s.IsHydrated() {
		t.Fatal("store must be hydrated even after discarding")
	}
}

func TestHydrateDiscardsInvalidValues(t *testing.T) {
	mem := store.NewMemoryStore()
	_ = mem.Set(SettingsKey, `{"temperatureUnit":"kelvin"}`)
	_ = mem.Set(ThemeKey, "sepia")

	s := NewStore(mem, nil)
	if err := s.Hydrate(); err == nil {
		t.Fatal("expected validation failure")
	}
	if s.Settings().TemperatureUnit != weather.Celsius {
		t.Fatal("invalid unit must not be trusted")
	}
	if s.Theme() != Dark {
		t.Fatal("unknown theme must be ignored")
	}
	if _, err := mem.Get(SettingsKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("invalid entry must be removed")
	}
}

func TestMutatorsPersist(t *testing.T) {
	mem := store.NewMemoryStore()
	s := NewStore(mem, nil)
	_ = s.Hydrate()

	if err := s.UpdateName("Boris"); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleWeatherAlerts(); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleDailyForecast(); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleAutoDetectLocation(); err != nil {
		t.Fatal(err)
	}
	loc := weather.Location{Lat: 59.93, Lng: 30.36, City: "Saint Petersburg", Country: "Russia"}
	if err := s.UpdateDefaultLocation(&loc); err != nil {
		t.Fatal(err)
	}

	raw, err := mem.Get(SettingsKey)
	if err != nil {
		t.Fatalf("settings not persisted: %v", err)
	}
	var stored UserSettings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Boris" || stored.Notifications.WeatherAlerts || !stored.Notifications.DailyForecast || stored.AutoDetectLocation {
		t.Fatalf("unexpected stored settings %+v", stored)
	}
	if stored.DefaultLocation == nil || stored.DefaultLocation.City != "Saint Petersburg" {
		t.Fatalf("default location not persisted: %+v", stored.DefaultLocation)
	}

	if err := s.UpdateDefaultLocation(nil); err != nil {
		t.Fatal(err)
	}
	if s.Settings().DefaultLocation != nil {
		t.Fatal("expected default location cleared")
	}
}

func TestSettingsCopyIsIsolated(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), nil)
	loc := weather.Location{Lat: 1, Lng: 2}
	_ = s.UpdateDefaultLocation(&loc)

	got := s.Settings()
	got.DefaultLocation.Lat = 42
	if s.Settings().DefaultLocation.Lat != 1 {
		t.Fatal("Settings must return a detached copy")
	}
}

func TestInvalidValuesRejected(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), nil)

	if err := s.SetTemperatureUnit("kelvin"); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	if err := s.SetLanguage("de"); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	if err := s.UpdateEmail("nope"); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting for bad email, got %v", err)
	}
	if err := s.UpdateDefaultLocation(&weather.Location{Lat: 120}); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting for bad latitude, got %v", err)
	}
	if err := s.SetTheme("sepia"); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting for theme, got %v", err)
	}
	if s.Settings().TemperatureUnit != weather.Celsius {
		t.Fatal("rejected values must not mutate settings")
	}
}

func TestThemePersistsSeparately(t *testing.T) {
	mem := store.NewMemoryStore()
	s := NewStore(mem, nil)

	if err := s.ToggleTheme(); err != nil {
		t.Fatal(err)
	}
	if s.Theme() != Light {
		t.Fatalf("expected light after toggle, got %s", s.Theme())
	}
	if v, _ := mem.Get(ThemeKey); v != "light" {
		t.Fatalf("theme not persisted, got %q", v)
	}
	if _, err := mem.Get(SettingsKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("theme change must not write the settings blob")
	}
}

func TestFahrenheitScenario(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), nil)
	_ = s.Hydrate()

	d := s.Settings()
	if d.TemperatureUnit != weather.Celsius || d.Language != i18n.RU || !d.AutoDetectLocation {
		t.Fatalf("unexpected defaults %+v", d)
	}

	if err := s.SetTemperatureUnit(weather.Fahrenheit); err != nil {
		t.Fatal(err)
	}
	if s.TemperatureSymbol() != "°F" {
		t.Fatalf("expected °F, got %s", s.TemperatureSymbol())
	}
	if got := math.Round(s.ConvertTemperature(20)); got != 68 {
		t.Fatalf("expected 68, got %v", got)
	}
}

func TestCorruptStorageFileRecovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs, err := store.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	s := NewStore(fs, nil)
	_ = s.Hydrate()
	if s.Settings().TemperatureUnit != weather.Celsius {
		t.Fatal("expected defaults over a corrupt file")
	}
	if err := s.SetTemperatureUnit(weather.Fahrenheit); err != nil {
		t.Fatalf("saving over a corrupt file: %v", err)
	}

	reopened := NewStore(fs, nil)
	if err := reopened.Hydrate(); err != nil {
		t.Fatalf("Hydrate after recovery: %v", err)
	}
	if reopened.Settings().TemperatureUnit != weather.Fahrenheit {
		t.Fatalf("expected fahrenheit to persist, got %s", reopened.Settings().TemperatureUnit)
	}
}

func TestConcurrentMutationsPersistInOrder(t *testing.T) {
	mem := store.NewMemoryStore()
	s := NewStore(mem, nil)
	_ = s.Hydrate()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.UpdateName(fmt.Sprintf("user-%d", i))
		}(i)
		go func() {
			defer wg.Done()
			_ = s.ToggleTheme()
		}()
	}
	wg.Wait()

	raw, err := mem.Get(SettingsKey)
	if err != nil {
		t.Fatal(err)
	}
	var stored UserSettings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatal(err)
	}
	if stored.Name != s.Settings().Name {
		t.Fatalf("storage holds %q, memory holds %q", stored.Name, s.Settings().Name)
	}

	// An even number of toggles from dark ends on dark.
	if s.Theme() != Dark {
		t.Fatalf("expected dark after 50 toggles, got %s", s.Theme())
	}
	if theme, _ := mem.Get(ThemeKey); theme != string(Dark) {
		t.Fatalf("stored theme %q does not match", theme)
	}
}
