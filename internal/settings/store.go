// Package settings owns the user's persisted preferences and theme.
//
// A Store starts from hard-coded defaults and only overlays durable storage
// when Hydrate is called, so that anything rendered before hydration is
// deterministic.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrInvalidSetting is returned when a mutator receives a value outside the
// allowed set.
var ErrInvalidSetting = errors.New("invalid setting")

// StorageError describes a stored record that could not be trusted and was
// discarded.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("stored %s discarded: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is the preference store. It is safe for concurrent use.
type Store struct {
	// saveMu serializes mutate-then-persist so storage sees writes in the
	// order they were applied.
	saveMu sync.Mutex

	mu       sync.RWMutex
	storage  store.Storage
	validate *validator.Validate

	settings UserSettings
	theme    Theme
	hydrated bool
}

// NewStore creates a store holding the defaults. validate may be nil.
func NewStore(storage store.Storage, validate *validator.Validate) *Store {
	if validate == nil {
		validate = validator.New()
	}
	return &Store{
		storage:  storage,
		validate: validate,
		settings: Defaults(),
		theme:    DefaultTheme,
	}
}

// Hydrate overlays durable storage onto the defaults once. Corrupt or
// invalid settings are removed from storage and the defaults are kept; the
// discarded record is reported as a *StorageError but the store is still
// marked hydrated.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return nil
	}
	s.hydrated = true

	if raw, err := s.storage.Get(ThemeKey); err == nil {
		if t := Theme(raw); t.Valid() {
			s.theme = t
		} else if raw != "" {
			log.Printf("INFO: settings: ignoring unknown stored theme %q", raw)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("ERROR: settings: reading theme: %v", err)
	}

	raw, err := s.storage.Get(SettingsKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("ERROR: settings: reading settings: %v", err)
		return nil
	}

	loaded, derr := s.decode(raw)
	if derr != nil {
		serr := &StorageError{Key: SettingsKey, Err: derr}
		log.Printf("ERROR: settings: %v", serr)
		if rerr := s.storage.Remove(SettingsKey); rerr != nil {
			log.Printf("ERROR: settings: removing corrupt entry: %v", rerr)
		}
		return serr
	}
	if loaded != nil {
		s.settings = *loaded
	}
	return nil
}

// decode merges raw over the defaults and validates the result. A blank
// entry yields nil, nil.
func (s *Store) decode(raw string) (*UserSettings, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	merged := Defaults()
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// IsHydrated reports whether Hydrate has run.
func (s *Store) IsHydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.clone()
}

// Theme returns the current theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Language returns the configured language regardless of hydration.
func (s *Store) Language() i18n.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Language
}

// DisplayLanguage is the language to render with: the fixed default until
// hydration has completed.
func (s *Store) DisplayLanguage() i18n.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hydrated {
		return i18n.DefaultLanguage
	}
	return s.settings.Language
}

// UpdateUserSettings validates and merges p, then persists. The in-memory
// update stands even if persisting fails; the error is returned.
func (s *Store) UpdateUserSettings(p Patch) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	return s.update(p.apply)
}

func (s *Store) update(mutate func(*UserSettings)) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	mutate(&s.settings)
	snapshot := s.settings.clone()
	s.mu.Unlock()

	return s.save(snapshot)
}

func (s *Store) save(us UserSettings) error {
	raw, err := json.Marshal(us)
	if err != nil {
		return err
	}
	if err := s.storage.Set(SettingsKey, string(raw)); err != nil {
		log.Printf("ERROR: settings: saving settings: %v", err)
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *Store) UpdateName(name string) error {
	return s.UpdateUserSettings(Patch{Name: &name})
}

func (s *Store) UpdateEmail(email string) error {
	return s.UpdateUserSettings(Patch{Email: &email})
}

// UpdateDefaultLocation sets or (with nil) clears the default location.
func (s *Store) UpdateDefaultLocation(loc *weather.Location) error {
	if loc == nil {
		return s.UpdateUserSettings(Patch{ClearDefaultLocation: true})
	}
	return s.UpdateUserSettings(Patch{DefaultLocation: loc})
}

func (s *Store) SetTemperatureUnit(unit weather.TemperatureUnit) error {
	if !unit.Valid() {
		return fmt.Errorf("%w: temperature unit %q", ErrInvalidSetting, unit)
	}
	return s.UpdateUserSettings(Patch{TemperatureUnit: &unit})
}

func (s *Store) SetLanguage(lang i18n.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: language %q", ErrInvalidSetting, lang)
	}
	return s.UpdateUserSettings(Patch{Language: &lang})
}

func (s *Store) ToggleAutoDetectLocation() error {
	return s.update(func(us *UserSettings) { us.AutoDetectLocation = !us.AutoDetectLocation })
}

func (s *Store) ToggleWeatherAlerts() error {
	return s.update(func(us *UserSettings) { us.Notifications.WeatherAlerts = !us.Notifications.WeatherAlerts })
}

func (s *Store) ToggleDailyForecast() error {
	return s.update(func(us *UserSettings) { us.Notifications.DailyForecast = !us.Notifications.DailyForecast })
}

// SetTheme changes and persists the theme on its own storage entry.
func (s *Store) SetTheme(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: theme %q", ErrInvalidSetting, t)
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.setTheme(t)
}

func (s *Store) setTheme(t Theme) error {
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()

	if err := s.storage.Set(ThemeKey, string(t)); err != nil {
		log.Printf("ERROR: settings: saving theme: %v", err)
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	next := Light
	if s.Theme() == Light {
		next = Dark
	}
	return s.setTheme(next)
}

// ConvertTemperature converts a Celsius value into the configured unit.
func (s *Store) ConvertTemperature(c float64) float64 {
	s.mu.RLock()
	unit := s.settings.TemperatureUnit
	s.mu.RUnlock()
	return weather.ConvertTemperature(c, unit)
}

// TemperatureSymbol returns °C or °F for the configured unit.
func (s *Store) TemperatureSymbol() string {
	s.mu.RLock()
	unit := s.settings.TemperatureUnit
	s.mu.RUnlock()
	return weather.TemperatureSymbol(unit)
}
