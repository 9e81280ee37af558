// Package session coordinates the weather snapshot, loading and error
// flags, and the location modal for one logical user session.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/settings"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	defaultForecastDays = 10
	maxSearchResults    = 5
)

var (
	// ErrNoLocation is returned when an operation needs an active location
	// and none has been fetched yet.
	ErrNoLocation = errors.New("no active location")
	// ErrLocationInProgress is returned by RequestLocation while a request
	// is already running.
	ErrLocationInProgress = errors.New("location request already in progress")
	// ErrSuperseded is returned by FetchWeatherData when a newer fetch was
	// issued before this one completed; its result was discarded.
	ErrSuperseded = errors.New("fetch superseded by a newer request")
	// ErrFetchInFlight is returned by Refresh when another fetch is still
	// running; background refreshes never supersede it.
	ErrFetchInFlight = errors.New("weather fetch already in flight")
)

// Options configures a Session.
type Options struct {
	ForecastDays int
}

// Session is the weather session state. It is safe for concurrent use.
type Session struct {
	id         uuid.UUID
	gateway    weather.Gateway
	geolocator geo.Geolocator
	resolver   *geo.Resolver
	settings   *settings.Store
	catalog    *i18n.Catalog
	days       int
	now        func() time.Time

	mu            sync.RWMutex
	snapshot      *weather.WeatherSnapshot
	version       uint64
	location      *weather.Location
	updatedAt     time.Time
	loading       bool
	err           string
	modal         ModalState
	locationError string
	token         uint64
}

// New builds a session. resolver may be nil (coordinates are not named).
func New(
	gateway weather.Gateway,
	geolocator geo.Geolocator,
	resolver *geo.Resolver,
	prefs *settings.Store,
	catalog *i18n.Catalog,
	opts Options,
) *Session {
	days := opts.ForecastDays
	if days <= 0 {
		days = defaultForecastDays
	}
	if geolocator == nil {
		geolocator = geo.UnsupportedGeolocator{}
	}
	return &Session{
		id:         uuid.New(),
		gateway:    gateway,
		geolocator: geolocator,
		resolver:   resolver,
		settings:   prefs,
		catalog:    catalog,
		days:       days,
		now:        time.Now,
	}
}

func (s *Session) ID() string { return s.id.String() }

// Settings exposes the preference store the session reads from.
func (s *Session) Settings() *settings.Store { return s.settings }

// Language is the language requests and messages use.
func (s *Session) Language() i18n.Language {
	return s.settings.Language()
}

// FetchWeatherData fetches the forecast for loc and replaces the snapshot.
// A failure sets the localized error banner. If a newer fetch starts before
// this one returns, the result is dropped and ErrSuperseded is returned.
func (s *Session) FetchWeatherData(ctx context.Context, loc weather.Location) error {
	s.mu.Lock()
	token := s.beginFetchLocked()
	s.mu.Unlock()

	return s.completeFetch(ctx, loc, token)
}

// beginFetchLocked issues a new request token. Callers hold s.mu.
func (s *Session) beginFetchLocked() uint64 {
	s.token++
	s.loading = true
	s.err = ""
	return s.token
}

func (s *Session) completeFetch(ctx context.Context, loc weather.Location, token uint64) error {
	lang := s.Language()
	snap, err := s.gateway.GetForecast(ctx, loc, s.days, string(lang))

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		log.Printf("DEBUG: session %s: discarding stale response for %s", s.id, loc.Key())
		return ErrSuperseded
	}
	s.loading = false

	if err != nil {
		log.Printf("ERROR: session %s: fetch weather for %s: %v", s.id, loc.Key(), err)
		s.err = s.catalog.T(lang, i18n.WeatherLoadFailed)
		return fmt.Errorf("fetch weather: %w", err)
	}

	active := loc
	s.snapshot = snap
	s.location = &active
	s.version++
	s.updatedAt = s.now()
	log.Printf("INFO: session %s: snapshot v%d for %s", s.id, s.version, loc.Key())
	return nil
}

// ShowLocationModal opens the modal if it is closed.
func (s *Session) ShowLocationModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal == ModalClosed {
		s.modal = ModalOpen
	}
}

// HideLocationModal dismisses the modal. Any location error is kept.
func (s *Session) HideLocationModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = ModalClosed
}

// DenyLocation closes the modal and clears the location error.
func (s *Session) DenyLocation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = ModalClosed
	s.locationError = ""
}

// RequestLocation asks the geolocator for a fix, names it and fetches
// weather for it. On geolocation failure the modal moves to the error
// state. Once a fix is obtained the modal closes whatever the fetch
// outcome; fetch failures surface through the error banner.
func (s *Session) RequestLocation(ctx context.Context) error {
	s.mu.Lock()
	if s.modal == ModalRequesting {
		s.mu.Unlock()
		return ErrLocationInProgress
	}
	s.modal = ModalRequesting
	s.locationError = ""
	s.mu.Unlock()

	lang := s.Language()

	pos, err := s.geolocator.GetCurrentPosition(ctx)
	if err != nil {
		log.Printf("ERROR: session %s: geolocation: %v", s.id, err)
		s.mu.Lock()
		s.modal = ModalError
		s.locationError = s.catalog.T(lang, i18n.LocationFailed)
		s.mu.Unlock()
		return err
	}

	loc := s.resolver.ReverseGeocode(ctx, pos.Lat, pos.Lng, string(lang))
	ferr := s.FetchWeatherData(ctx, loc)

	s.mu.Lock()
	s.modal = ModalClosed
	s.mu.Unlock()

	if errors.Is(ferr, ErrSuperseded) {
		return nil
	}
	return ferr
}

// InitializeWeatherApp bootstraps the session: geolocation when
// auto-detection is on, then the saved default location, then the modal.
// Fetch failures are not retried and do not fall through to the next step.
func (s *Session) InitializeWeatherApp(ctx context.Context) error {
	prefs := s.settings.Settings()

	if prefs.AutoDetectLocation {
		pos, err := s.geolocator.GetCurrentPosition(ctx)
		if err == nil {
			loc := s.resolver.ReverseGeocode(ctx, pos.Lat, pos.Lng, string(prefs.Language))
			return s.FetchWeatherData(ctx, loc)
		}
		log.Printf("INFO: session %s: auto-detect failed, falling back: %v", s.id, err)
	}

	if prefs.DefaultLocation != nil {
		return s.FetchWeatherData(ctx, *prefs.DefaultLocation)
	}

	s.ShowLocationModal()
	return nil
}

// ChangeLocation stores loc as the default location and fetches it. A
// failure to persist is logged; the fetch still happens.
func (s *Session) ChangeLocation(ctx context.Context, loc weather.Location) error {
	if err := s.settings.UpdateDefaultLocation(&loc); err != nil {
		if errors.Is(err, settings.ErrInvalidSetting) {
			return err
		}
		log.Printf("ERROR: session %s: saving default location: %v", s.id, err)
	}
	return s.FetchWeatherData(ctx, loc)
}

// SearchLocations returns at most five matches. Blank queries and provider
// failures both yield an empty list.
func (s *Session) SearchLocations(ctx context.Context, query string) []weather.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return []weather.SearchResult{}
	}
	results, err := s.gateway.SearchLocations(ctx, query)
	if err != nil {
		log.Printf("ERROR: session %s: search %q: %v", s.id, query, err)
		return []weather.SearchResult{}
	}
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

// SelectSearchResult switches to a search hit.
func (s *Session) SelectSearchResult(ctx context.Context, r weather.SearchResult) error {
	return s.ChangeLocation(ctx, r.Location())
}

// Refresh re-fetches the active location. It yields to any fetch already
// running and returns ErrFetchInFlight instead of superseding it.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.location == nil {
		s.mu.Unlock()
		return ErrNoLocation
	}
	if s.loading {
		s.mu.Unlock()
		return ErrFetchInFlight
	}
	loc := *s.location
	token := s.beginFetchLocked()
	s.mu.Unlock()

	return s.completeFetch(ctx, loc, token)
}

// ActiveLocation is the location of the current snapshot.
func (s *Session) ActiveLocation() (weather.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.location == nil {
		return weather.Location{}, false
	}
	return *s.location, true
}

// Snapshot returns the current snapshot and its version. The snapshot is
// shared and must not be modified.
func (s *Session) Snapshot() (*weather.WeatherSnapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.version
}

// State returns a copy of the session flags.
func (s *Session) State() State {
	s.mu.RLock()
	st := State{
		ID:                  s.id.String(),
		Snapshot:            s.snapshot,
		Version:             s.version,
		UpdatedAt:           s.updatedAt,
		IsLoading:           s.loading,
		Error:               s.err,
		Modal:               s.modal,
		IsLocationModalOpen: s.modal != ModalClosed,
		IsLocationLoading:   s.modal == ModalRequesting,
		LocationError:       s.locationError,
	}
	if s.location != nil {
		loc := *s.location
		st.Location = &loc
	}
	s.mu.RUnlock()

	st.Language = s.settings.DisplayLanguage()
	st.IsHydrated = s.settings.IsHydrated()
	return st
}
