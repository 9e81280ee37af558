package calendar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const defaultFallbackDays = 14

// ErrNotActivatable is returned for cells that cannot be fetched: outside
// the displayed month, not in the grid, or with no active location.
var ErrNotActivatable = errors.New("day cannot be activated")

// FuturePolicy selects how data for a future day is requested.
type FuturePolicy string

const (
	// FutureThenForecast tries the future endpoint and falls back to an
	// extended forecast when it fails.
	FutureThenForecast FuturePolicy = "future-then-forecast"
	// ForecastOnly goes straight to the extended forecast.
	ForecastOnly FuturePolicy = "forecast-only"
)

func (p FuturePolicy) Valid() bool {
	return p == FutureThenForecast || p == ForecastOnly
}

// Source is the session view the calendar reads from.
type Source interface {
	Snapshot() (*weather.WeatherSnapshot, uint64)
	ActiveLocation() (weather.Location, bool)
	Language() i18n.Language
}

type Options struct {
	FallbackForecastDays int
	Policy               FuturePolicy
}

// Calendar holds the displayed month and its grid. The grid is rebuilt when
// the month or the snapshot version changes; otherwise patched cells are
// kept. It is safe for concurrent use.
type Calendar struct {
	source  Source
	gateway weather.Gateway
	opts    Options
	now     func() time.Time

	mu      sync.Mutex
	month   time.Time
	grid    Grid
	version uint64
	built   bool
}

// New returns a calendar showing the current month.
func New(source Source, gateway weather.Gateway, opts Options) *Calendar {
	if opts.FallbackForecastDays <= 0 {
		opts.FallbackForecastDays = defaultFallbackDays
	}
	if !opts.Policy.Valid() {
		opts.Policy = FutureThenForecast
	}
	c := &Calendar{
		source:  source,
		gateway: gateway,
		opts:    opts,
		now:     time.Now,
	}
	c.month = MonthStart(c.now())
	return c
}

func (c *Calendar) Month() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.month
}

// SetMonth displays the month containing t.
func (c *Calendar) SetMonth(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = MonthStart(t)
}

func (c *Calendar) PrevMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = c.month.AddDate(0, -1, 0)
}

func (c *Calendar) NextMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = c.month.AddDate(0, 1, 0)
}

// Grid returns a copy of the current grid.
func (c *Calendar) Grid() Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()
	return c.grid.clone()
}

func (c *Calendar) refreshLocked() {
	snap, version := c.source.Snapshot()
	if c.built && version == c.version && c.grid.Month.Equal(c.month) {
		return
	}
	c.grid = BuildMonthGrid(c.month, snap, c.now())
	c.version = version
	c.built = true
}

// Activate handles a click on the cell with the given ISO date. Cells with
// data are returned as they are. A dataless past or future cell triggers a
// single-day fetch; on success only that cell is patched. A failed fetch is
// logged and the dataless cell is returned without error.
func (c *Calendar) Activate(ctx context.Context, isoDate string) (Day, error) {
	c.mu.Lock()
	c.refreshLocked()
	idx := c.grid.Index(isoDate)
	if idx < 0 {
		c.mu.Unlock()
		return Day{}, fmt.Errorf("%w: %s is not in the displayed grid", ErrNotActivatable, isoDate)
	}
	day := c.grid.Days[idx]
	c.mu.Unlock()

	if !day.InCurrentMonth {
		return day, fmt.Errorf("%w: %s is outside the displayed month", ErrNotActivatable, isoDate)
	}
	loc, ok := c.source.ActiveLocation()
	if !ok {
		return day, fmt.Errorf("%w: no active location", ErrNotActivatable)
	}
	if day.HasData || (!day.IsHistorical && !day.IsFuture) {
		return day, nil
	}

	lang := string(c.source.Language())
	var (
		resp *weather.WeatherSnapshot
		err  error
	)
	if day.IsHistorical {
		resp, err = c.gateway.GetHistory(ctx, loc, isoDate, lang)
	} else {
		resp, err = c.fetchFuture(ctx, loc, isoDate, lang)
	}
	if err != nil {
		log.Printf("ERROR: calendar: fetch %s for %s: %v", isoDate, loc.Key(), err)
		return day, nil
	}

	fd, ok := pickDay(resp, isoDate)
	if !ok {
		log.Printf("INFO: calendar: no data for %s in response", isoDate)
		return day, nil
	}
	patched := withData(day, fd)

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.grid.Index(isoDate); i >= 0 && !c.grid.Days[i].HasData {
		c.grid.Days[i] = patched
	}
	return patched, nil
}

func (c *Calendar) fetchFuture(ctx context.Context, loc weather.Location, isoDate, lang string) (*weather.WeatherSnapshot, error) {
	if c.opts.Policy == FutureThenForecast {
		resp, err := c.gateway.GetFuture(ctx, loc, isoDate, lang)
		if err == nil {
			return resp, nil
		}
		log.Printf("INFO: calendar: future lookup for %s failed, using %d-day forecast: %v", isoDate, c.opts.FallbackForecastDays, err)
	}
	return c.gateway.GetForecast(ctx, loc, c.opts.FallbackForecastDays, lang)
}

// pickDay selects the entry for isoDate. A response without a matching
// date is used only when it holds exactly one entry.
func pickDay(resp *weather.WeatherSnapshot, isoDate string) (weather.ForecastDay, bool) {
	if fd, ok := resp.Day(isoDate); ok {
		return fd, true
	}
	if resp != nil && len(resp.Forecast.ForecastDay) == 1 {
		return resp.Forecast.ForecastDay[0], true
	}
	return weather.ForecastDay{}, false
}
