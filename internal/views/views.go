// Package views turns session, calendar and settings state into page view
// models for the CLI and the local dashboard.
package views

import (
	"math"
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/settings"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Renderer builds view models. Now is replaceable for tests.
type Renderer struct {
	catalog *i18n.Catalog
	Now     func() time.Time
}

func NewRenderer(catalog *i18n.Catalog) *Renderer {
	return &Renderer{catalog: catalog, Now: time.Now}
}

// Units is the display context shared by every page.
type Units struct {
	Unit     weather.TemperatureUnit `json:"unit"`
	Symbol   string                  `json:"symbol"`
	Language i18n.Language           `json:"language"`
}

func unitsFor(prefs settings.UserSettings, lang i18n.Language) Units {
	return Units{
		Unit:     prefs.TemperatureUnit,
		Symbol:   weather.TemperatureSymbol(prefs.TemperatureUnit),
		Language: lang,
	}
}

// temp converts a Celsius value to the display unit and rounds it.
func temp(c float64, unit weather.TemperatureUnit) int {
	return int(math.Round(weather.ConvertTemperature(c, unit)))
}

// conditionSlug turns "Partly cloudy" into "partly-cloudy".
func conditionSlug(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "-")
}

// Greeting picks the greeting for the hour of day.
func Greeting(hour int) i18n.Key {
	switch {
	case hour < 6:
		return i18n.GoodNight
	case hour < 12:
		return i18n.GoodMorning
	case hour < 17:
		return i18n.GoodAfternoon
	case hour < 22:
		return i18n.GoodEvening
	default:
		return i18n.GoodNight
	}
}

func humidityKey(h float64) i18n.Key {
	switch {
	case h > 70:
		return i18n.HighHumidity
	case h > 40:
		return i18n.NormalHumidity
	default:
		return i18n.LowHumidity
	}
}

func uvKey(uv float64) i18n.Key {
	switch {
	case uv > 6:
		return i18n.HighUV
	case uv > 3:
		return i18n.ModerateUV
	default:
		return i18n.LowUV
	}
}
