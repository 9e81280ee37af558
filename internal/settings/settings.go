package settings

import (
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Storage keys. Theme is persisted apart from the settings blob.
const (
	SettingsKey = "weather-app-settings"
	ThemeKey    = "weather-app-theme"
)

// Theme is the UI color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	DefaultTheme = Dark
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// Notifications holds the notification toggles.
type Notifications struct {
	WeatherAlerts bool `json:"weatherAlerts"`
	DailyForecast bool `json:"dailyForecast"`
}

// UserSettings is the persisted preference blob. It is always fully
// populated: missing stored fields keep their defaults.
type UserSettings struct {
	Name               string                  `json:"name"`
	Email              string                  `json:"email" validate:"omitempty,email"`
	DefaultLocation    *weather.Location       `json:"defaultLocation" validate:"omitempty"`
	AutoDetectLocation bool                    `json:"autoDetectLocation"`
	TemperatureUnit    weather.TemperatureUnit `json:"temperatureUnit" validate:"oneof=celsius fahrenheit"`
	Language           i18n.Language           `json:"language" validate:"oneof=ru en"`
	Notifications      Notifications           `json:"notifications"`
}

// Defaults returns a fresh copy of the built-in settings.
func Defaults() UserSettings {
	return UserSettings{
		Name:               "Пользователь",
		Email:              "",
		DefaultLocation:    nil,
		AutoDetectLocation: true,
		TemperatureUnit:    weather.Celsius,
		Language:           i18n.RU,
		Notifications: Notifications{
			WeatherAlerts: true,
			DailyForecast: false,
		},
	}
}

// clone returns a copy that shares no pointers with s.
func (s UserSettings) clone() UserSettings {
	out := s
	if s.DefaultLocation != nil {
		loc := *s.DefaultLocation
		out.DefaultLocation = &loc
	}
	return out
}

// Patch is a partial update; nil fields are left unchanged.
// ClearDefaultLocation removes the default location.
type Patch struct {
	Name                 *string                  `json:"name,omitempty"`
	Email                *string                  `json:"email,omitempty" validate:"omitempty,email"`
	DefaultLocation      *weather.Location        `json:"defaultLocation,omitempty" validate:"omitempty"`
	ClearDefaultLocation bool                     `json:"clearDefaultLocation,omitempty"`
	AutoDetectLocation   *bool                    `json:"autoDetectLocation,omitempty"`
	TemperatureUnit      *weather.TemperatureUnit `json:"temperatureUnit,omitempty" validate:"omitempty,oneof=celsius fahrenheit"`
	Language             *i18n.Language           `json:"language,omitempty" validate:"omitempty,oneof=ru en"`
	Notifications        *Notifications           `json:"notifications,omitempty"`
}

func (p Patch) apply(s *UserSettings) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.ClearDefaultLocation {
		s.DefaultLocation = nil
	}
	if p.DefaultLocation != nil {
		loc := *p.DefaultLocation
		s.DefaultLocation = &loc
	}
	if p.AutoDetectLocation != nil {
		s.AutoDetectLocation = *p.AutoDetectLocation
	}
	if p.TemperatureUnit != nil {
		s.TemperatureUnit = *p.TemperatureUnit
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.Notifications != nil {
		s.Notifications = *p.Notifications
	}
}
