package views

import (
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/settings"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type SettingsPage struct {
	Units
	Settings   settings.UserSettings `json:"settings"`
	Theme      settings.Theme        `json:"theme"`
	IsHydrated bool                  `json:"isHydrated"`
	Languages  []i18n.Language       `json:"languages"`
	UnitsList  []string              `json:"units"`
}

// Settings renders the settings page. The language is the display language,
// which stays at the default until preferences are hydrated.
func (r *Renderer) Settings(prefs *settings.Store) SettingsPage {
	current := prefs.Settings()
	return SettingsPage{
		Units:      unitsFor(current, prefs.DisplayLanguage()),
		Settings:   current,
		Theme:      prefs.Theme(),
		IsHydrated: prefs.IsHydrated(),
		Languages:  []i18n.Language{i18n.RU, i18n.EN},
		UnitsList:  []string{string(weather.Celsius), string(weather.Fahrenheit)},
	}
}

type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type DashboardPage struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Dashboard is static content.
func (r *Renderer) Dashboard() DashboardPage {
	return DashboardPage{
		Title: "Dashboard",
		Cards: []Card{
			{Title: "Weather Overview", Description: "Detailed weather analytics and trends"},
			{Title: "Forecasts", Description: "Extended weather forecasts"},
			{Title: "Alerts", Description: "Weather alerts and notifications"},
		},
	}
}

type Notification struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

type NotificationsPage struct {
	Title         string         `json:"title"`
	Notifications []Notification `json:"notifications"`
}

// Notifications is static sample content; nothing is delivered.
func (r *Renderer) Notifications() NotificationsPage {
	return NotificationsPage{
		Title: "Notifications",
		Notifications: []Notification{
			{ID: 1, Type: "warning", Title: "Heavy Rain Alert", Message: "Heavy rainfall expected in Dhaka from 2:00 PM to 6:00 PM", Time: "30 mins ago"},
			{ID: 2, Type: "info", Title: "UV Index High", Message: "UV index will reach 8 tomorrow. Use sun protection.", Time: "1 hour ago"},
			{ID: 3, Type: "normal", Title: "Weather Update", Message: "Temperature will drop by 5°C tonight", Time: "2 hours ago"},
		},
	}
}
