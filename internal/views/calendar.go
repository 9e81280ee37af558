package views

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/settings"
)

type CalendarCell struct {
	Date           int    `json:"date"`
	ISODate        string `json:"fullDate"`
	InCurrentMonth bool   `json:"isCurrentMonth"`
	HasData        bool   `json:"hasData"`
	IsHistorical   bool   `json:"isHistorical"`
	IsFuture       bool   `json:"isFuture"`
	MaxTemp        *int   `json:"maxTemp,omitempty"`
	Condition      string `json:"condition,omitempty"`
	Icon           string `json:"icon,omitempty"`
}

type CalendarPage struct {
	Units
	Title    string         `json:"title"`
	Heading  string         `json:"heading"`
	Month    string         `json:"month"`
	Weekdays []string       `json:"weekdays"`
	Cells    []CalendarCell `json:"cells"`
	Hint     string         `json:"hint"`
	Legend   []string       `json:"legend"`
}

// Calendar renders a month grid. Temperatures are converted here, not in
// the grid.
func (r *Renderer) Calendar(grid calendar.Grid, prefs settings.UserSettings, lang i18n.Language) CalendarPage {
	page := CalendarPage{
		Units:    unitsFor(prefs, lang),
		Title:    capitalize(r.catalog.Month(lang, grid.Month.Month())) + " " + grid.Month.Format("2006"),
		Heading:  r.catalog.T(lang, i18n.WeatherCalendar),
		Month:    grid.Month.Format("2006-01"),
		Weekdays: make([]string, 0, 7),
		Cells:    make([]CalendarCell, 0, len(grid.Days)),
		Hint:     r.catalog.T(lang, i18n.ClickDayForDetails),
		Legend:   []string{r.catalog.T(lang, i18n.History), r.catalog.T(lang, i18n.Forecast)},
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		page.Weekdays = append(page.Weekdays, r.catalog.WeekdayShort(lang, d))
	}

	for _, day := range grid.Days {
		cell := CalendarCell{
			Date:           day.DayOfMonth,
			ISODate:        day.ISODate,
			InCurrentMonth: day.InCurrentMonth,
			HasData:        day.HasData,
			IsHistorical:   day.IsHistorical,
			IsFuture:       day.IsFuture,
		}
		if day.InCurrentMonth && day.HasData && day.Temperature != nil {
			hi := temp(day.Temperature.Max, prefs.TemperatureUnit)
			cell.MaxTemp = &hi
		}
		if day.Condition != nil {
			cell.Condition = day.Condition.Text
			cell.Icon = day.Condition.Icon
		}
		page.Cells = append(page.Cells, cell)
	}
	return page
}

type Overview struct {
	Humidity      float64 `json:"humidity"`
	UV            float64 `json:"uv"`
	WindSpeed     float64 `json:"windSpeed"`
	WindUnit      string  `json:"windUnit"`
	WindDir       string  `json:"windDir,omitempty"`
	Visibility    float64 `json:"visibility"`
	VisUnit       string  `json:"visibilityUnit"`
	Precipitation float64 `json:"precipitation"`
	PrecipUnit    string  `json:"precipitationUnit"`
	ChanceOfRain  float64 `json:"chanceOfRain"`
	ChanceOfSnow  float64 `json:"chanceOfSnow"`
}

type HourlyRow struct {
	Time      string  `json:"time"`
	Temp      int     `json:"temp"`
	Condition string  `json:"condition"`
	Icon      string  `json:"icon"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"windSpeed"`
}

type AstroView struct {
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	MoonPhase        string `json:"moonPhase"`
	MoonIllumination string `json:"moonIllumination"`
}

type DayDetail struct {
	Units
	Title     string      `json:"title"`
	ISODate   string      `json:"fullDate"`
	Badge     string      `json:"badge,omitempty"`
	HasData   bool        `json:"hasData"`
	Max       int         `json:"max"`
	Min       int         `json:"min"`
	Avg       int         `json:"avg"`
	Condition string      `json:"condition,omitempty"`
	Icon      string      `json:"icon,omitempty"`
	Overview  *Overview   `json:"overview,omitempty"`
	Hourly    []HourlyRow `json:"hourly,omitempty"`
	Astro     *AstroView  `json:"astro,omitempty"`
	Notes     []string    `json:"notes,omitempty"`
}

// DayDetail renders the detail panel for an activated cell.
func (r *Renderer) DayDetail(day calendar.Day, prefs settings.UserSettings, lang i18n.Language) DayDetail {
	unit := prefs.TemperatureUnit
	out := DayDetail{
		Units:   unitsFor(prefs, lang),
		Title:   r.catalog.FormatDateFull(lang, day.Date),
		ISODate: day.ISODate,
		HasData: day.HasData,
	}
	switch {
	case day.IsHistorical:
		out.Badge = r.catalog.T(lang, i18n.History)
	case day.IsFuture:
		out.Badge = r.catalog.T(lang, i18n.Forecast)
	}

	if !day.HasData {
		note := i18n.ForecastDataNote
		if day.IsHistorical {
			note = i18n.HistoricalDataNote
		}
		out.Notes = []string{r.catalog.T(lang, i18n.DataUnavailable), r.catalog.T(lang, note)}
		return out
	}

	if day.Temperature != nil {
		out.Max = temp(day.Temperature.Max, unit)
		out.Min = temp(day.Temperature.Min, unit)
		out.Avg = temp(day.Temperature.Avg, unit)
	}
	if day.Condition != nil {
		out.Condition = day.Condition.Text
		out.Icon = day.Condition.Icon
	}

	d := day.Detailed
	if d == nil {
		return out
	}
	out.Overview = &Overview{
		Humidity:      d.Humidity,
		UV:            d.UV,
		WindSpeed:     d.WindSpeed,
		WindUnit:      r.catalog.T(lang, i18n.KmPerHour),
		WindDir:       d.WindDir,
		Visibility:    d.Visibility,
		VisUnit:       r.catalog.T(lang, i18n.Kilometres),
		Precipitation: d.Precipitation,
		PrecipUnit:    r.catalog.T(lang, i18n.Millimetre),
		ChanceOfRain:  d.ChanceOfRain,
		ChanceOfSnow:  d.ChanceOfSnow,
	}
	for _, h := range d.Hourly {
		out.Hourly = append(out.Hourly, HourlyRow{
			Time:      hourOf(h.Time),
			Temp:      temp(h.Temp, unit),
			Condition: h.Condition,
			Icon:      h.Icon,
			Humidity:  h.Humidity,
			WindSpeed: h.WindSpeed,
		})
	}
	if a := d.Astro; a != nil {
		out.Astro = &AstroView{
			Sunrise:          i18n.FormatTime(a.Sunrise, lang),
			Sunset:           i18n.FormatTime(a.Sunset, lang),
			Moonrise:         i18n.FormatTime(a.Moonrise, lang),
			Moonset:          i18n.FormatTime(a.Moonset, lang),
			MoonPhase:        a.MoonPhase,
			MoonIllumination: a.MoonIllumination,
		}
	}
	return out
}

// hourOf extracts "15:00" from "2025-03-10 15:00".
func hourOf(stamp string) string {
	if _, clock, ok := strings.Cut(stamp, " "); ok {
		return clock
	}
	return stamp
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
