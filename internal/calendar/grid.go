// Package calendar derives the six-week month grid from the weather
// snapshot and enriches single days on demand.
package calendar

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// GridSize is the number of cells in a month grid: six full weeks.
const GridSize = 42

type Temperature struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
}

type Astro struct {
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	MoonPhase        string `json:"moonPhase"`
	MoonIllumination string `json:"moonIllumination"`
}

type HourlyEntry struct {
	Time          string  `json:"time"`
	Temp          float64 `json:"temp"`
	Condition     string  `json:"condition"`
	Icon          string  `json:"icon"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	Precipitation float64 `json:"precipitation"`
}

// DetailedData carries the per-day aggregates shown in the day detail.
type DetailedData struct {
	Humidity      float64       `json:"humidity"`
	UV            float64       `json:"uv"`
	WindSpeed     float64       `json:"windSpeed"`
	WindDir       string        `json:"windDir"`
	Precipitation float64       `json:"precipitation"`
	ChanceOfRain  float64       `json:"chanceOfRain"`
	ChanceOfSnow  float64       `json:"chanceOfSnow"`
	Visibility    float64       `json:"visibility"`
	Astro         *Astro        `json:"astro,omitempty"`
	Hourly        []HourlyEntry `json:"hourly,omitempty"`
}

// Day is one grid cell. Temperatures are Celsius as delivered by the
// provider.
type Day struct {
	Date           time.Time          `json:"-"`
	DayOfMonth     int                `json:"date"`
	InCurrentMonth bool               `json:"isCurrentMonth"`
	ISODate        string             `json:"fullDate"`
	Temperature    *Temperature       `json:"temperature,omitempty"`
	Condition      *weather.Condition `json:"condition,omitempty"`
	HasData        bool               `json:"hasData"`
	IsHistorical   bool               `json:"isHistorical"`
	IsFuture       bool               `json:"isFuture"`
	Detailed       *DetailedData      `json:"detailedData,omitempty"`
}

// Grid is a month of cells, Sunday first.
type Grid struct {
	Month time.Time `json:"month"`
	Days  []Day     `json:"days"`
}

// Index returns the position of the cell with the given ISO date, or -1.
func (g Grid) Index(isoDate string) int {
	for i := range g.Days {
		if g.Days[i].ISODate == isoDate {
			return i
		}
	}
	return -1
}

func (g Grid) clone() Grid {
	out := Grid{Month: g.Month, Days: make([]Day, len(g.Days))}
	copy(out.Days, g.Days)
	return out
}

// MonthStart returns midnight on the first of t's month in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildMonthGrid lays out the 42 days starting from the Sunday on or before
// the first of anchor's month. Days are classified against the local
// midnight of now and carry snapshot data when the ISO dates match.
func BuildMonthGrid(anchor time.Time, snap *weather.WeatherSnapshot, now time.Time) Grid {
	first := MonthStart(anchor)
	tz := first.Location()
	today := midnight(now.In(tz))
	offset := int(first.Weekday())

	grid := Grid{Month: first, Days: make([]Day, 0, GridSize)}
	for i := 0; i < GridSize; i++ {
		date := time.Date(first.Year(), first.Month(), 1-offset+i, 0, 0, 0, 0, tz)
		day := Day{
			Date:           date,
			DayOfMonth:     date.Day(),
			InCurrentMonth: date.Month() == first.Month(),
			ISODate:        date.Format(time.DateOnly),
			IsHistorical:   date.Before(today),
			IsFuture:       date.After(today),
		}
		if fd, ok := snap.Day(day.ISODate); ok {
			day = withData(day, fd)
		}
		grid.Days = append(grid.Days, day)
	}
	return grid
}

// withData returns day enriched with a provider day entry.
func withData(day Day, fd weather.ForecastDay) Day {
	cond := fd.Day.Condition
	day.HasData = true
	day.Temperature = &Temperature{
		Max: fd.Day.MaxtempC,
		Min: fd.Day.MintempC,
		Avg: fd.Day.AvgtempC,
	}
	day.Condition = &cond
	day.Detailed = &DetailedData{
		Humidity:      fd.Day.Avghumidity,
		UV:            fd.Day.UV,
		WindSpeed:     fd.Day.MaxwindKph,
		Precipitation: fd.Day.TotalprecipMm,
		ChanceOfRain:  fd.Day.DailyChanceOfRain,
		ChanceOfSnow:  fd.Day.DailyChanceOfSnow,
		Visibility:    fd.Day.AvgvisKm,
	}
	if fd.Astro != nil {
		day.Detailed.Astro = &Astro{
			Sunrise:          fd.Astro.Sunrise,
			Sunset:           fd.Astro.Sunset,
			Moonrise:         fd.Astro.Moonrise,
			Moonset:          fd.Astro.Moonset,
			MoonPhase:        fd.Astro.MoonPhase,
			MoonIllumination: string(fd.Astro.MoonIllumination),
		}
	}
	if len(fd.Hour) > 0 {
		day.Detailed.WindDir = strongestWindDir(fd.Hour)
		day.Detailed.Hourly = make([]HourlyEntry, 0, len(fd.Hour))
		for _, h := range fd.Hour {
			day.Detailed.Hourly = append(day.Detailed.Hourly, HourlyEntry{
				Time:          h.Time,
				Temp:          h.TempC,
				Condition:     h.Condition.Text,
				Icon:          h.Condition.Icon,
				Humidity:      h.Humidity,
				WindSpeed:     h.WindKph,
				Precipitation: h.PrecipMm,
			})
		}
	}
	return day
}

// strongestWindDir is the direction of the windiest hour.
func strongestWindDir(hours []weather.Hour) string {
	best := hours[0]
	for _, h := range hours[1:] {
		if h.WindKph > best.WindKph {
			best = h
		}
	}
	return best.WindDir
}
