package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Location is a point for which weather is requested. City/Country are
// optional and only used for display.
type Location struct {
	Lat     float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lng     float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
	City    string  `json:"city,omitempty" yaml:"city,omitempty"`
	Country string  `json:"country,omitempty" yaml:"country,omitempty"`
}

// Query returns the "lat,lng" form the provider accepts for q.
func (l Location) Query() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// Key returns a canonical string key for logging and indexing.
func (l Location) Key() string {
	if l.City != "" {
		return fmt.Sprintf("%s:%s@%s", l.City, l.Country, l.Query())
	}
	return l.Query()
}

// Condition is the provider's textual condition with its icon and code.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// Place is the resolved location block of a provider response.
type Place struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Localtime string  `json:"localtime"`
}

// Location converts the provider's place into a Location.
func (p Place) Location() Location {
	return Location{Lat: p.Lat, Lng: p.Lon, City: p.Name, Country: p.Country}
}

// Current holds current conditions.
type Current struct {
	TempC       float64   `json:"temp_c"`
	TempF       float64   `json:"temp_f"`
	Condition   Condition `json:"condition"`
	WindMph     float64   `json:"wind_mph"`
	WindKph     float64   `json:"wind_kph"`
	WindDir     string    `json:"wind_dir"`
	PressureMb  float64   `json:"pressure_mb"`
	Humidity    float64   `json:"humidity"`
	UV          float64   `json:"uv"`
	VisKm       float64   `json:"vis_km"`
	VisMiles    float64   `json:"vis_miles"`
	PrecipMm    float64   `json:"precip_mm"`
	PrecipIn    float64   `json:"precip_in"`
	FeelslikeC  float64   `json:"feelslike_c"`
	FeelslikeF  float64   `json:"feelslike_f"`
	LastUpdated string    `json:"last_updated,omitempty"`
}

// Day holds per-day aggregates.
type Day struct {
	MaxtempC          float64   `json:"maxtemp_c"`
	MaxtempF          float64   `json:"maxtemp_f"`
	MintempC          float64   `json:"mintemp_c"`
	MintempF          float64   `json:"mintemp_f"`
	AvgtempC          float64   `json:"avgtemp_c"`
	AvgtempF          float64   `json:"avgtemp_f"`
	Condition         Condition `json:"condition"`
	TotalprecipMm     float64   `json:"totalprecip_mm"`
	TotalprecipIn     float64   `json:"totalprecip_in"`
	DailyChanceOfRain float64   `json:"daily_chance_of_rain"`
	DailyChanceOfSnow float64   `json:"daily_chance_of_snow"`
	UV                float64   `json:"uv"`
	Avghumidity       float64   `json:"avghumidity"`
	MaxwindKph        float64   `json:"maxwind_kph"`
	MaxwindMph        float64   `json:"maxwind_mph"`
	AvgvisKm          float64   `json:"avgvis_km"`
	AvgvisMiles       float64   `json:"avgvis_miles"`
}

// Astro holds sun and moon data for a day.
type Astro struct {
	Sunrise          string     `json:"sunrise"`
	Sunset           string     `json:"sunset"`
	Moonrise         string     `json:"moonrise"`
	Moonset          string     `json:"moonset"`
	MoonPhase        string     `json:"moon_phase"`
	MoonIllumination FlexString `json:"moon_illumination"`
}

// Hour is one hourly forecast entry.
type Hour struct {
	Time      string    `json:"time"`
	TempC     float64   `json:"temp_c"`
	TempF     float64   `json:"temp_f"`
	Condition Condition `json:"condition"`
	WindKph   float64   `json:"wind_kph"`
	WindMph   float64   `json:"wind_mph"`
	WindDir   string    `json:"wind_dir"`
	Humidity  float64   `json:"humidity"`
	PrecipMm  float64   `json:"precip_mm"`
	UV        float64   `json:"uv"`
	VisKm     float64   `json:"vis_km"`
	VisMiles  float64   `json:"vis_miles"`
}

// ForecastDay is one day of a forecast/history/future response.
type ForecastDay struct {
	Date  string `json:"date"`
	Day   Day    `json:"day"`
	Astro *Astro `json:"astro,omitempty"`
	Hour  []Hour `json:"hour,omitempty"`
}

// Forecast wraps the ordered day entries.
type Forecast struct {
	ForecastDay []ForecastDay `json:"forecastday"`
}

// WeatherSnapshot is a full provider payload for one location: current
// conditions plus an ordered forecast.
type WeatherSnapshot struct {
	Location Place    `json:"location"`
	Current  Current  `json:"current"`
	Forecast Forecast `json:"forecast"`
}

// Day returns the forecast entry whose date equals isoDate.
func (s *WeatherSnapshot) Day(isoDate string) (ForecastDay, bool) {
	if s == nil {
		return ForecastDay{}, false
	}
	for _, d := range s.Forecast.ForecastDay {
		if d.Date == isoDate {
			return d, true
		}
	}
	return ForecastDay{}, false
}

// Today returns the first forecast entry, if any.
func (s *WeatherSnapshot) Today() (ForecastDay, bool) {
	if s == nil || len(s.Forecast.ForecastDay) == 0 {
		return ForecastDay{}, false
	}
	return s.Forecast.ForecastDay[0], true
}

// SearchResult is one entry of a location search.
type SearchResult struct {
	ID      int64   `json:"id,omitempty"`
	Name    string  `json:"name"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Location converts a search hit into a Location.
func (r SearchResult) Location() Location {
	return Location{Lat: r.Lat, Lng: r.Lon, City: r.Name, Country: r.Country}
}

// AstronomyResponse is the astronomy.json payload.
type AstronomyResponse struct {
	Location  Place `json:"location"`
	Astronomy struct {
		Astro Astro `json:"astro"`
	} `json:"astronomy"`
}

// FlexString accepts either a JSON string or a JSON number. The provider
// has emitted moon_illumination in both forms.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
