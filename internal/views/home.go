package views

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/session"
	"github.com/i474232898/weather-dashboard/internal/settings"
)

const (
	defaultSunrise = "6:00 AM"
	defaultSunset  = "6:00 PM"
	lowTempOffset  = 5
)

type WeatherCard struct {
	Location    string `json:"location"`
	Country     string `json:"country"`
	Day         string `json:"day"`
	Date        string `json:"date"`
	Temperature int    `json:"temperature"`
	LowTemp     int    `json:"lowTemp"`
	FeelsLike   int    `json:"feelsLike"`
	Condition   string `json:"condition"`
	Icon        string `json:"icon"`
}

type Highlights struct {
	WindSpeed           float64 `json:"windSpeed"`
	WindUnit            string  `json:"windUnit"`
	WindTime            string  `json:"windTime"`
	Humidity            float64 `json:"humidity"`
	HumidityDescription string  `json:"humidityDescription"`
	UVIndex             float64 `json:"uvIndex"`
	UVDescription       string  `json:"uvDescription"`
	Visibility          float64 `json:"visibility"`
	VisibilityUnit      string  `json:"visibilityUnit"`
	Sunrise             string  `json:"sunrise"`
	Sunset              string  `json:"sunset"`
}

type ForecastItem struct {
	Day         string `json:"day"`
	Date        string `json:"date"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Icon        string `json:"icon"`
}

type LocationModal struct {
	Open    bool   `json:"open"`
	State   string `json:"state"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

type Home struct {
	Units
	UserName   string         `json:"userName"`
	Greeting   string         `json:"greeting"`
	Loading    bool           `json:"loading"`
	LoadingMsg string         `json:"loadingMessage,omitempty"`
	Error      string         `json:"error,omitempty"`
	RetryLabel string         `json:"retryLabel,omitempty"`
	Card       *WeatherCard   `json:"card,omitempty"`
	Highlights *Highlights    `json:"highlights,omitempty"`
	Forecast   []ForecastItem `json:"forecast"`
	Modal      LocationModal  `json:"locationModal"`
}

// Home renders the landing page from the session state.
func (r *Renderer) Home(st session.State, prefs settings.UserSettings) Home {
	lang := st.Language
	now := r.Now()

	h := Home{
		Units:    unitsFor(prefs, lang),
		UserName: prefs.Name,
		Greeting: r.catalog.T(lang, Greeting(now.Hour())),
		Loading:  st.IsLoading,
		Error:    st.Error,
		Forecast: []ForecastItem{},
		Modal: LocationModal{
			Open:    st.IsLocationModalOpen,
			State:   st.Modal.String(),
			Loading: st.IsLocationLoading,
			Error:   st.LocationError,
		},
	}
	if st.IsLoading {
		h.LoadingMsg = r.catalog.T(lang, i18n.LoadingWeatherData)
	}
	if st.Error != "" {
		h.RetryLabel = r.catalog.T(lang, i18n.TryAgain)
	}

	snap := st.Snapshot
	if snap == nil {
		return h
	}
	unit := prefs.TemperatureUnit
	cur := snap.Current
	today, hasToday := snap.Today()

	low := cur.TempC - lowTempOffset
	if hasToday {
		low = today.Day.MintempC
	}
	h.Card = &WeatherCard{
		Location:    snap.Location.Name,
		Country:     snap.Location.Country,
		Day:         r.catalog.WeekdayWide(lang, now.Weekday()),
		Date:        r.catalog.FormatDate(lang, now),
		Temperature: temp(cur.TempC, unit),
		LowTemp:     temp(low, unit),
		FeelsLike:   temp(cur.FeelslikeC, unit),
		Condition:   cur.Condition.Text,
		Icon:        cur.Condition.Icon,
	}

	sunrise, sunset := defaultSunrise, defaultSunset
	if hasToday && today.Astro != nil {
		if today.Astro.Sunrise != "" {
			sunrise = today.Astro.Sunrise
		}
		if today.Astro.Sunset != "" {
			sunset = today.Astro.Sunset
		}
	}
	clock := i18n.FormatTime(now.Format("15:04"), lang)
	h.Highlights = &Highlights{
		WindSpeed:           cur.WindKph,
		WindUnit:            r.catalog.T(lang, i18n.KmPerHour),
		WindTime:            clock,
		Humidity:            cur.Humidity,
		HumidityDescription: r.catalog.T(lang, humidityKey(cur.Humidity)),
		UVIndex:             cur.UV,
		UVDescription:       r.catalog.T(lang, uvKey(cur.UV)),
		Visibility:          cur.VisKm,
		VisibilityUnit:      r.catalog.T(lang, i18n.Kilometres),
		Sunrise:             sunrise,
		Sunset:              sunset,
	}

	for i, fd := range snap.Forecast.ForecastDay {
		label := r.catalog.T(lang, i18n.Today)
		if i > 0 {
			if d, err := time.Parse(time.DateOnly, fd.Date); err == nil {
				label = r.catalog.WeekdayShort(lang, d.Weekday())
			} else {
				label = fd.Date
			}
		}
		h.Forecast = append(h.Forecast, ForecastItem{
			Day:         label,
			Date:        fd.Date,
			Temperature: temp(fd.Day.MaxtempC, unit),
			Condition:   conditionSlug(fd.Day.Condition.Text),
			Icon:        fd.Day.Condition.Icon,
		})
	}
	return h
}
