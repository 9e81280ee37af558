package views

import (
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/session"
	"github.com/i474232898/weather-dashboard/internal/settings"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

func newRenderer(t *testing.T, now time.Time) *Renderer {
	t.Helper()
	c, err := i18n.NewCatalog()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(c)
	r.Now = func() time.Time { return now }
	return r
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want i18n.Key
	}{
		{0, i18n.GoodNight},
		{5, i18n.GoodNight},
		{6, i18n.GoodMorning},
		{11, i18n.GoodMorning},
		{12, i18n.GoodAfternoon},
		{16, i18n.GoodAfternoon},
		{17, i18n.GoodEvening},
		{21, i18n.GoodEvening},
		{22, i18n.GoodNight},
		{23, i18n.GoodNight},
	}
	for _, tt := range tests {
		if got := Greeting(tt.hour); got != tt.want {
			t.Errorf("Greeting(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestDescriptions(t *testing.T) {
	if humidityKey(71) != i18n.HighHumidity || humidityKey(70) != i18n.NormalHumidity ||
		humidityKey(41) != i18n.NormalHumidity || humidityKey(40) != i18n.LowHumidity {
		t.Fatal("unexpected humidity thresholds")
	}
	if uvKey(7) != i18n.HighUV || uvKey(6) != i18n.ModerateUV || uvKey(4) != i18n.ModerateUV || uvKey(3) != i18n.LowUV {
		t.Fatal("unexpected uv thresholds")
	}
}

func homeSnapshot() *weather.WeatherSnapshot {
	return &weather.WeatherSnapshot{
		Location: weather.Place{Name: "Moscow", Country: "Russia"},
		Current: weather.Current{
			TempC:      20.4,
			FeelslikeC: 18.6,
			Humidity:   75,
			UV:         5,
			WindKph:    14.4,
			VisKm:      10,
			Condition:  weather.Condition{Text: "Partly cloudy", Icon: "//cdn/116.png"},
		},
		Forecast: weather.Forecast{ForecastDay: []weather.ForecastDay{
			{Date: "2025-03-10", Day: weather.Day{MaxtempC: 22, MintempC: 10, Condition: weather.Condition{Text: "Partly Cloudy"}},
				Astro: &weather.Astro{Sunrise: "06:45 AM", Sunset: "06:10 PM"}},
			{Date: "2025-03-11", Day: weather.Day{MaxtempC: 25.5, Condition: weather.Condition{Text: "Sunny"}}},
		}},
	}
}

func TestHomeCardAndHighlights(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	r := newRenderer(t, now)

	prefs := settings.Defaults()
	prefs.TemperatureUnit = weather.Fahrenheit
	st := session.State{Snapshot: homeSnapshot(), Language: i18n.EN}

	h := r.Home(st, prefs)
	if h.Greeting != "Good morning" {
		t.Fatalf("unexpected greeting %q", h.Greeting)
	}
	if h.Symbol != "°F" {
		t.Fatalf("unexpected symbol %q", h.Symbol)
	}
	if h.Card == nil || h.Card.Temperature != 69 || h.Card.LowTemp != 50 || h.Card.FeelsLike != 65 {
		t.Fatalf("unexpected card %+v", h.Card)
	}
	if h.Highlights.HumidityDescription != "High humidity" || h.Highlights.UVDescription != "Moderate UV" {
		t.Fatalf("unexpected highlights %+v", h.Highlights)
	}
	if h.Highlights.Sunrise != "06:45 AM" || h.Highlights.WindTime != "9:30 AM" {
		t.Fatalf("unexpected highlight times %+v", h.Highlights)
	}
	if len(h.Forecast) != 2 || h.Forecast[0].Day != "Today" || h.Forecast[1].Day != "Tue" {
		t.Fatalf("unexpected forecast %+v", h.Forecast)
	}
	if h.Forecast[1].Temperature != 78 || h.Forecast[0].Condition != "partly-cloudy" {
		t.Fatalf("unexpected forecast values %+v", h.Forecast)
	}
}

func TestHomeFallbacks(t *testing.T) {
	r := newRenderer(t, time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC))

	snap := homeSnapshot()
	snap.Forecast.ForecastDay = nil
	h := r.Home(session.State{Snapshot: snap, Language: i18n.RU}, settings.Defaults())

	if h.Greeting != "Доброй ночи" {
		t.Fatalf("unexpected greeting %q", h.Greeting)
	}
	if h.Card.LowTemp != 15 {
		t.Fatalf("expected current-5 fallback, got %d", h.Card.LowTemp)
	}
	if h.Highlights.Sunrise != "6:00 AM" || h.Highlights.Sunset != "6:00 PM" {
		t.Fatalf("expected default sun times, got %s/%s", h.Highlights.Sunrise, h.Highlights.Sunset)
	}
	if len(h.Forecast) != 0 {
		t.Fatal("expected empty forecast")
	}
}

func TestHomeWithoutSnapshot(t *testing.T) {
	r := newRenderer(t, time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC))
	st := session.State{IsLoading: true, Language: i18n.RU, Modal: session.ModalOpen, IsLocationModalOpen: true}

	h := r.Home(st, settings.Defaults())
	if h.Card != nil || h.Highlights != nil {
		t.Fatal("no card without a snapshot")
	}
	if h.LoadingMsg != "Загрузка данных о погоде..." || !h.Modal.Open || h.Modal.State != "open" {
		t.Fatalf("unexpected home %+v", h)
	}
}

func TestCalendarPageConvertsTemperatures(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	r := newRenderer(t, now)
	snap := &weather.WeatherSnapshot{Forecast: weather.Forecast{ForecastDay: []weather.ForecastDay{
		{Date: "2025-03-11", Day: weather.Day{MaxtempC: 20, MintempC: 10, AvgtempC: 15}},
	}}}
	grid := calendar.BuildMonthGrid(now, snap, now)

	prefs := settings.Defaults()
	prefs.TemperatureUnit = weather.Fahrenheit
	page := r.Calendar(grid, prefs, i18n.RU)

	if page.Title != "Март 2025" || page.Month != "2025-03" {
		t.Fatalf("unexpected title %q month %q", page.Title, page.Month)
	}
	if len(page.Weekdays) != 7 || page.Weekdays[0] != "Вс" {
		t.Fatalf("unexpected weekdays %v", page.Weekdays)
	}
	if len(page.Cells) != calendar.GridSize {
		t.Fatalf("expected %d cells, got %d", calendar.GridSize, len(page.Cells))
	}
	cell := page.Cells[grid.Index("2025-03-11")]
	if cell.MaxTemp == nil || *cell.MaxTemp != 68 {
		t.Fatalf("expected 68°F, got %v", cell.MaxTemp)
	}
	if grid.Days[grid.Index("2025-03-11")].Temperature.Max != 20 {
		t.Fatal("grid values must stay in Celsius")
	}
}

func TestDayDetailNotes(t *testing.T) {
	r := newRenderer(t, time.Now())
	prefs := settings.Defaults()

	past := calendar.Day{ISODate: "2025-01-02", Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), IsHistorical: true}
	d := r.DayDetail(past, prefs, i18n.EN)
	if d.Badge != "History" || len(d.Notes) != 2 || d.Notes[1] != "Historical data is only available for the last 7 days" {
		t.Fatalf("unexpected historical detail %+v", d)
	}

	future := calendar.Day{ISODate: "2025-05-02", Date: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), IsFuture: true}
	d = r.DayDetail(future, prefs, i18n.EN)
	if d.Badge != "Forecast" || d.Notes[1] != "Forecast is only available for the next 14 days" {
		t.Fatalf("unexpected future detail %+v", d)
	}
}

func TestDayDetailWithData(t *testing.T) {
	r := newRenderer(t, time.Now())
	day := calendar.Day{
		ISODate:     "2025-03-11",
		Date:        time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		HasData:     true,
		IsFuture:    true,
		Temperature: &calendar.Temperature{Max: 0, Min: -10, Avg: -5},
		Condition:   &weather.Condition{Text: "Snow"},
		Detailed: &calendar.DetailedData{
			Humidity: 80,
			Astro:    &calendar.Astro{Sunrise: "06:30", Sunset: "18:15", MoonIllumination: "40"},
			Hourly:   []calendar.HourlyEntry{{Time: "2025-03-11 15:00", Temp: 1}},
		},
	}

	prefs := settings.Defaults()
	prefs.TemperatureUnit = weather.Fahrenheit
	d := r.DayDetail(day, prefs, i18n.EN)

	if d.Max != 32 || d.Min != 14 || d.Avg != 23 {
		t.Fatalf("unexpected temps %d/%d/%d", d.Max, d.Min, d.Avg)
	}
	if d.Astro == nil || d.Astro.Sunrise != "6:30 AM" || d.Astro.Sunset != "6:15 PM" {
		t.Fatalf("unexpected astro %+v", d.Astro)
	}
	if len(d.Hourly) != 1 || d.Hourly[0].Time != "15:00" || d.Hourly[0].Temp != 34 {
		t.Fatalf("unexpected hourly %+v", d.Hourly)
	}
	if d.Notes != nil {
		t.Fatal("no notes when data is present")
	}
}

func TestStaticPages(t *testing.T) {
	r := newRenderer(t, time.Now())
	if len(r.Dashboard().Cards) != 3 {
		t.Fatal("expected three dashboard cards")
	}
	if len(r.Notifications().Notifications) != 3 {
		t.Fatal("expected three sample notifications")
	}
}
