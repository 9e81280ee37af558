package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/i474232898/weather-dashboard/internal/views"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printHome(w io.Writer, h views.Home) error {
	if output == "json" {
		return printJSON(w, h)
	}

	fmt.Fprintf(w, "%s, %s\n", h.Greeting, h.UserName)
	if h.Error != "" {
		fmt.Fprintf(w, "! %s\n", h.Error)
	}
	if h.Modal.Open {
		fmt.Fprintf(w, "Location needed (%s)", h.Modal.State)
		if h.Modal.Error != "" {
			fmt.Fprintf(w, ": %s", h.Modal.Error)
		}
		fmt.Fprintln(w, "\nUse `search <city> --select 1` or `settings set-location <lat> <lng>`.")
	}
	if h.Card == nil {
		return nil
	}

	c := h.Card
	fmt.Fprintf(w, "\n%s, %s\n%s, %s\n", c.Location, c.Country, c.Day, c.Date)
	fmt.Fprintf(w, "%d%s / %d%s  %s (feels like %d%s)\n", c.Temperature, h.Symbol, c.LowTemp, h.Symbol, c.Condition, c.FeelsLike, h.Symbol)

	if hl := h.Highlights; hl != nil {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "\nWind\t%.1f %s\t%s\n", hl.WindSpeed, hl.WindUnit, hl.WindTime)
		fmt.Fprintf(tw, "Humidity\t%.0f%%\t%s\n", hl.Humidity, hl.HumidityDescription)
		fmt.Fprintf(tw, "UV\t%.1f\t%s\n", hl.UVIndex, hl.UVDescription)
		fmt.Fprintf(tw, "Visibility\t%.1f %s\t\n", hl.Visibility, hl.VisibilityUnit)
		fmt.Fprintf(tw, "Sun\t%s\t%s\n", hl.Sunrise, hl.Sunset)
		tw.Flush()
	}

	if len(h.Forecast) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, f := range h.Forecast {
			fmt.Fprintf(tw, "%s\t%s\t%d%s\t%s\n", f.Day, f.Date, f.Temperature, h.Symbol, f.Condition)
		}
		tw.Flush()
	}
	return nil
}

func printCalendar(w io.Writer, p views.CalendarPage) error {
	if output == "json" {
		return printJSON(w, p)
	}

	fmt.Fprintf(w, "%s: %s\n\n", p.Heading, p.Title)
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, d := range p.Weekdays {
		fmt.Fprintf(tw, "%s\t", d)
	}
	fmt.Fprintln(tw)
	for i, c := range p.Cells {
		fmt.Fprintf(tw, "%s\t", calendarCell(c, p.Symbol))
		if i%7 == 6 {
			fmt.Fprintln(tw)
		}
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%s (* %s, + %s)\n", p.Hint, p.Legend[0], p.Legend[1])
	return nil
}

func calendarCell(c views.CalendarCell, symbol string) string {
	if !c.InCurrentMonth {
		return "."
	}
	mark := ""
	switch {
	case c.IsHistorical:
		mark = "*"
	case c.IsFuture:
		mark = "+"
	}
	if c.MaxTemp != nil {
		return fmt.Sprintf("%d%s %d%s", c.Date, mark, *c.MaxTemp, symbol)
	}
	return fmt.Sprintf("%d%s", c.Date, mark)
}

func printDayDetail(w io.Writer, d views.DayDetail) error {
	if output == "json" {
		return printJSON(w, d)
	}

	fmt.Fprintf(w, "%s", d.Title)
	if d.Badge != "" {
		fmt.Fprintf(w, " [%s]", d.Badge)
	}
	fmt.Fprintln(w)
	if !d.HasData {
		fmt.Fprintln(w, strings.Join(d.Notes, "\n"))
		return nil
	}

	fmt.Fprintf(w, "%d%s / %d%s (avg %d%s)  %s\n", d.Max, d.Symbol, d.Min, d.Symbol, d.Avg, d.Symbol, d.Condition)
	if o := d.Overview; o != nil {
		fmt.Fprintf(w, "Humidity %.0f%%  UV %.1f  Wind %.1f %s %s\n", o.Humidity, o.UV, o.WindSpeed, o.WindUnit, o.WindDir)
		fmt.Fprintf(w, "Visibility %.1f %s  Precipitation %.1f %s  Rain %.0f%%  Snow %.0f%%\n",
			o.Visibility, o.VisUnit, o.Precipitation, o.PrecipUnit, o.ChanceOfRain, o.ChanceOfSnow)
	}
	if len(d.Hourly) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, h := range d.Hourly {
			fmt.Fprintf(tw, "%s\t%d%s\t%s\t%.0f%%\n", h.Time, h.Temp, d.Symbol, h.Condition, h.Humidity)
		}
		tw.Flush()
	}
	if a := d.Astro; a != nil {
		fmt.Fprintf(w, "\nSun %s - %s  Moon %s - %s  %s (%s%%)\n", a.Sunrise, a.Sunset, a.Moonrise, a.Moonset, a.MoonPhase, a.MoonIllumination)
	}
	return nil
}

func printSearch(w io.Writer, results []weather.SearchResult) error {
	if output == "json" {
		return printJSON(w, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "No locations found")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f,%.2f\n", i+1, r.Name, r.Region, r.Country, r.Lat, r.Lon)
	}
	return tw.Flush()
}

func printSettings(w io.Writer, p views.SettingsPage) error {
	if output == "json" {
		return printJSON(w, p)
	}

	s := p.Settings
	location := "-"
	if s.DefaultLocation != nil {
		location = s.DefaultLocation.Key()
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", s.Name)
	fmt.Fprintf(tw, "Email\t%s\n", s.Email)
	fmt.Fprintf(tw, "Default location\t%s\n", location)
	fmt.Fprintf(tw, "Auto-detect location\t%t\n", s.AutoDetectLocation)
	fmt.Fprintf(tw, "Temperature unit\t%s (%s)\n", s.TemperatureUnit, p.Symbol)
	fmt.Fprintf(tw, "Language\t%s\n", s.Language)
	fmt.Fprintf(tw, "Weather alerts\t%t\n", s.Notifications.WeatherAlerts)
	fmt.Fprintf(tw, "Daily forecast\t%t\n", s.Notifications.DailyForecast)
	fmt.Fprintf(tw, "Theme\t%s\n", p.Theme)
	return tw.Flush()
}

func printDashboard(w io.Writer, p views.DashboardPage) error {
	if output == "json" {
		return printJSON(w, p)
	}
	fmt.Fprintln(w, p.Title)
	for _, c := range p.Cards {
		fmt.Fprintf(w, "  %s: %s\n", c.Title, c.Description)
	}
	return nil
}

func printNotifications(w io.Writer, p views.NotificationsPage) error {
	if output == "json" {
		return printJSON(w, p)
	}
	fmt.Fprintln(w, p.Title)
	for _, n := range p.Notifications {
		fmt.Fprintf(w, "  [%s] %s (%s)\n    %s\n", n.Type, n.Title, n.Time, n.Message)
	}
	return nil
}
