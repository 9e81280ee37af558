package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/settings"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const commandTimeout = 30 * time.Second

func homeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show current weather and the forecast for your location",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			// Failures surface through the rendered banner or location prompt.
			bootstrap(ctx)
			return printHome(cmd.OutOrStdout(), dash.views.Home(dash.session.State(), dash.prefs.Settings()))
		},
	}
}

func calendarCmd() *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show the weather calendar for a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if len(args) == 1 {
				month, err := time.ParseInLocation("2006-01", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q, expected YYYY-MM", args[0])
				}
				dash.calendar.SetMonth(month)
			} else if day != "" {
				if d, err := time.ParseInLocation("2006-01-02", day, time.Local); err == nil {
					dash.calendar.SetMonth(d)
				}
			}
			bootstrap(ctx)

			prefs := dash.prefs.Settings()
			lang := dash.prefs.DisplayLanguage()
			if day == "" {
				return printCalendar(cmd.OutOrStdout(), dash.views.Calendar(dash.calendar.Grid(), prefs, lang))
			}

			d, err := dash.calendar.Activate(ctx, day)
			if errors.Is(err, calendar.ErrNotActivatable) {
				return fmt.Errorf("cannot show %s: %w", day, err)
			}
			if err != nil {
				return err
			}
			return printDayDetail(cmd.OutOrStdout(), dash.views.DayDetail(d, prefs, lang))
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "Show details for a day of the month (YYYY-MM-DD)")
	return cmd
}

func searchCmd() *cobra.Command {
	var pick int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search locations and optionally switch to one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			results := dash.session.SearchLocations(ctx, args[0])
			if pick == 0 {
				return printSearch(cmd.OutOrStdout(), results)
			}
			if pick < 0 || pick > len(results) {
				return fmt.Errorf("no result #%d for %q (%d found)", pick, args[0], len(results))
			}
			// A failed fetch is shown on the home banner.
			err := dash.session.SelectSearchResult(ctx, results[pick-1])
			if errors.Is(err, settings.ErrInvalidSetting) {
				return settingsFailure(err)
			}
			return printHome(cmd.OutOrStdout(), dash.views.Home(dash.session.State(), dash.prefs.Settings()))
		},
	}
	cmd.Flags().IntVar(&pick, "select", 0, "Switch to the Nth result (1-based) and save it as the default location")
	return cmd
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSettings(cmd.OutOrStdout(), dash.views.Settings(dash.prefs))
		},
	}

	mutate := func(use, short string, nargs int, apply func(p *settings.Store, args []string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := apply(dash.prefs, args); err != nil {
					return settingsFailure(err)
				}
				return printSettings(cmd.OutOrStdout(), dash.views.Settings(dash.prefs))
			},
		}
	}

	cmd.AddCommand(
		mutate("set-name <name>", "Set the display name", 1, func(p *settings.Store, args []string) error {
			return p.UpdateName(args[0])
		}),
		mutate("set-email <email>", "Set the contact email", 1, func(p *settings.Store, args []string) error {
			return p.UpdateEmail(args[0])
		}),
		mutate("set-unit <celsius|fahrenheit>", "Set the temperature unit", 1, func(p *settings.Store, args []string) error {
			return p.SetTemperatureUnit(weather.TemperatureUnit(args[0]))
		}),
		mutate("set-language <ru|en>", "Set the interface language", 1, func(p *settings.Store, args []string) error {
			return p.SetLanguage(i18n.Language(args[0]))
		}),
		mutate("toggle-autodetect", "Toggle location auto-detection", 0, func(p *settings.Store, _ []string) error {
			return p.ToggleAutoDetectLocation()
		}),
		mutate("toggle-alerts", "Toggle weather alerts", 0, func(p *settings.Store, _ []string) error {
			return p.ToggleWeatherAlerts()
		}),
		mutate("toggle-daily", "Toggle the daily forecast notification", 0, func(p *settings.Store, _ []string) error {
			return p.ToggleDailyForecast()
		}),
		mutate("clear-location", "Forget the default location", 0, func(p *settings.Store, _ []string) error {
			return p.UpdateDefaultLocation(nil)
		}),
		setLocationCmd(),
		themeCmd(),
	)
	return cmd
}

func setLocationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-location <lat> <lng> [city] [country]",
		Short: "Switch to a location and save it as the default",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q", args[0])
			}
			lng, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q", args[1])
			}
			loc := weather.Location{Lat: lat, Lng: lng}
			if len(args) > 2 {
				loc.City = args[2]
			}
			if len(args) > 3 {
				loc.Country = args[3]
			}
			if err := dash.validate.Struct(loc); err != nil {
				return settingsFailure(fmt.Errorf("%w: %w", settings.ErrInvalidSetting, err))
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			err = dash.session.ChangeLocation(ctx, loc)
			if errors.Is(err, settings.ErrInvalidSetting) {
				return settingsFailure(err)
			}
			return printHome(cmd.OutOrStdout(), dash.views.Home(dash.session.State(), dash.prefs.Settings()))
		},
	}
}

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Set the theme, or toggle it when no value is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 0 {
				err = dash.prefs.ToggleTheme()
			} else {
				err = dash.prefs.SetTheme(settings.Theme(args[0]))
			}
			if err != nil {
				return settingsFailure(err)
			}
			return printSettings(cmd.OutOrStdout(), dash.views.Settings(dash.prefs))
		},
	}
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDashboard(cmd.OutOrStdout(), dash.views.Dashboard())
		},
	}
}

func notificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show sample notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printNotifications(cmd.OutOrStdout(), dash.views.Notifications())
		},
	}
}

func bootstrap(ctx context.Context) {
	if err := dash.session.InitializeWeatherApp(ctx); err != nil {
		log.Printf("INFO: bootstrap: %v", err)
	}
}

// settingsFailure localizes validation failures.
func settingsFailure(err error) error {
	if errors.Is(err, settings.ErrInvalidSetting) {
		return errors.New(dash.catalog.ValidationMessage(dash.prefs.DisplayLanguage(), err))
	}
	return err
}
