package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/session"
	"github.com/i474232898/weather-dashboard/internal/settings"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/views"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

// app holds everything a command needs. It is built once per invocation.
type app struct {
	cfg      *config.AppConfig
	storage  store.Storage
	catalog  *i18n.Catalog
	validate *validator.Validate
	prefs    *settings.Store
	session  *session.Session
	calendar *calendar.Calendar
	views    *views.Renderer
}

var (
	dash   *app
	output string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "weather-dashboard",
		Short:         "Personal weather dashboard",
		Long:          "Shows current weather, a forecast and a monthly weather calendar for your location",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("unknown output format %q", output)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			dash, err = newApp(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if dash != nil {
				dash.close()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")

	rootCmd.AddCommand(
		serveCmd(),
		homeCmd(),
		calendarCmd(),
		searchCmd(),
		settingsCmd(),
		dashboardCmd(),
		notificationsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(cfg *config.AppConfig) (*app, error) {
	storage, err := store.Open(cfg.StorageDriver, cfg.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	catalog, err := i18n.NewCatalog()
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to build translations: %w", err)
	}
	validate := validator.New()
	if err := catalog.RegisterValidator(validate); err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to register validator translations: %w", err)
	}

	prefs := settings.NewStore(storage, validate)
	if err := prefs.Hydrate(); err != nil {
		log.Printf("INFO: discarded stored settings: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	gateway := providers.NewWeatherAPIGateway(httpClient, cfg.WeatherAPIKey, cfg.WeatherAPIBaseURL, providers.RateConfig{
		RPS:   cfg.ProviderRPS,
		Burst: cfg.ProviderBurst,
	})

	sess := session.New(
		gateway,
		newGeolocator(cfg, httpClient),
		geo.NewResolver(newReverseGeocoder(cfg, httpClient)),
		prefs,
		catalog,
		session.Options{ForecastDays: cfg.ForecastDays},
	)
	log.Printf("INFO: session %s ready (storage=%s, geolocation=%s)", sess.ID(), cfg.StorageDriver, cfg.GeolocationMode)

	return &app{
		cfg:      cfg,
		storage:  storage,
		catalog:  catalog,
		validate: validate,
		prefs:    prefs,
		session:  sess,
		calendar: calendar.New(sess, gateway, calendar.Options{
			FallbackForecastDays: cfg.FallbackForecastDays,
			Policy:               cfg.FuturePolicy,
		}),
		views: views.NewRenderer(catalog),
	}, nil
}

func (a *app) close() {
	if err := a.storage.Close(); err != nil {
		log.Printf("ERROR: closing storage: %v", err)
	}
}

func newGeolocator(cfg *config.AppConfig, client *http.Client) geo.Geolocator {
	switch cfg.GeolocationMode {
	case config.GeoFixed:
		return geo.FixedGeolocator{Lat: cfg.DeviceLat, Lng: cfg.DeviceLng}
	case config.GeoDenied:
		return geo.DeniedGeolocator{}
	case config.GeoOff:
		return geo.UnsupportedGeolocator{}
	default:
		return geo.NewIPGeolocator(client, cfg.IPGeoURL, geo.DefaultOptions())
	}
}

// Google reverse geocoding is used when a key is configured; Nominatim
// needs none.
func newReverseGeocoder(cfg *config.AppConfig, client *http.Client) geo.ReverseGeocoder {
	if cfg.GoogleGeocoderAPIKey != "" {
		return geo.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)
	}
	return geo.NewNominatimGeocoder(client, cfg.NominatimBaseURL)
}
