package httpapi

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/calendar"
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/session"
	"github.com/i474232898/weather-dashboard/internal/settings"
	"github.com/i474232898/weather-dashboard/internal/views"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var defaultValidate = validator.New()

// Services are the collaborators the routes drive. Validate should carry
// the catalog's translations; nil selects an untranslated validator.
type Services struct {
	Session  *session.Session
	Calendar *calendar.Calendar
	Views    *views.Renderer
	Catalog  *i18n.Catalog
	Validate *validator.Validate
}

func (s *Services) validate() *validator.Validate {
	if s.Validate != nil {
		return s.Validate
	}
	return defaultValidate
}

// ErrorHandler renders every error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *Services) {
	v1 := app.Group("/api/v1")
	registerSessionRoutes(v1, svc)
	registerCalendarRoutes(v1, svc)
	registerSettingsRoutes(v1, svc)
	registerViewRoutes(v1, svc)
}

func registerSessionRoutes(r fiber.Router, svc *Services) {
	sess := svc.Session

	r.Get("/session", func(c *fiber.Ctx) error {
		return c.JSON(sess.State())
	})

	// Fetch failures are reported through the state's error banner.
	r.Post("/session/initialize", func(c *fiber.Ctx) error {
		if err := sess.InitializeWeatherApp(c.UserContext()); err != nil {
			log.Printf("INFO: httpapi: initialize: %v", err)
		}
		return c.JSON(sess.State())
	})

	r.Post("/location/request", func(c *fiber.Ctx) error {
		err := sess.RequestLocation(c.UserContext())
		if errors.Is(err, session.ErrLocationInProgress) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			log.Printf("INFO: httpapi: request location: %v", err)
		}
		return c.JSON(sess.State())
	})

	r.Post("/location/deny", func(c *fiber.Ctx) error {
		sess.DenyLocation()
		return c.JSON(sess.State())
	})

	r.Post("/location/show", func(c *fiber.Ctx) error {
		sess.ShowLocationModal()
		return c.JSON(sess.State())
	})

	r.Post("/location/hide", func(c *fiber.Ctx) error {
		sess.HideLocationModal()
		return c.JSON(sess.State())
	})

	r.Put("/location", func(c *fiber.Ctx) error {
		var loc weather.Location
		if err := c.BodyParser(&loc); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid location body")
		}
		if err := svc.validate().Struct(loc); err != nil {
			return badRequest(svc, err)
		}

		err := sess.ChangeLocation(c.UserContext(), loc)
		if errors.Is(err, settings.ErrInvalidSetting) {
			return badRequest(svc, err)
		}
		if err != nil {
			log.Printf("INFO: httpapi: change location: %v", err)
		}
		return c.JSON(sess.State())
	})

	r.Get("/locations/search", func(c *fiber.Ctx) error {
		q := searchQuery{Q: c.Query("q")}
		if err := svc.validate().Struct(q); err != nil {
			return badRequest(svc, err)
		}
		return c.JSON(fiber.Map{
			"query":   q.Q,
			"results": sess.SearchLocations(c.UserContext(), q.Q),
		})
	})
}

type searchQuery struct {
	Q string `validate:"max=100"`
}

type monthQuery struct {
	Month string `validate:"omitempty,datetime=2006-01"`
}

type dayParam struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

func registerCalendarRoutes(r fiber.Router, svc *Services) {
	cal := svc.Calendar
	prefs := svc.Session.Settings()

	r.Get("/calendar", func(c *fiber.Ctx) error {
		q := monthQuery{Month: c.Query("month")}
		if err := svc.validate().Struct(q); err != nil {
			return badRequest(svc, err)
		}
		if q.Month != "" {
			month, _ := time.ParseInLocation("2006-01", q.Month, time.Local)
			cal.SetMonth(month)
		}
		return c.JSON(svc.Views.Calendar(cal.Grid(), prefs.Settings(), prefs.DisplayLanguage()))
	})

	r.Post("/calendar/days/:date", func(c *fiber.Ctx) error {
		p := dayParam{Date: c.Params("date")}
		if err := svc.validate().Struct(p); err != nil {
			return badRequest(svc, err)
		}

		day, err := cal.Activate(c.UserContext(), p.Date)
		if errors.Is(err, calendar.ErrNotActivatable) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load day")
		}
		return c.JSON(svc.Views.DayDetail(day, prefs.Settings(), prefs.DisplayLanguage()))
	})
}

type themeBody struct {
	Theme settings.Theme `json:"theme" validate:"required,oneof=light dark"`
}

func registerSettingsRoutes(r fiber.Router, svc *Services) {
	prefs := svc.Session.Settings()

	r.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(svc.Views.Settings(prefs))
	})

	r.Patch("/settings", func(c *fiber.Ctx) error {
		var patch settings.Patch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid settings body")
		}
		if err := prefs.UpdateUserSettings(patch); err != nil {
			return settingsError(svc, err)
		}
		return c.JSON(svc.Views.Settings(prefs))
	})

	r.Put("/settings/theme", func(c *fiber.Ctx) error {
		var body themeBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid theme body")
		}
		if err := svc.validate().Struct(body); err != nil {
			return badRequest(svc, err)
		}
		if err := prefs.SetTheme(body.Theme); err != nil {
			return settingsError(svc, err)
		}
		return c.JSON(svc.Views.Settings(prefs))
	})

	r.Post("/settings/theme/toggle", func(c *fiber.Ctx) error {
		if err := prefs.ToggleTheme(); err != nil {
			return settingsError(svc, err)
		}
		return c.JSON(svc.Views.Settings(prefs))
	})
}

func registerViewRoutes(r fiber.Router, svc *Services) {
	prefs := svc.Session.Settings()

	r.Get("/views/home", func(c *fiber.Ctx) error {
		return c.JSON(svc.Views.Home(svc.Session.State(), prefs.Settings()))
	})

	r.Get("/views/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(svc.Views.Dashboard())
	})

	r.Get("/views/notifications", func(c *fiber.Ctx) error {
		return c.JSON(svc.Views.Notifications())
	})

	r.Get("/views/settings", func(c *fiber.Ctx) error {
		return c.JSON(svc.Views.Settings(prefs))
	})
}

// badRequest renders validation errors in the display language.
func badRequest(svc *Services, err error) error {
	lang := svc.Session.Settings().DisplayLanguage()
	return fiber.NewError(fiber.StatusBadRequest, svc.Catalog.ValidationMessage(lang, err))
}

func settingsError(svc *Services, err error) error {
	if errors.Is(err, settings.ErrInvalidSetting) {
		return badRequest(svc, err)
	}
	log.Printf("ERROR: httpapi: saving settings: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "failed to save settings")
}
