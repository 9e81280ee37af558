package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(dash)
		},
	}
}

func newFiberApp(a *app) *fiber.App {
	// Basic app configuration
	srv := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	srv.Use(logger.New())
	srv.Use(recover.New())

	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
			"session": a.session.ID(),
		})
	})

	httpapi.RegisterRoutes(srv, &httpapi.Services{
		Session:  a.session,
		Calendar: a.calendar,
		Views:    a.views,
		Catalog:  a.catalog,
		Validate: a.validate,
	})
	return srv
}

func serve(a *app) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Bootstrap once; failures leave the banner or the location modal up.
	if err := a.session.InitializeWeatherApp(ctx); err != nil {
		log.Printf("INFO: bootstrap: %v", err)
	}

	sched := scheduler.New(a.session, a.cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	srv := newFiberApp(a)
	go func() {
		log.Printf("INFO: listening on :%s", a.cfg.Port)
		if err := srv.Listen(":" + a.cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	return nil
}
