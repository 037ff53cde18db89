// Package main is the entry point for the flight offer explorer service.
//
//	@title						Flight Offer Explorer API
//	@version					1.0.0
//	@description				Searches one-way flight offers, normalizes them and serves filtered, sorted views with a price histogram.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/flight-offer-explorer/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-search/flight-offer-explorer/docs"

	// Application layers
	"github.com/flight-search/flight-offer-explorer/internal/adapter/amadeus"
	flighthttp "github.com/flight-search/flight-offer-explorer/internal/adapter/http"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/middleware"
	"github.com/flight-search/flight-offer-explorer/internal/config"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/retry"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	appLog := setupLogger(cfg)

	appLog.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("display_timezone", cfg.Display.Timezone).
		Msg("Configuration loaded")

	ctx, stop := context.WithCancel(appLog.Attach(context.Background()))
	defer stop()

	// Wire the upstream, the use cases and the session store
	client := newAmadeusClient(cfg)
	flightUseCase := usecase.NewFlightSearchUseCase(client, &usecase.Config{
		GlobalTimeout: cfg.Timeouts.GlobalSearch,
	})
	sessions := usecase.NewSessionManager(client, usecase.SessionConfig{
		TTL:           cfg.Session.TTL,
		GlobalTimeout: cfg.Timeouts.GlobalSearch,
	})
	go sessions.Run(ctx, cfg.Session.CleanupInterval)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	middleware.Setup(e, appLog)

	// Setup routes
	flighthttp.RegisterRoutes(e,
		flighthttp.NewFlightHandler(flightUseCase),
		flighthttp.NewSessionHandler(sessions),
	)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		appLog.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, cfg, appLog, stop)
}

// setupLogger builds the service logger from config and installs it as the
// process-wide logger.
func setupLogger(cfg *config.Config) *logger.Logger {
	appLog := logger.New(logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.IsDevelopment(),
		ServiceName:  "flight-offer-explorer",
	})
	logger.SetGlobal(appLog)
	log.Logger = appLog.Logger
	return appLog
}

// newAmadeusClient wires the token cache and the offers client.
func newAmadeusClient(cfg *config.Config) *amadeus.Client {
	retryCfg := retry.UpstreamConfig.
		WithMaxAttempts(cfg.Retry.MaxAttempts).
		WithInitialDelay(cfg.Retry.InitialDelay)

	tokens := amadeus.NewTokenCache(
		cfg.Amadeus.AuthBaseURL,
		cfg.Amadeus.ClientID,
		cfg.Amadeus.ClientSecret,
		amadeus.WithAuthTimeout(cfg.Timeouts.AuthRequest),
		amadeus.WithTokenRetry(retryCfg),
	)

	return amadeus.NewClient(
		cfg.Amadeus.SearchURL,
		tokens,
		amadeus.WithLocation(cfg.Display.Location()),
		amadeus.WithSearchTimeout(cfg.Timeouts.SearchRequest),
		amadeus.WithRetry(retryCfg),
	)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, cfg *config.Config, appLog *logger.Logger, stopBackground context.CancelFunc) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	appLog.Info().Msg("Shutting down server...")
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		appLog.Error().Err(err).Msg("Error during server shutdown")
	}

	appLog.Info().Msg("Server stopped")
}
