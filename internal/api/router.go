package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/voteflow/poll-system/internal/api/handler"
	"github.com/voteflow/poll-system/internal/api/middleware"
	"github.com/voteflow/poll-system/internal/core/ports"
	"github.com/voteflow/poll-system/internal/core/service"
	"github.com/voteflow/poll-system/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The limiter gates the register and login routes; readiness holds the
// dependency checks exposed at /health/ready.
func NewRouter(
	polls ports.PollStore,
	users ports.UserStore,
	limiter middleware.Allower,
	cfg *config.Config,
	log zerolog.Logger,
	readiness map[string]func(context.Context) error,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("poll"))

	// --- Dependencies ---
	pollService := service.NewPollService(polls, log)
	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL)

	pollHandler := handler.NewPollHandler(pollService)
	authHandler := handler.NewAuthHandler(authService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	throttle := middleware.Throttle(limiter, log)

	// --- Auth routes (throttled per source IP) ---
	e.POST("/api/register", authHandler.Register, throttle)
	e.POST("/api/login", authHandler.Login, throttle)

	// --- Poll routes ---
	e.GET("/api/polls", pollHandler.List)
	e.GET("/api/polls/:id", pollHandler.Get)
	e.POST("/api/polls", pollHandler.Create, authMiddleware)
	e.POST("/api/polls/:id/vote", pollHandler.Vote, authMiddleware)
	e.DELETE("/api/polls/:id", pollHandler.Delete, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
