package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/codearena-go-api/internal/config"
	"github.com/noah-isme/codearena-go-api/internal/handler"
	"github.com/noah-isme/codearena-go-api/internal/middleware"
	"github.com/noah-isme/codearena-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	ProblemHandler    *handler.ProblemHandler
	SubmissionHandler *handler.SubmissionHandler
	StatsHandler      *handler.StatsHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute)))
	}

	if deps.ProblemHandler != nil {
		deps.ProblemHandler.Register(api.Group("/problems"))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", jwtMiddleware, middleware.RateLimit("submissions", 30, time.Minute)))
	}

	if deps.StatsHandler != nil {
		deps.StatsHandler.RegisterLeaderboard(api.Group("/leaderboard"))
		deps.StatsHandler.RegisterProfile(api.Group("/profile", jwtMiddleware))
	}
}
