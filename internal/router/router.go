package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/trustward/trustward-go/internal/handler"
	"github.com/trustward/trustward-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Vote    *handler.VoteHandler
	Company *handler.CompanyHandler
	Promise *handler.PromiseHandler
	Post    *handler.PostHandler
	User    *handler.UserHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health and metrics (before API group, no rate limits)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// Rate limiters
	lookupLimit := middleware.NewLookupRateLimiter()
	submitLimit := middleware.NewVoteSubmitRateLimiter()
	deleteLimit := middleware.NewVoteDeleteRateLimiter()
	statsLimit := middleware.NewStatsRateLimiter()

	// API routes
	api := app.Group("/api")

	// Rating vote routes
	api.Post("/votes", h.Vote.Submit, submitLimit.Handler())
	api.Delete("/votes", h.Vote.Delete, deleteLimit.Handler())

	// Company routes
	api.Get("/companies/:companyId", h.Company.GetByCompanyID, lookupLimit.Handler())
	api.Get("/companies/:companyId/votes", h.Company.ListVotes, lookupLimit.Handler())

	// Promise routes
	api.Get("/promises/:promiseId", h.Promise.GetByPromiseID, lookupLimit.Handler())
	api.Post("/promises/:promiseId/votes", h.Promise.SubmitVerdict, submitLimit.Handler())

	// Post routes
	api.Get("/posts", h.Post.List, lookupLimit.Handler())

	// User routes
	api.Get("/users/:userId", h.User.GetByUserID, lookupLimit.Handler())

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimit.Handler())
}
