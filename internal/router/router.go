package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/passport-go-api/internal/config"
	"github.com/noah-isme/passport-go-api/internal/handler"
	"github.com/noah-isme/passport-go-api/internal/middleware"
	"github.com/noah-isme/passport-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PassportHandler     *handler.PassportHandler
	SignatureHandler    *handler.SignatureHandler
	NominationHandler   *handler.NominationHandler
	PlannerHandler      *handler.PlannerHandler
	RewardHandler       *handler.RewardHandler
	LeaderboardHandler  *handler.LeaderboardHandler
	NotificationHandler *handler.NotificationHandler
	AdminHandler        *handler.AdminHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & metrics
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Student surface: own passport, planner, nominations, notifications
	if deps.PassportHandler != nil {
		student := app.Group("/api/v2/student", jwtMiddleware)
		deps.PassportHandler.Register(student)

		if deps.LeaderboardHandler != nil {
			deps.LeaderboardHandler.Register(student)
		}
		if deps.PlannerHandler != nil {
			planner := student.Group("/planner")
			deps.PlannerHandler.Register(planner)
		}
		if deps.NominationHandler != nil {
			// Nominations are the one surface students can spam.
			nominations := student.Group("/nominations", middleware.RateLimit("nominations", 10, time.Minute))
			deps.NominationHandler.Register(nominations)
		}
		if deps.NotificationHandler != nil {
			notifications := student.Group("/notifications")
			deps.NotificationHandler.Register(notifications)
		}
	}

	// Teacher surface: signatures, nomination review, rewards, analytics
	teacherOnly := middleware.RequireRole("teacher", "admin")
	if deps.SignatureHandler != nil {
		signatures := app.Group("/api/v2/teacher/signatures", jwtMiddleware, teacherOnly)
		deps.SignatureHandler.Register(signatures)
	}
	if deps.NominationHandler != nil {
		nominations := app.Group("/api/v2/teacher/nominations", jwtMiddleware, teacherOnly)
		deps.NominationHandler.RegisterReview(nominations)
	}
	if deps.RewardHandler != nil {
		rewards := app.Group("/api/v2/teacher/rewards", jwtMiddleware, teacherOnly)
		deps.RewardHandler.Register(rewards)
	}
	if deps.LeaderboardHandler != nil {
		teacher := app.Group("/api/v2/teacher", jwtMiddleware, teacherOnly)
		deps.LeaderboardHandler.RegisterAnalytics(teacher)
	}

	// Admin surface: roster, quiz imports, audit trail
	if deps.AdminHandler != nil {
		admin := app.Group("/api/v2/admin", jwtMiddleware, middleware.RequireRole("admin"))
		deps.AdminHandler.Register(admin)
	}
}
