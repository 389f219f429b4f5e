package routes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/recepcao-app/recepcao/internal/admin"
	"github.com/recepcao-app/recepcao/internal/auth"
	"github.com/recepcao-app/recepcao/internal/config"
	"github.com/recepcao-app/recepcao/internal/middleware"
	"github.com/recepcao-app/recepcao/internal/notification"
	"github.com/recepcao-app/recepcao/internal/visitor"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories fall back to in-memory implementations in dev.
	var visitorRepo visitor.Repository
	if d.DB != nil {
		visitorRepo = visitor.NewPostgresRepository(d.DB)
	} else {
		visitorRepo = visitor.NewMemoryRepository()
	}
	var adminRepo admin.Repository
	if d.DB != nil {
		adminRepo = admin.NewPostgresRepository(d.DB)
	} else {
		adminRepo = admin.NewMemoryRepository()
	}
	var sessionStore auth.Store
	if d.Cache != nil {
		sessionStore = auth.NewRedisStore(d.Cache)
	} else {
		sessionStore = auth.NewMemoryStore()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	visitorSvc := visitor.NewService(visitorRepo, d.Cfg.IPHashSalt, notifier)
	adminSvc := admin.NewService(adminRepo)
	sessions := auth.NewService(adminSvc, sessionStore, d.Cfg.SessionTTL)

	if d.Cfg.AdminEmail != "" && d.Cfg.AdminPassword != "" {
		if err := adminSvc.Ensure(context.Background(), d.Cfg.AdminEmail, d.Cfg.AdminPassword); err != nil {
			return fmt.Errorf("seed admin account: %w", err)
		}
	}

	visitorHandler := visitor.NewHandler(visitorSvc, d.Cfg.DefaultPageSize)
	authHandler := auth.NewHandler(sessions, !d.Cfg.IsDev())

	api := app.Group("/api")

	// Public routes: the walk-in registration form posts here unauthenticated.
	api.Post("/visitors", visitorHandler.Create)

	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	guard := middleware.RequireAdmin(sessions)
	protected := api.Group("", guard)
	RegisterVisitorRoutes(protected, visitorHandler)

	return nil
}
