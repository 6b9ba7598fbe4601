// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"snsproject/internal/cache"
	"snsproject/internal/config"
	"snsproject/internal/database"
	"snsproject/internal/middleware"
	"snsproject/internal/models"
	"snsproject/internal/notifications"
	"snsproject/internal/observability"
	"snsproject/internal/repository"
	"snsproject/internal/security"
	"snsproject/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *security.TokenIssuer
	postService    *service.PostService
	userService    *service.UserService
}

// NewServer connects to the database and Redis and builds a server on top of them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case alarms are dropped.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	uow := repository.NewUnitOfWork(db)
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	var alarms service.AlarmPublisher
	if redisClient != nil {
		alarms = notifications.NewNotifier(redisClient)
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("snsproject-api"),
		tokens:         tokens,
		postService:    service.NewPostService(uow, alarms),
		userService:    service.NewUserService(uow, security.NewPasswordHasher(cfg.BcryptCost), tokens),
	}
	s.app = s.newApp()
	return s, nil
}

func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "snsproject API",
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// App returns the configured Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/join", s.Join)
	users.Post("/login", s.Login)

	posts := api.Group("/posts", s.AuthRequired())
	posts.Post("/", s.CreatePost)
	posts.Get("/", s.ListPosts)
	posts.Get("/my", s.MyPosts)
	posts.Put("/:postId", s.ModifyPost)
	posts.Delete("/:postId", s.DeletePost)
	posts.Post("/:postId/likes", s.LikePost)
	posts.Get("/:postId/likes", s.LikeCount)
	posts.Post("/:postId/comments", s.CreateComment)
	posts.Get("/:postId/comments", s.GetComments)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// HealthCheck reports database and Redis reachability.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis only backs the cache and alarms, so its absence does not fail the check.
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// errorHandler turns errors that escaped a handler into the standard error body.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		code := models.CodeValidation
		if fe.Code >= fiber.StatusInternalServerError {
			code = models.CodeInternal
		}
		return c.Status(fe.Code).JSON(models.ErrorResponse{ResultCode: code, Error: fe.Message})
	}
	return respondError(c, err)
}

// Start starts the server
func (s *Server) Start() error {
	observability.Logger.Info("server starting", "port", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		observability.Logger.Error("error shutting down HTTP server", "error", err)
	}

	if err := database.Close(s.db); err != nil {
		observability.Logger.Error("error closing database", "error", err)
	}

	cache.Close()

	observability.Logger.Info("server shutdown complete")
	return nil
}
