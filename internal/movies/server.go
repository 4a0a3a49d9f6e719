// Package movies contains the HTTP handlers and views for the movie tracker.
package movies

import (
	"context"
	"embed"
	"net/http"
	"time"

	"inkreel/internal/config"
	"inkreel/internal/middleware"
	"inkreel/internal/models"
	"inkreel/internal/repository"
	"inkreel/internal/service"
	"inkreel/internal/tmdb"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

//go:embed views/*.html
var viewsFS embed.FS

// Server holds all dependencies and provides handlers for the movie tracker.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	movieService   *service.MovieService
}

// NewServer creates a movie tracker server using already-initialized
// dependencies.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	movieRepo := repository.NewMovieRepository(db)
	metadata := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("inkreel-movies"),
		movieService:   service.NewMovieService(movieRepo, metadata, cfg.TMDBImageBaseURL),
	}
}

// App builds the Fiber application with middleware and routes configured.
func (s *Server) App() *fiber.App {
	engine := html.NewFileSystem(http.FS(viewsFS), ".html")

	app := fiber.New(fiber.Config{
		AppName: "Inkreel Movies",
		Views:   engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
			return s.renderError(c, models.NewInternalError(err))
		},
	})
	s.app = app

	s.setupMiddleware(app)
	s.setupRoutes(app)
	return app
}

func (s *Server) setupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
}

func (s *Server) setupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/", s.Home)
	app.Get("/edit", s.ShowEdit)
	app.Post("/edit", s.Edit)
	app.Get("/delete", s.Delete)
	app.Get("/add", s.ShowAdd)
	app.Post("/add", middleware.RateLimit(
		s.redis, 30, time.Minute, "lookup"), s.Search)
	app.Get("/find", middleware.RateLimit(
		s.redis, 30, time.Minute, "lookup"), s.Find)
}

// Start runs the movie tracker on the configured port.
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Movies server starting", "port", s.config.MoviesPort)
	return app.Listen(":" + s.config.MoviesPort)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		return s.app.ShutdownWithContext(ctx)
	}
	return nil
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
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
