package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/geogrid-service/internal/config"
	"github.com/geogrid-service/internal/delivery/http/handler"
	"github.com/geogrid-service/internal/delivery/http/middleware"
	"github.com/geogrid-service/internal/pkg/metrics"
)

// HealthChecker - зависимость, состояние которой отдаёт /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	aggregationHandler   *handler.AggregationHandler
	visualizationHandler *handler.VisualizationHandler
	statsHandler         *handler.StatsHandler

	health map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	aggregationHandler *handler.AggregationHandler,
	visualizationHandler *handler.VisualizationHandler,
	statsHandler *handler.StatsHandler,
	health map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "GeoGrid Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                  app,
		config:               cfg,
		logger:               logger,
		aggregationHandler:   aggregationHandler,
		visualizationHandler: visualizationHandler,
		statsHandler:         statsHandler,
		health:               health,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthCheck)

	// Aggregations
	api.Post("/aggregations/geohash", s.aggregationHandler.BuildGeohash)
	api.Get("/geohash/precision", s.aggregationHandler.GetPrecision)

	// Sessions
	api.Get("/sessions/:id", s.aggregationHandler.GetSession)
	api.Delete("/sessions/:id", s.aggregationHandler.ResetSession)

	// Visualizations
	api.Post("/visualizations", s.visualizationHandler.Create)
	api.Get("/visualizations", s.visualizationHandler.List)
	api.Get("/visualizations/:id", s.visualizationHandler.Get)
	api.Delete("/visualizations/:id", s.visualizationHandler.Delete)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

func (s *Server) healthCheck(c *fiber.Ctx) error {
	checks := make(fiber.Map, len(s.health))
	status, code := "healthy", fiber.StatusOK

	for name, dep := range s.health {
		if err := dep.Health(c.Context()); err != nil {
			checks[name] = err.Error()
			status, code = "degraded", fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code = fe.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
