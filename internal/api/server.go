package api

import (
	"context"
	"net/http"
	"time"

	"example.com/westo/services/garment/config"
	"example.com/westo/services/garment/internal/metrics"
	"example.com/westo/services/garment/internal/service"
	"example.com/westo/services/garment/internal/tracing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Services bundles the application services the API serves
type Services struct {
	Cutting       *service.CuttingService
	Manufacturing *service.ManufacturingService
	QRProduct     *service.QRProductService
	Fabric        *service.FabricService
	Employee      *service.EmployeeService
	Dashboard     *service.DashboardService
}

// Server represents the HTTP server
type Server struct {
	config     config.Config
	router     *gin.Engine
	httpServer *http.Server
	services   Services
	metrics    *metrics.Metrics
	tracer     tracing.Tracer
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, svcs Services, m *metrics.Metrics, tracer tracing.Tracer) *Server {
	server := &Server{
		config:   cfg,
		services: svcs,
		metrics:  m,
		tracer:   tracer,
	}

	server.router = server.setupRouter()
	server.httpServer = &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      server.router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
	}

	return server
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	if app := s.tracer.Application(); app != nil {
		router.Use(NewRelicMiddleware(app))
	}

	dashboardHandler := NewDashboardHandler(s.services.Dashboard, s.metrics)

	v1 := router.Group("/api/v1")
	{
		NewCuttingHandler(s.services.Cutting).RegisterRoutes(v1)
		NewManufacturingHandler(s.services.Manufacturing, s.tracer).RegisterRoutes(v1)
		NewQRProductHandler(s.services.QRProduct).RegisterRoutes(v1)
		NewFabricHandler(s.services.Fabric).RegisterRoutes(v1)
		NewEmployeeHandler(s.services.Employee).RegisterRoutes(v1)
		dashboardHandler.RegisterRoutes(v1)
	}

	router.GET("/health", dashboardHandler.GetHealth)
	router.GET("/metrics", dashboardHandler.GetMetrics)

	return router
}

// Router exposes the underlying gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.ServerAddress).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server shut down successfully")
	return nil
}
