// Package server implements the trip decision-service HTTP API: location
// search, route feasibility, travel mode recommendation, configuration
// finalizing, and itinerary generation. Every endpoint is deterministic; the
// wizard can replay any request and get the same answer.
//
// Error responses carry a {"detail": "..."} body with an appropriate status
// code, which is exactly what the stage clients map onto the error taxonomy.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Iron-Ham/tripflow/internal/catalog"
	"github.com/Iron-Ham/tripflow/internal/config"
	"github.com/Iron-Ham/tripflow/internal/logging"
)

// Server bundles the router, the city catalog, and the search cache.
type Server struct {
	cfg         config.ServerConfig
	logger      *logging.Logger
	router      *gin.Engine
	searchCache *gocache.Cache
	http        *http.Server
}

// New builds a fully routed server. A nil logger is replaced with a no-op
// logger.
func New(cfg config.ServerConfig, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NopLogger()
	}
	ttl := time.Duration(cfg.SearchCacheTTLSeconds) * time.Second

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		cfg:         cfg,
		logger:      logger.WithComponent("server"),
		router:      router,
		searchCache: gocache.New(ttl, 2*ttl),
	}
	router.Use(s.requestLogger())
	s.registerRoutes()
	return s
}

// Router exposes the gin engine, mainly for httptest.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/locations/search", s.handleLocationSearch)
		api.GET("/locations/validate", s.handleLocationValidate)
		api.POST("/route/validate", s.handleRouteValidate)
		api.POST("/travel/modes", s.handleTravelModes)
		api.POST("/interests/suggest", s.handleInterestsSuggest)
		api.POST("/trip/configure", s.handleTripConfigure)
		api.POST("/itinerary/generate", s.handleItineraryGenerate)
	}
}

// requestLogger records one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// abortDetail writes the service's uniform error body.
func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"service":      "tripflow",
		"total_cities": catalog.Count(),
	})
}
