package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shapedtime/wsindex/internal/metrics"
	"github.com/shapedtime/wsindex/internal/series"
)

// Server represents the REST API server
type Server struct {
	router    *gin.Engine
	organizer *series.Organizer
	metrics   *metrics.Metrics // Optional: nil disables instrumentation
	auth      *basicAuth       // Optional: nil leaves the API open
	version   string
	started   time.Time
}

// NewServer creates a new API server
func NewServer(organizer *series.Organizer, m *metrics.Metrics, version string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:    gin.New(),
		organizer: organizer,
		metrics:   m,
		version:   version,
		started:   time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.router.Use(gin.Recovery())

	// Logging middleware. Request bodies carry passwords and are never logged.
	s.router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("API request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	})

	// CORS for development
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})
}

func (s *Server) setupRoutes() {
	// Status is reachable without credentials
	s.router.GET("/api/status", s.getStatus)

	api := s.router.Group("/api", s.requireAuth)

	// Login digest
	api.POST("/digest", s.computeDigest)

	// File name classification
	api.POST("/classify", s.classifyFile)
	api.POST("/series/organize", s.organizeSeries)
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"version":        s.version,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	})
}

// Error response helper
func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
