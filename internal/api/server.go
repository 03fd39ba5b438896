package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"stagepass/internal/auth"
	"stagepass/internal/cache"
	"stagepass/internal/config"
	"stagepass/internal/database"
	"stagepass/internal/handlers"
	"stagepass/internal/logger"
	"stagepass/internal/messaging"
	"stagepass/internal/metrics"
	"stagepass/internal/middleware"
	"stagepass/internal/repository"
	"stagepass/internal/service"

	"github.com/gin-gonic/gin"
)

// Server wires the HTTP API together.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	cache    *cache.Client
	services *service.Services
	repos    *repository.Repositories
}

// NewServer connects the dependencies and builds the router. NATS and the
// cache are optional: losing either degrades the service (no events, no
// cached catalog) but never stops it from booking seats.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		slog.Warn("NATS unavailable, domain events disabled", "error", err)
		natsClient = nil
	}

	var cacheClient *cache.Client
	if cfg.Cache.Addr != "" {
		cacheClient, err = cache.NewClient(cfg.Cache)
		if err != nil {
			slog.Warn("Cache unavailable, concert list caching disabled", "error", err)
			cacheClient = nil
		}
	}

	m := metrics.New()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, cacheClient, m)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(m.Middleware())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		cache:    cacheClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes(m)

	return server
}

// setupRoutes registers all API routes
func (s *Server) setupRoutes(m *metrics.Metrics) {
	h := handlers.NewHandlers(s.services, s.cache)

	verifier := auth.NewDirectoryVerifier(s.repos.Users)
	identity := middleware.Identity(verifier)
	admin := middleware.RequireAdmin()

	api := s.router.Group("/api")
	{
		concerts := api.Group("/concerts")
		{
			concerts.GET("", h.ListConcerts)
			concerts.GET("/:id", h.GetConcert)
			concerts.POST("", identity, admin, h.CreateConcert)
			concerts.PATCH("/:id", identity, admin, h.UpdateConcert)
			concerts.DELETE("/:id", identity, admin, h.DeleteConcert)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", identity, admin, h.ListReservations)
			reservations.GET("/my", identity, h.ListMyReservations)
			reservations.POST("", identity, h.CreateReservation)
			reservations.PATCH("/:id/cancel", identity, h.CancelReservation)
		}

		users := api.Group("/users")
		{
			users.POST("", h.RegisterUser)
			users.POST("/login", h.Login)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", m.Handler())
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "stagepass-api",
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter returns the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes external connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			slog.Error("Error closing cache connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
