package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"user-profile-service/cmd/api/di"
	"user-profile-service/internal/adapter/gin/router"
	"user-profile-service/internal/config"
)

// Server wraps the HTTP server serving the API.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance from the container's handlers.
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	engine := router.SetupRouter(c.UserHandler, c.HealthHandler, c.RateLimiter, cfg.IsProduction(), l)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}
