package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/idil/registrar/internal/bootstrap"
	"github.com/idil/registrar/internal/config"
)

// Server bundles the HTTP engine with the resources it owns so that
// shutdown can release them in order.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads configuration, connects to the database, wires the
// dependency graph and returns a server ready to Run.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config and setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)
	setupStaticFileServing(router, cfg, lgr)

	return &Server{
		config: cfg,
		router: router,
		dbPool: dbPool,
		logger: lgr,
	}, nil
}

// setupStaticFileServing exposes uploaded files under /uploads. The prefix
// must match the base URL handed to the file storage in bootstrap.
func setupStaticFileServing(router *gin.Engine, cfg *config.Config, lgr zerolog.Logger) {
	uploadPath := cfg.Storage.UploadDir
	if _, err := os.Stat(uploadPath); os.IsNotExist(err) {
		if err := os.MkdirAll(uploadPath, 0755); err != nil {
			lgr.Error().Err(err).Str("path", uploadPath).Msg("Failed to create upload directory")
			return
		}
		lgr.Info().Str("path", uploadPath).Msg("Created upload directory")
	}

	router.Static("/uploads", uploadPath)
	lgr.Info().Str("path", uploadPath).Msg("Static file serving configured for /uploads")
}

// Run starts the HTTP server and blocks until it fails or a termination
// signal triggers a graceful shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.http.Addr).Msg("Server starting to listen")
		serverErrors <- s.http.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		s.logger.Info().Msg("Server stopped listening")

	case sig := <-shutdown:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received, starting graceful shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
			if closeErr := s.http.Close(); closeErr != nil {
				s.logger.Error().Err(closeErr).Msg("Forced close failed")
			}
			s.closeResources()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}

		s.logger.Info().Msg("HTTP server stopped gracefully")
		s.closeResources()
	}

	return nil
}

// closeResources releases everything the server owns besides the HTTP
// listener. Safe to call once after the listener has stopped.
func (s *Server) closeResources() {
	if s.dbPool != nil {
		s.logger.Info().Msg("Closing database connection pool")
		s.dbPool.Close()
	}
}
