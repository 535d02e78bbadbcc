// Package server exposes the wingman tools over a bearer-token
// authenticated HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/charmlabs/wingman/pkg/config"
	"github.com/charmlabs/wingman/pkg/pipeline"
	"github.com/charmlabs/wingman/pkg/search"
)

// Server wires the generation chain and search client into HTTP handlers.
type Server struct {
	cfg      config.ServerConfig
	chain    *pipeline.Chain
	searcher *search.Client
	logger   zerolog.Logger
	engine   *gin.Engine
}

// New creates a server around the given chain and search client.
func New(cfg config.ServerConfig, chain *pipeline.Chain, searcher *search.Client, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:      cfg,
		chain:    chain,
		searcher: searcher,
		logger:   logger,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(requestLogger(logger))
	engine.Use(cors(cfg.AllowedOrigins))

	engine.GET("/healthz", s.handleHealth)

	v1 := engine.Group("/v1", bearerAuth(cfg.AuthToken))
	v1.GET("/identity", s.handleIdentity)
	v1.POST("/generate", s.handleGenerate)
	v1.POST("/suggest", s.handleSuggest)

	s.engine = engine
	return s
}

// Handler returns the underlying HTTP handler; used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info().Str("addr", s.cfg.Addr).Msg("server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
