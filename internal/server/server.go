// Package server exposes the task store over the board's REST contract.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"kanban-board/internal/api"
	"kanban-board/internal/validation"
)

// Config holds the HTTP server settings
type Config struct {
	Addr            string
	BodyLimit       string
	AllowOrigins    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the settings used when none are configured
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		BodyLimit:       "64K",
		AllowOrigins:    []string{"*"},
		RequestTimeout:  10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server wraps an echo instance serving the task routes
type Server struct {
	echo *echo.Echo
	cfg  Config
	log  *logrus.Logger
}

// New builds the server and registers every route
func New(store api.API, schemas *validation.SchemaValidator, cfg Config, log *logrus.Logger) *Server {
	defaults := DefaultConfig()
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = defaults.BodyLimit
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = defaults.AllowOrigins
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	if cfg.RequestTimeout > 0 {
		e.Use(RequestTimeout(cfg.RequestTimeout))
	}

	Register(e, store, schemas, log)

	return &Server{echo: e, cfg: cfg, log: log}
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the bound listener address once the server is running
func (s *Server) Addr() net.Addr {
	return s.echo.ListenerAddr()
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.cfg.Addr).Info("task server listening")
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Info("task server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
