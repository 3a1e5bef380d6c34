// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api serves conversion and direct reads over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/mdbridge/internal/apperr"
	"github.com/pdiddy/mdbridge/pkg/types"
)

// Converter runs a conversion request.
type Converter interface {
	ToMarkdown(ctx context.Context, req types.ConversionRequest) (types.MarkdownResult, error)
}

// Getter reads an existing Markdown file.
type Getter interface {
	Get(path string) (types.MarkdownResult, error)
}

// Server holds the REST router.
type Server struct {
	conv   Converter
	get    Getter
	logger *slog.Logger
	router *gin.Engine
}

// NewServer returns a Server with its routes registered.
func NewServer(conv Converter, get Getter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{conv: conv, get: get, logger: logger, router: r}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting REST server", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.POST("/v1/convert", s.handleConvert)
	s.router.GET("/v1/markdown", s.handleMarkdown)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleConvert converts the document named in the JSON body.
func (s *Server) handleConvert(c *gin.Context) {
	var req types.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apperr.InvalidInput("invalid request body: %v", err))
		return
	}
	// Toolchain overrides would let a remote caller choose the executable.
	req.Toolchain = types.ToolchainConfig{}

	res, err := s.conv.ToMarkdown(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleMarkdown returns an existing Markdown file.
func (s *Server) handleMarkdown(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		handleError(c, apperr.InvalidInput("path query parameter required"))
		return
	}
	res, err := s.get.Get(path)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func handleError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
