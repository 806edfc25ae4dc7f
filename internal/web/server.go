// Package web provides the HTTP API for properties and their images.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/realstate-api/internal/docstore"
	"github.com/evcraddock/realstate-api/internal/logging"
	"github.com/evcraddock/realstate-api/internal/property"
	"github.com/evcraddock/realstate-api/internal/validate"
)

// Options tunes the server.
type Options struct {
	// RequestTimeout bounds the context of every request. Zero disables it.
	RequestTimeout time.Duration

	// MaxUploadBytes is the largest accepted image. Multipart bodies may
	// exceed it by a small allowance for form overhead.
	MaxUploadBytes int64
}

const multipartOverhead = 1 << 20

// Server is the API HTTP server.
type Server struct {
	props   *property.Service
	store   docstore.Store
	opts    Options
	engine  *gin.Engine
	handler http.Handler
}

// NewServer creates a server backed by the given service and store.
func NewServer(props *property.Service, store docstore.Store, opts Options) *Server {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(validate.JSONName)
	}

	s := &Server{
		props:  props,
		store:  store,
		opts:   opts,
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery(), s.requestTimeout())

	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api/v1/property")
	api.POST("/create-property/", s.handleCreateProperty)
	api.PUT("/change-price/:property_id", s.handleChangePrice)
	api.GET("/properties/:property_id", s.handleGetProperty)
	api.POST("/properties/:property_id/upload-image/", s.handleUploadImage)

	s.engine.NoRoute(func(c *gin.Context) {
		apiError(c, "not found", http.StatusNotFound)
	})

	s.handler = logging.RequestLogger(s.engine)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// requestTimeout attaches a deadline to each request's context.
func (s *Server) requestTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.RequestTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		apiJSON(c, gin.H{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}
	apiJSON(c, gin.H{"status": "ok"}, http.StatusOK)
}
