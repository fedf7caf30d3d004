// Package server serves the develop mode HTTP endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	shutdownTimeout = 5 * time.Second
	maxWebhookBody  = 1 << 20
)

// Refresher re-sources nodes on request.
type Refresher interface {
	Refresh(ctx context.Context, webhookBody map[string]any) error
}

// Server is the develop mode HTTP server.
type Server struct {
	cfg       domain.ServerConfig
	store     ports.NodeStore
	refresher Refresher
	logger    ports.Logger
	router    *gin.Engine
}

// New creates a Server and registers its routes.
func New(cfg domain.ServerConfig, store ports.NodeStore, refresher Refresher, logger ports.Logger) *Server {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	s := &Server{
		cfg:       cfg,
		store:     store,
		refresher: refresher,
		logger:    logger,
		router:    r,
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/__nodes", s.listNodes)
	s.router.POST("/__refresh", s.refresh)
}

func (s *Server) listNodes(c *gin.Context) {
	typeName := c.Query("type")

	nodes := []*domain.Node{}
	for node, err := range s.store.IterateNodes(c.Request.Context()) {
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if typeName == "" || node.Type() == typeName {
			nodes = append(nodes, node)
		}
	}
	c.JSON(http.StatusOK, nodes)
}

func (s *Server) refresh(c *gin.Context) {
	if !s.cfg.RefreshEndpoint {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "refresh endpoint is disabled; set server.refreshEndpoint or GROVE_REFRESH_ENDPOINT=true",
		})
		return
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "webhook body must be a JSON object"})
			return
		}
	}

	if err := s.refresher.Refresh(c.Request.Context(), body); err != nil {
		s.logger.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves on the configured address until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(fmt.Sprintf("develop server listening on http://%s", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", s.cfg.Addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	return nil
}

func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug(fmt.Sprintf("%s %s %d %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond)))
	}
}
