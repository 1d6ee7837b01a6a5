// Package server serves the ducktail web dashboard: a server-rendered page,
// a small JSON API for the control surface and a websocket event stream.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/five82/ducktail/internal/engine"
	"github.com/five82/ducktail/internal/state"
)

//go:embed all:web
var webFS embed.FS

const shutdownTimeout = 5 * time.Second

// Controller is the subset of engine.Loop the dashboard drives.
type Controller interface {
	InputFilter(term string)
	ClearFilter()
	TogglePause() bool
	ClearLog()
}

// Options configures the dashboard.
type Options struct {
	Controller   Controller
	Store        *state.Store
	LogPath      string
	PollInterval time.Duration
}

// Server holds the Gin engine and dependencies for the web dashboard.
type Server struct {
	engine   *gin.Engine
	ctrl     Controller
	store    *state.Store
	page     *template.Template
	logPath  string
	interval time.Duration
	closing  chan struct{}
}

// New creates the dashboard server.
func New(opts Options) (*Server, error) {
	if opts.Controller == nil || opts.Store == nil {
		return nil, errors.New("server: controller and store are required")
	}

	page, err := template.ParseFS(webFS, "web/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = engine.DefaultInterval
	}

	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery())
	e.RedirectTrailingSlash = false
	e.RedirectFixedPath = false

	s := &Server{
		engine:   e,
		ctrl:     opts.Controller,
		store:    opts.Store,
		page:     page,
		logPath:  opts.LogPath,
		interval: interval,
		closing:  make(chan struct{}),
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// serveEmbedded reads a file from the embedded FS once and serves it with the
// given content type.
func serveEmbedded(webContent fs.FS, name string, contentType string) gin.HandlerFunc {
	data, err := fs.ReadFile(webContent, name)
	return func(c *gin.Context) {
		if err != nil {
			c.String(http.StatusNotFound, "file not found: %s", name)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

func (s *Server) setupRoutes() {
	webContent, _ := fs.Sub(webFS, "web")

	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/static/style.css", serveEmbedded(webContent, "static/style.css", "text/css; charset=utf-8"))
	s.engine.GET("/static/app.js", serveEmbedded(webContent, "static/app.js", "application/javascript; charset=utf-8"))

	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api", requireSameOrigin())
	api.GET("/view", s.handleView)

	control := api.Group("", requireJSON())
	control.POST("/filter/input", s.handleFilterInput)
	control.DELETE("/filter", s.handleClearFilter)
	control.POST("/pause", s.handlePause)
	control.POST("/clear", s.handleClearLog)

	s.engine.GET("/ws", requireSameOrigin(), s.handleWebSocket)
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully and
// ends open websocket streams.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	close(s.closing)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// view returns the latest published view, or the loading view before the
// first poll has been published.
func (s *Server) view() engine.Snapshot {
	snap := s.store.Snapshot()
	if !snap.HasView {
		return engine.New().Snapshot()
	}
	return snap.View
}

type pageData struct {
	LogPath      string
	Refresh      string
	Filter       string
	Count        string
	Paused       bool
	PauseLabel   string
	Entries      template.HTML
	Version      uint64
	IntervalMS   int64
	HasEntries   bool
	Placeholder  string
	StatusString string
}

func (s *Server) handleIndex(c *gin.Context) {
	snap := s.view()
	data := pageData{
		LogPath:      s.logPath,
		Refresh:      fmt.Sprintf("Refresh every %g seconds.", s.interval.Seconds()),
		Filter:       snap.Filter,
		Count:        countLabel(snap),
		Paused:       snap.Paused,
		PauseLabel:   pauseLabel(snap.Paused),
		Entries:      template.HTML(snap.HTML()), // entry markup is escaped by the classifier
		Version:      snap.Version,
		IntervalMS:   s.interval.Milliseconds(),
		HasEntries:   snap.Placeholder == "",
		Placeholder:  snap.Placeholder,
		StatusString: snap.Status.String(),
	}

	var b strings.Builder
	if err := s.page.Execute(&b, data); err != nil {
		c.String(http.StatusInternalServerError, "render page: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

func countLabel(snap engine.Snapshot) string {
	switch {
	case snap.Placeholder != "":
		return ""
	case snap.Filter != "":
		return fmt.Sprintf("%d/%d matches", snap.MatchCount, snap.Total)
	default:
		return fmt.Sprintf("%d entries", snap.Total)
	}
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume Refresh"
	}
	return "Pause Refresh"
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.store.Snapshot()
	status := "ok"
	if snap.IsOffline() {
		status = "offline"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":               status,
		"log_path":             s.logPath,
		"view":                 snap.View.Status.String(),
		"paused":               snap.View.Paused,
		"consecutive_failures": snap.ConsecutiveFailures,
		"subscribers":          s.store.Subscribers(),
		"dropped_events":       snap.Dropped,
		"last_updated":         snap.LastUpdated,
	})
}

func (s *Server) handleView(c *gin.Context) {
	c.JSON(http.StatusOK, s.view())
}

type filterRequest struct {
	Term string `json:"term"`
}

func (s *Server) handleFilterInput(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter request"})
		return
	}
	s.ctrl.InputFilter(req.Term)
	c.JSON(http.StatusAccepted, gin.H{"term": req.Term})
}

func (s *Server) handleClearFilter(c *gin.Context) {
	s.ctrl.ClearFilter()
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePause(c *gin.Context) {
	paused := s.ctrl.TogglePause()
	c.JSON(http.StatusOK, gin.H{"paused": paused, "label": pauseLabel(paused)})
}

func (s *Server) handleClearLog(c *gin.Context) {
	s.ctrl.ClearLog()
	c.JSON(http.StatusAccepted, gin.H{"status": "clearing"})
}
