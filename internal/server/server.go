package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
	"github.com/phishscan/phishscan/internal/report"
)

// shutdownGrace bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownGrace = 10 * time.Second

// Analyzer performs a single-URL analysis.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*model.AnalysisResult, error)
}

// Server serves the analysis API.
type Server struct {
	// analyzer handles each analysis request.
	analyzer Analyzer

	// addr is the listen address.
	addr string

	// logger for structured logging.
	logger *slog.Logger

	// router is the configured gin engine.
	router *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server around the given analyzer.
func New(analyzer Analyzer, opts ...Option) *Server {
	s := &Server{
		analyzer: analyzer,
		addr:     config.DefaultListenAddr,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter wires the routes and middleware.
func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)
	r.POST("/analyze", s.handleAnalyze)

	return r
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request with method, path, status and latency.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// analyzeRequest is the POST /analyze body.
type analyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

// analyzeResponse is the POST /analyze reply.
type analyzeResponse struct {
	URL             string              `json:"url"`
	RiskLevel       model.RiskLevel     `json:"risk_level"`
	Score           float64             `json:"score"`
	Features        model.FeatureVector `json:"features"`
	Recommendations []string            `json:"recommendations"`
	AnalyzedAt      time.Time           `json:"analyzed_at"`
}

// handleAnalyze runs a full analysis for the posted URL.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), req.URL)
	if err != nil {
		s.logger.Error("analysis failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{
		URL:             req.URL,
		RiskLevel:       result.RiskLevel,
		Score:           result.Score,
		Features:        result.Features,
		Recommendations: report.Recommendations(result),
		AnalyzedAt:      result.AnalyzedAt,
	})
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": config.AppName,
	})
}

// handleIndex serves the minimal browser form.
func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}
