// Package http exposes the REST API: authentication, transaction CRUD,
// aggregate stats, AI insights and report downloads.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/auth"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/cache"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/config"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/core"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/storage"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	rateLimitPerMin = 60
)

// TransactionStore is the persistence surface the handlers need.
type TransactionStore interface {
	List(ctx context.Context, userID string) ([]core.Transaction, error)
	Create(ctx context.Context, userID string, tx core.Transaction) (core.Transaction, error)
	Update(ctx context.Context, userID, id string, update storage.TransactionUpdate) (core.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (core.Stats, error)
}

// InsightProvider produces a financial analysis for one user.
type InsightProvider interface {
	Insights(ctx context.Context, userID, currency string) (string, error)
}

// Dependencies collects everything the server needs to route requests.
type Dependencies struct {
	Verifier     auth.TokenVerifier
	Users        auth.UserResolver
	Transactions TransactionStore
	Insights     InsightProvider

	// Cache is optional; nil disables response caching.
	Cache cache.Cache

	// Ready reports whether backing services are reachable.
	Ready func(ctx context.Context) error
}

// Server wires middleware, routes and graceful shutdown around a gin engine.
type Server struct {
	cfg     *config.Config
	logger  *log.Logger
	limiter *rateLimiter
	httpSrv *http.Server

	transactions TransactionStore
	insights     InsightProvider
	cache        cache.Cache
	ready        func(ctx context.Context) error
}

// NewServer builds the full route table. It does not start listening.
func NewServer(cfg *config.Config, deps Dependencies, logger *log.Logger) *Server {
	s := &Server{
		cfg:          cfg,
		logger:       logger.WithComponent(log.ComponentHTTP),
		limiter:      newRateLimiter(rateLimitPerMin),
		transactions: deps.Transactions,
		insights:     deps.Insights,
		cache:        deps.Cache,
		ready:        deps.Ready,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(securityHeaders())
	engine.Use(corsMiddleware(cfg.AllowedOrigins))
	engine.Use(s.limiter.middleware(s.logger))

	engine.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Route not found")
	})

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/readyz", s.handleReady)

	api := engine.Group("/api")
	api.Use(auth.Middleware(deps.Verifier, deps.Users, logger))

	api.POST("/auth/login", s.handleLogin)
	api.GET("/auth/profile", s.handleProfile)

	api.GET("/transactions", s.handleListTransactions)
	api.POST("/transactions", s.handleCreateTransaction)
	api.PUT("/transactions/:id", s.handleUpdateTransaction)
	api.DELETE("/transactions/:id", s.handleDeleteTransaction)
	api.GET("/transactions/stats", s.handleStats)

	api.GET("/ai/insights", s.handleInsights)

	api.GET("/reports/excel", s.handleExcelReport)
	api.GET("/reports/pdf", s.handlePDFReport)

	s.httpSrv = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", log.FieldPath, s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.stop()
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) handleHealth(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReady(c *gin.Context) {
	if s.ready != nil {
		if err := s.ready(c.Request.Context()); err != nil {
			respondError(c, http.StatusServiceUnavailable, "backing services unavailable")
			return
		}
	}
	respondOK(c, http.StatusOK, gin.H{"status": "ready"})
}
