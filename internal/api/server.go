// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihandler "github.com/stockml/stockml/internal/api/handler/api"
	"github.com/stockml/stockml/internal/api/middleware"
	"github.com/stockml/stockml/internal/market"
	"github.com/stockml/stockml/internal/metrics"
	"github.com/stockml/stockml/internal/notice"
	"github.com/stockml/stockml/internal/predict"
	"github.com/stockml/stockml/internal/session"
	"github.com/stockml/stockml/internal/watchlist"
)

// Server is the HTTP front end over the simulated backend.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	APIKey         string
	MetricsEnabled bool
	MetricsPath    string
}

// Dependencies holds the stores and engines the routes are served from.
// Metrics and Feed may be nil; the corresponding routes are then
// omitted or served without recording.
type Dependencies struct {
	Provider  market.Provider
	Engine    *predict.Engine
	Sessions  *session.Store
	Watchlist *watchlist.Store
	Feed      *notice.MemoryFeed
	Metrics   *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Provider == nil || deps.Engine == nil || deps.Sessions == nil || deps.Watchlist == nil {
		return nil, fmt.Errorf("provider, engine, sessions and watchlist are required")
	}

	mux := http.NewServeMux()

	var handler http.Handler = mux
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = metrics.LoggingMiddleware(logger)(handler)

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	marketH := apihandler.NewMarketHandler(deps.Provider, deps.Metrics)
	predictionsH := apihandler.NewPredictionsHandler(deps.Engine, deps.Metrics)
	authH := apihandler.NewAuthHandler(deps.Sessions, deps.Metrics)
	watchlistH := apihandler.NewWatchlistHandler(deps.Watchlist, deps.Provider, deps.Metrics)

	auth := middleware.APIKeyAuth(cfg.APIKey)
	protect := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	s.mux.Handle("GET /api/v1/symbols/search", protect(marketH.Search))
	s.mux.Handle("GET /api/v1/symbols/{symbol}/quote", protect(marketH.Quote))
	s.mux.Handle("GET /api/v1/symbols/{symbol}/history", protect(marketH.History))
	s.mux.Handle("GET /api/v1/symbols/{symbol}/news", protect(marketH.News))
	s.mux.Handle("GET /api/v1/market/movers", protect(marketH.Movers))
	s.mux.Handle("GET /api/v1/market/indices", protect(marketH.Indices))

	s.mux.Handle("GET /api/v1/predictions/{symbol}", protect(predictionsH.Predict))
	s.mux.Handle("GET /api/v1/models", protect(predictionsH.Models))

	s.mux.Handle("POST /api/v1/auth/login", protect(authH.Login))
	s.mux.Handle("POST /api/v1/auth/register", protect(authH.Register))
	s.mux.Handle("POST /api/v1/auth/logout", protect(authH.Logout))
	s.mux.Handle("GET /api/v1/auth/me", protect(authH.Me))

	s.mux.Handle("GET /api/v1/watchlist", protect(watchlistH.List))
	s.mux.Handle("POST /api/v1/watchlist", protect(watchlistH.Add))
	s.mux.Handle("DELETE /api/v1/watchlist/{symbol}", protect(watchlistH.Remove))

	if deps.Feed != nil {
		noticesH := apihandler.NewNoticesHandler(deps.Feed)
		s.mux.Handle("GET /api/v1/notices", protect(noticesH.List))
	}

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if cfg.MetricsEnabled && deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
