// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/stockml/stockml/internal/config"
	"github.com/stockml/stockml/internal/kvstore"
	"github.com/stockml/stockml/internal/market"
	"github.com/stockml/stockml/internal/metrics"
	"github.com/stockml/stockml/internal/notice"
	"github.com/stockml/stockml/internal/predict"
	"github.com/stockml/stockml/internal/scheduler"
	"github.com/stockml/stockml/internal/session"
	"github.com/stockml/stockml/internal/watchlist"
)

// feedSize bounds the retained notification feed.
const feedSize = 200

// App wires the stores and engines together from configuration. It is
// the composition root the serve command and tests build on.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	KV        kvstore.Store
	Feed      *notice.MemoryFeed
	Notices   *notice.Registry
	Provider  market.Provider
	Engine    *predict.Engine
	Sessions  *session.Store
	Watchlist *watchlist.Store
	Metrics   *metrics.Registry

	refresher *scheduler.Refresher
}

// New builds the application graph. A persisted session is resumed
// before the watchlist store is constructed, so the watchlist loads the
// restored identity's collection.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	kv, err := newStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("creating storage backend: %w", err)
	}

	m := metrics.NewRegistry()

	feed := notice.NewMemoryFeed(feedSize)
	notices := notice.NewRegistry()
	if err := notices.Register(notice.NewLogNotifier(logger)); err != nil {
		return nil, err
	}
	if err := notices.Register(feed); err != nil {
		return nil, err
	}
	if err := notices.Register(&noticeCounter{metrics: m}); err != nil {
		return nil, err
	}

	latency := cfg.Simulator.Latency
	simulator := market.NewSimulator(market.Config{
		Seed: cfg.Simulator.Seed,
		Latency: market.Latency{
			Search:     latency.Search,
			Quote:      latency.Quote,
			History:    latency.History,
			News:       latency.News,
			Movers:     latency.Movers,
			Indices:    latency.Indices,
			Prediction: latency.Prediction,
			Auth:       latency.Auth,
		},
	}, logger)

	sessions := session.New(session.Config{Latency: latency.Auth}, kv, notices, logger)
	if err := sessions.Rehydrate(ctx); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	wl := watchlist.New(kv, sessions, notices, logger)

	engine := predict.New(predict.Config{
		Latency: latency.Prediction,
		Seed:    cfg.Simulator.Seed,
	}, simulator, logger)

	a := &App{
		cfg:       cfg,
		logger:    logger,
		KV:        kv,
		Feed:      feed,
		Notices:   notices,
		Provider:  simulator,
		Engine:    engine,
		Sessions:  sessions,
		Watchlist: wl,
		Metrics:   m,
	}

	if cfg.Refresher.Enabled {
		a.refresher = scheduler.NewRefresher(cfg.Refresher.Schedule, simulator, wl, logger)
	}

	return a, nil
}

// Start launches the background refresher, when configured.
func (a *App) Start() error {
	if a.refresher != nil {
		return a.refresher.Start()
	}
	return nil
}

// Close stops background work and releases the storage backend.
func (a *App) Close() error {
	if a.refresher != nil {
		a.refresher.Stop()
	}
	if closer, ok := a.KV.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// noticeCounter mirrors every emitted notice into the metrics registry.
type noticeCounter struct {
	metrics *metrics.Registry
}

func (n *noticeCounter) Name() string { return "metrics" }

func (n *noticeCounter) Notify(ntc notice.Notice) {
	n.metrics.RecordNotice(string(ntc.Severity))
}

func newStore(cfg config.StorageConfig) (kvstore.Store, error) {
	switch cfg.Backend {
	case "memory":
		return kvstore.NewMemory(), nil
	case "localfs":
		return kvstore.NewLocalFS(cfg.Path)
	case "sqlite":
		return kvstore.NewSQLite(cfg.DSN)
	case "s3":
		return kvstore.NewS3(kvstore.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
