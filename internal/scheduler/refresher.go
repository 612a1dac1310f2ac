// internal/scheduler/refresher.go
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/stockml/stockml/internal/market"
	"github.com/stockml/stockml/internal/watchlist"
)

// Refresher periodically re-quotes the symbols in the watchlist and
// updates their stored price snapshots, so the persisted list does not
// drift too far from the live quotes between visits.
type Refresher struct {
	schedule  string
	provider  market.Provider
	watchlist *watchlist.Store
	logger    *zap.Logger
	cron      *cron.Cron
}

// NewRefresher creates a refresher with a standard 5-field cron schedule.
func NewRefresher(schedule string, provider market.Provider, wl *watchlist.Store, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		schedule:  schedule,
		provider:  provider,
		watchlist: wl,
		logger:    logger,
	}
}

// Start validates the schedule and begins running refreshes in the
// background until Stop is called.
func (r *Refresher) Start() error {
	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return err
	}

	r.cron = cron.New()
	if _, err := r.cron.AddFunc(r.schedule, func() {
		if err := r.RefreshOnce(context.Background()); err != nil {
			r.logger.Warn("watchlist refresh", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info("watchlist refresher started", zap.String("schedule", r.schedule))
	return nil
}

// Stop halts the background schedule. Safe to call without Start.
func (r *Refresher) Stop() {
	if r.cron != nil {
		ctx := r.cron.Stop()
		<-ctx.Done()
	}
}

// RefreshOnce re-quotes every watched symbol and writes the updated
// snapshots back. Symbols whose quote fails are skipped; the first
// failure is reported after the pass completes.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	var firstErr error

	for _, item := range r.watchlist.Items() {
		quote, err := r.provider.Quote(ctx, item.Symbol)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if quote == nil {
			continue
		}

		if err := r.watchlist.UpdateSnapshot(ctx, item.Symbol, quote.LatestPrice, quote.Change, quote.ChangePercent); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		r.logger.Debug("snapshot refreshed",
			zap.String("symbol", item.Symbol),
			zap.Float64("price", quote.LatestPrice))
	}

	return firstErr
}
