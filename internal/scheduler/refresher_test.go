// internal/scheduler/refresher_test.go
package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/kvstore"
	"github.com/stockml/stockml/internal/market"
	"github.com/stockml/stockml/internal/notice"
	"github.com/stockml/stockml/internal/session"
	"github.com/stockml/stockml/internal/watchlist"
)

func newTestWatchlist(t *testing.T) *watchlist.Store {
	t.Helper()
	kv := kvstore.NewMemory()
	registry := notice.NewRegistry()
	sessions := session.New(session.Config{}, kv, registry, nil)

	_, err := sessions.Login(context.Background(), "jane@x.com", "longenough")
	require.NoError(t, err)

	return watchlist.New(kv, sessions, registry, nil)
}

func TestRefresher_RefreshOnce(t *testing.T) {
	wl := newTestWatchlist(t)
	ctx := context.Background()

	_, err := wl.Add(ctx, core.WatchlistItem{Symbol: "AAPL", Name: "Apple Inc."})
	require.NoError(t, err)

	provider := market.NewSimulator(market.Config{Seed: 11}, nil)
	r := NewRefresher("*/5 * * * *", provider, wl, nil)

	require.NoError(t, r.RefreshOnce(ctx))

	items := wl.Items()
	require.Len(t, items, 1)
	assert.Greater(t, items[0].LastPrice, 0.0, "snapshot picks up the refreshed quote")
}

func TestRefresher_RefreshOnce_SkipsUnknownSymbols(t *testing.T) {
	wl := newTestWatchlist(t)
	ctx := context.Background()

	// An entry whose symbol has left the catalog must not abort the pass.
	_, err := wl.Add(ctx, core.WatchlistItem{Symbol: "GONE", Name: "Delisted Corp"})
	require.NoError(t, err)
	_, err = wl.Add(ctx, core.WatchlistItem{Symbol: "MSFT", Name: "Microsoft Corporation"})
	require.NoError(t, err)

	provider := market.NewSimulator(market.Config{Seed: 11}, nil)
	r := NewRefresher("*/5 * * * *", provider, wl, nil)

	require.NoError(t, r.RefreshOnce(ctx))

	for _, item := range wl.Items() {
		if item.Symbol == "MSFT" {
			assert.Greater(t, item.LastPrice, 0.0)
		}
		if item.Symbol == "GONE" {
			assert.Zero(t, item.LastPrice, "unknown symbol keeps its stale snapshot")
		}
	}
}

func TestRefresher_Start_InvalidSchedule(t *testing.T) {
	wl := newTestWatchlist(t)
	provider := market.NewSimulator(market.Config{Seed: 11}, nil)

	r := NewRefresher("not a schedule", provider, wl, nil)
	assert.Error(t, r.Start())
}

func TestRefresher_StopWithoutStart(t *testing.T) {
	wl := newTestWatchlist(t)
	provider := market.NewSimulator(market.Config{Seed: 11}, nil)

	r := NewRefresher("*/5 * * * *", provider, wl, nil)
	r.Stop()
}
