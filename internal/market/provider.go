// internal/market/provider.go
package market

import (
	"context"
	"time"

	"github.com/stockml/stockml/internal/core"
)

// Provider defines the interface for market data. The simulator is the
// only implementation today; a real data feed can replace it without
// touching callers as long as the not-found semantics are kept.
type Provider interface {
	// Search matches query against symbol and company name,
	// case-insensitively. An empty query returns an empty result.
	Search(ctx context.Context, query string) ([]core.SearchResult, error)

	// Quote returns the latest snapshot for a symbol. An unknown
	// symbol returns (nil, nil) so callers can render a soft
	// not-found state.
	Quote(ctx context.Context, symbol string) (*core.Quote, error)

	// History returns an OHLCV series for the range, trading days
	// only, ascending by date. Unknown symbols fail with
	// core.ErrSymbolNotFound.
	History(ctx context.Context, symbol string, rng core.Range) ([]core.HistoricalPoint, error)

	// News returns recent stories for a symbol. Unknown symbols fail
	// with core.ErrSymbolNotFound.
	News(ctx context.Context, symbol string) ([]core.NewsItem, error)

	// TopMovers returns the day's top gainers and losers.
	TopMovers(ctx context.Context) (*core.TopMovers, error)

	// Indices returns the tracked market index levels.
	Indices(ctx context.Context) ([]core.Index, error)
}

// Latency holds the artificial per-operation delays that stand in for
// network round trips. Zero values disable the delay.
type Latency struct {
	Search     time.Duration `mapstructure:"search"`
	Quote      time.Duration `mapstructure:"quote"`
	History    time.Duration `mapstructure:"history"`
	News       time.Duration `mapstructure:"news"`
	Movers     time.Duration `mapstructure:"movers"`
	Indices    time.Duration `mapstructure:"indices"`
	Prediction time.Duration `mapstructure:"prediction"`
	Auth       time.Duration `mapstructure:"auth"`
}

// DefaultLatency returns the delays the original service simulated.
func DefaultLatency() Latency {
	return Latency{
		Search:     300 * time.Millisecond,
		Quote:      500 * time.Millisecond,
		History:    700 * time.Millisecond,
		News:       600 * time.Millisecond,
		Movers:     800 * time.Millisecond,
		Indices:    500 * time.Millisecond,
		Prediction: 1500 * time.Millisecond,
		Auth:       800 * time.Millisecond,
	}
}
