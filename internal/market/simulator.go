// internal/market/simulator.go
package market

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockml/stockml/internal/core"
)

// Config holds simulator configuration.
type Config struct {
	Latency Latency
	Seed    int64 // 0 seeds from the clock
}

// Simulator generates randomized market data for the fixed catalog.
// Every call regenerates from the base prices; repeated calls for the
// same symbol return different values. That is deliberate simulation
// noise, not a caching bug.
type Simulator struct {
	cfg     Config
	logger  *zap.Logger
	entries []CatalogEntry
	bySym   map[string]CatalogEntry

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a simulator over the built-in catalog.
func NewSimulator(cfg Config, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bySym := make(map[string]CatalogEntry, len(catalog))
	for _, e := range catalog {
		bySym[e.Symbol] = e
	}

	return &Simulator{
		cfg:     cfg,
		logger:  logger,
		entries: catalog,
		bySym:   bySym,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Lookup returns the catalog entry for a symbol, case-insensitively.
func (s *Simulator) Lookup(symbol string) (CatalogEntry, bool) {
	e, ok := s.bySym[strings.ToUpper(symbol)]
	return e, ok
}

// Catalog returns the full symbol table.
func (s *Simulator) Catalog() []CatalogEntry {
	result := make([]CatalogEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

func (s *Simulator) Search(ctx context.Context, query string) ([]core.SearchResult, error) {
	if err := s.simulate(ctx, s.cfg.Latency.Search); err != nil {
		return nil, err
	}

	results := []core.SearchResult{}
	if query == "" {
		return results, nil
	}

	q := strings.ToLower(query)
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.Symbol), q) ||
			strings.Contains(strings.ToLower(e.Name), q) {
			results = append(results, core.SearchResult{Symbol: e.Symbol, Name: e.Name})
		}
	}
	return results, nil
}

func (s *Simulator) Quote(ctx context.Context, symbol string) (*core.Quote, error) {
	if err := s.simulate(ctx, s.cfg.Latency.Quote); err != nil {
		return nil, err
	}

	entry, ok := s.Lookup(symbol)
	if !ok {
		// Soft fail: callers render a not-found panel, not an error.
		s.logger.Debug("quote for unknown symbol", zap.String("symbol", symbol))
		return nil, nil
	}

	latest := s.perturb(entry.BasePrice, 0.02)
	previous := s.perturb(entry.BasePrice, 0.005)
	change := latest - previous

	quote := &core.Quote{
		Symbol:        entry.Symbol,
		CompanyName:   entry.Name,
		LatestPrice:   latest,
		PreviousClose: previous,
		Change:        change,
		ChangePercent: change / previous,
		High:          latest * (1 + s.float64()*0.01),
		Low:           latest * (1 - s.float64()*0.01),
		Volume:        s.volume(),
		AvgVolume:     int64(s.float64()*15_000_000) + 2_000_000,
		MarketCap:     latest * (s.float64()*10_000_000_000 + 100_000_000_000),
	}

	// ~10% of quotes have no P/E figure.
	if s.float64() > 0.1 {
		pe := s.float64()*40 + 10
		quote.PERatio = &pe
	}

	return quote, nil
}

func (s *Simulator) History(ctx context.Context, symbol string, rng core.Range) ([]core.HistoricalPoint, error) {
	if err := s.simulate(ctx, s.cfg.Latency.History); err != nil {
		return nil, err
	}

	entry, ok := s.Lookup(symbol)
	if !ok {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("stock %s not found", symbol))
	}

	days, ok := rng.Days()
	if !ok {
		days, _ = core.Range1M.Days()
	}

	return s.generateSeries(entry.BasePrice, days), nil
}

// generateSeries walks backward from today producing one OHLCV point
// per weekday. Each day's open perturbs the running price and the next
// day chains from the close, keeping the series continuous.
func (s *Simulator) generateSeries(basePrice float64, days int) []core.HistoricalPoint {
	points := make([]core.HistoricalPoint, 0, days)
	price := basePrice
	now := time.Now().UTC().Truncate(24 * time.Hour)

	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		open := s.perturb(price, 0.01)
		closing := s.perturb(open, 0.02)
		high := math.Max(open, closing) * (1 + s.float64()*0.01)
		low := math.Min(open, closing) * (1 - s.float64()*0.01)

		points = append(points, core.HistoricalPoint{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closing,
			Volume: s.volume(),
		})

		price = closing
	}

	return points
}

func (s *Simulator) News(ctx context.Context, symbol string) ([]core.NewsItem, error) {
	if err := s.simulate(ctx, s.cfg.Latency.News); err != nil {
		return nil, err
	}

	entry, ok := s.Lookup(symbol)
	if !ok {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("stock %s not found", symbol))
	}

	now := time.Now()
	news := make([]core.NewsItem, 0, 5)

	for i := 0; i < 5; i++ {
		headline := fmt.Sprintf(headlineTemplates[s.intn(len(headlineTemplates))], entry.Name)
		published := now.AddDate(0, 0, -s.intn(7))

		news = append(news, core.NewsItem{
			ID:       uuid.NewString(),
			Headline: headline,
			Source:   newsSources[s.intn(len(newsSources))],
			URL:      "#",
			Summary:  newsSummary,
			Image:    fmt.Sprintf("https://source.unsplash.com/random/300x200?business,%d", i),
			Datetime: published,
			Related:  entry.Symbol,
		})
	}

	return news, nil
}

func (s *Simulator) TopMovers(ctx context.Context) (*core.TopMovers, error) {
	if err := s.simulate(ctx, s.cfg.Latency.Movers); err != nil {
		return nil, err
	}

	movers := make([]core.Mover, 0, len(s.entries))
	for _, e := range s.entries {
		change := s.float64()*20 - 10 // -10% to +10%
		movers = append(movers, core.Mover{
			Symbol: e.Symbol,
			Name:   e.Name,
			Change: change,
			Price:  e.BasePrice * (1 + change/100),
		})
	}

	sort.Slice(movers, func(i, j int) bool { return movers[i].Change > movers[j].Change })

	gainers := []core.Mover{}
	for _, m := range movers[:min(5, len(movers))] {
		if m.Change > 0 {
			gainers = append(gainers, m)
		}
	}

	losers := []core.Mover{}
	tail := movers[max(0, len(movers)-5):]
	for i := len(tail) - 1; i >= 0; i-- {
		if tail[i].Change < 0 {
			losers = append(losers, tail[i])
		}
	}

	return &core.TopMovers{Gainers: gainers, Losers: losers}, nil
}

func (s *Simulator) Indices(ctx context.Context) ([]core.Index, error) {
	if err := s.simulate(ctx, s.cfg.Latency.Indices); err != nil {
		return nil, err
	}

	result := make([]core.Index, 0, len(indices))
	for _, idx := range indices {
		changePercent := s.float64()*2 - 1 // -1% to +1%
		price := idx.BaseLevel * (1 + changePercent/100)

		result = append(result, core.Index{
			Name:          idx.Name,
			Symbol:        idx.Symbol,
			Price:         price,
			Change:        price - idx.BaseLevel,
			ChangePercent: changePercent,
		})
	}

	return result, nil
}

// perturb returns base shifted by a uniform random factor within
// ±volatility/2.
func (s *Simulator) perturb(base, volatility float64) float64 {
	return base * (1 + (s.float64()-0.5)*volatility)
}

func (s *Simulator) volume() int64 {
	return int64(s.float64()*10_000_000) + 1_000_000
}

func (s *Simulator) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *Simulator) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// simulate sleeps for the configured artificial latency, honoring
// context cancellation.
func (s *Simulator) simulate(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
