// internal/predict/engine.go
package predict

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/market"
)

// modelParams are the per-model prediction shape constants.
type modelParams struct {
	volatility float64
	trend      float64
}

// Each supported model name maps to a (volatility, trend) pair that
// shapes its synthetic continuation.
var modelTable = map[string]modelParams{
	core.ModelLSTM:             {volatility: 0.015, trend: 0.001},
	core.ModelARIMA:            {volatility: 0.02, trend: 0.0005},
	core.ModelLinearRegression: {volatility: 0.01, trend: 0.0008},
	core.ModelProphet:          {volatility: 0.018, trend: 0.0012},
}

// Config holds engine configuration.
type Config struct {
	Latency time.Duration
	Seed    int64 // 0 seeds from the clock
}

// Engine produces mock predictions by extending a historical window
// with a model-shaped random walk. There is no trained model behind it;
// metrics are fabricated within plausible ranges.
type Engine struct {
	cfg      Config
	provider market.Provider
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a prediction engine over a market data provider.
func New(cfg Config, provider market.Provider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg:      cfg,
		provider: provider,
		logger:   logger,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Predict returns the trailing 3-month window, a synthetic continuation
// for up to days trading days, and fabricated metrics.
//
// The forward loop runs exactly days calendar-day steps and skips
// weekends as encountered, so the emitted point count can be lower than
// days. This matches the contract callers already depend on.
func (e *Engine) Predict(ctx context.Context, symbol, model string, days int) (*core.Prediction, error) {
	if err := e.simulate(ctx); err != nil {
		return nil, err
	}

	params, ok := modelTable[model]
	if !ok {
		return nil, core.WrapError(core.ErrModelNotSupported, fmt.Errorf("model %s is not supported", model))
	}

	if days <= 0 {
		days = 30
	}

	historical, err := e.provider.History(ctx, symbol, core.Range3M)
	if err != nil {
		return nil, err
	}
	if len(historical) == 0 {
		return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("no historical data for %s", symbol))
	}

	last := historical[len(historical)-1]
	price := last.Close
	predicted := make([]core.HistoricalPoint, 0, days)

	for i := 1; i <= days; i++ {
		date := last.Date.AddDate(0, 0, i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		price = price * (1 + params.trend)

		open := e.perturb(price, params.volatility*0.5)
		closing := e.perturb(price, params.volatility)
		high := math.Max(open, closing) * (1 + e.float64()*0.01)
		low := math.Min(open, closing) * (1 - e.float64()*0.01)

		predicted = append(predicted, core.HistoricalPoint{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closing,
			Volume: int64(e.float64()*10_000_000) + 1_000_000,
		})

		price = closing
	}

	e.logger.Debug("prediction generated",
		zap.String("symbol", symbol),
		zap.String("model", model),
		zap.Int("horizon_days", days),
		zap.Int("points", len(predicted)),
	)

	return &core.Prediction{
		Historical: historical,
		Predicted:  predicted,
		Metrics: core.PredictionMetrics{
			RMSE:     1 + e.float64()*3,
			MAPE:     2 + e.float64()*5,
			Accuracy: 85 + e.float64()*10,
			R2Score:  0.7 + e.float64()*0.25,
		},
	}, nil
}

// Models returns the supported model names.
func (e *Engine) Models() []string {
	return core.Models()
}

func (e *Engine) perturb(base, volatility float64) float64 {
	return base * (1 + (e.float64()-0.5)*volatility)
}

func (e *Engine) float64() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}

func (e *Engine) simulate(ctx context.Context) error {
	if e.cfg.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.cfg.Latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
