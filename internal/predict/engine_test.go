// internal/predict/engine_test.go
package predict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/market"
)

func newTestEngine() *Engine {
	provider := market.NewSimulator(market.Config{Seed: 7}, nil)
	return New(Config{Seed: 7}, provider, nil)
}

func TestEngine_Predict(t *testing.T) {
	e := newTestEngine()

	pred, err := e.Predict(context.Background(), "AAPL", core.ModelLSTM, 30)
	require.NoError(t, err)

	require.NotEmpty(t, pred.Historical)
	require.NotEmpty(t, pred.Predicted)

	// The continuation starts right after the historical window and
	// chains from its last close.
	lastHist := pred.Historical[len(pred.Historical)-1]
	first := pred.Predicted[0]
	assert.True(t, first.Date.After(lastHist.Date))
	assert.InEpsilon(t, lastHist.Close, first.Open, 0.02)

	for i, p := range pred.Predicted {
		wd := p.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
		assert.GreaterOrEqual(t, p.High, p.Open)
		assert.GreaterOrEqual(t, p.High, p.Close)
		assert.LessOrEqual(t, p.Low, p.Open)
		assert.LessOrEqual(t, p.Low, p.Close)
		if i > 0 {
			assert.True(t, p.Date.After(pred.Predicted[i-1].Date))
		}
	}
}

func TestEngine_Predict_HorizonCountsCalendarDays(t *testing.T) {
	e := newTestEngine()

	pred, err := e.Predict(context.Background(), "AAPL", core.ModelARIMA, 14)
	require.NoError(t, err)

	// 14 calendar-day steps include two weekends, so exactly 10
	// trading-day points are emitted.
	assert.Equal(t, 10, len(pred.Predicted))
}

func TestEngine_Predict_Metrics(t *testing.T) {
	e := newTestEngine()

	pred, err := e.Predict(context.Background(), "NVDA", core.ModelProphet, 30)
	require.NoError(t, err)

	m := pred.Metrics
	assert.GreaterOrEqual(t, m.RMSE, 1.0)
	assert.LessOrEqual(t, m.RMSE, 4.0)
	assert.GreaterOrEqual(t, m.MAPE, 2.0)
	assert.LessOrEqual(t, m.MAPE, 7.0)
	assert.GreaterOrEqual(t, m.Accuracy, 85.0)
	assert.LessOrEqual(t, m.Accuracy, 95.0)
	assert.GreaterOrEqual(t, m.R2Score, 0.7)
	assert.LessOrEqual(t, m.R2Score, 0.95)
}

func TestEngine_Predict_UnsupportedModel(t *testing.T) {
	e := newTestEngine()

	for _, model := range []string{"GPT", "lstm", ""} {
		_, err := e.Predict(context.Background(), "AAPL", model, 30)
		assert.True(t, errors.Is(err, core.ErrModelNotSupported), "model %q should be rejected", model)
	}
}

func TestEngine_Predict_UnknownSymbol(t *testing.T) {
	e := newTestEngine()

	_, err := e.Predict(context.Background(), "ZZZZ", core.ModelLSTM, 30)
	assert.True(t, errors.Is(err, core.ErrSymbolNotFound))
}

func TestEngine_Predict_DefaultHorizon(t *testing.T) {
	e := newTestEngine()

	pred, err := e.Predict(context.Background(), "MSFT", core.ModelLinearRegression, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, pred.Predicted)
}

func TestEngine_Models(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, core.Models(), e.Models())
}
