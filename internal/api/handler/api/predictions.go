// internal/api/handler/api/predictions.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/stockml/stockml/internal/api/response"
	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/metrics"
	"github.com/stockml/stockml/internal/predict"
)

// PredictionsHandler serves the mock prediction endpoints.
type PredictionsHandler struct {
	engine  *predict.Engine
	metrics *metrics.Registry
}

// NewPredictionsHandler creates a new predictions handler. The metrics
// registry may be nil.
func NewPredictionsHandler(engine *predict.Engine, reg *metrics.Registry) *PredictionsHandler {
	return &PredictionsHandler{engine: engine, metrics: reg}
}

// Predict handles GET /api/v1/predictions/{symbol}?model=LSTM&days=30
func (h *PredictionsHandler) Predict(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	model := r.URL.Query().Get("model")
	if model == "" {
		model = core.ModelLSTM
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			response.DomainError(w, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("days must be an integer between 1 and 365")))
			return
		}
		days = parsed
	}

	start := time.Now()
	prediction, err := h.engine.Predict(r.Context(), symbol, model, days)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordPrediction(model, time.Since(start).Seconds())
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol":     symbol,
		"model":      model,
		"historical": prediction.Historical,
		"predicted":  prediction.Predicted,
		"metrics":    prediction.Metrics,
	})
}

// Models handles GET /api/v1/models
func (h *PredictionsHandler) Models(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"models": h.engine.Models(),
	})
}
