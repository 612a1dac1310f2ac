// internal/api/handler/api/predictions_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockml/stockml/internal/api/response"
	"github.com/stockml/stockml/internal/market"
	"github.com/stockml/stockml/internal/predict"
)

func newPredictionsHandler() *PredictionsHandler {
	provider := market.NewSimulator(market.Config{Seed: 5}, nil)
	engine := predict.New(predict.Config{Seed: 5}, provider, nil)
	return NewPredictionsHandler(engine, nil)
}

func TestPredictionsHandler_Predict(t *testing.T) {
	h := newPredictionsHandler()

	req := httptest.NewRequest("GET", "/api/v1/predictions/AAPL?model=LSTM&days=10", nil)
	req.SetPathValue("symbol", "AAPL")
	w := httptest.NewRecorder()

	h.Predict(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	data := resp.Data.(map[string]any)
	if data["model"] != "LSTM" {
		t.Errorf("expected model LSTM, got %v", data["model"])
	}
	if len(data["historical"].([]any)) == 0 {
		t.Error("expected historical window")
	}
	if len(data["predicted"].([]any)) == 0 {
		t.Error("expected predicted points")
	}
	if _, ok := data["metrics"].(map[string]any)["rmse"]; !ok {
		t.Error("expected rmse in metrics")
	}
}

func TestPredictionsHandler_Predict_DefaultsToLSTM(t *testing.T) {
	h := newPredictionsHandler()

	req := httptest.NewRequest("GET", "/api/v1/predictions/MSFT", nil)
	req.SetPathValue("symbol", "MSFT")
	w := httptest.NewRecorder()

	h.Predict(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp.Data.(map[string]any)
	if data["model"] != "LSTM" {
		t.Errorf("expected default model LSTM, got %v", data["model"])
	}
}

func TestPredictionsHandler_Predict_UnsupportedModel(t *testing.T) {
	h := newPredictionsHandler()

	req := httptest.NewRequest("GET", "/api/v1/predictions/AAPL?model=GPT", nil)
	req.SetPathValue("symbol", "AAPL")
	w := httptest.NewRecorder()

	h.Predict(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	var resp response.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "MODEL_NOT_SUPPORTED" {
		t.Errorf("expected MODEL_NOT_SUPPORTED, got %s", resp.Error.Code)
	}
}

func TestPredictionsHandler_Predict_InvalidDays(t *testing.T) {
	h := newPredictionsHandler()

	for _, days := range []string{"abc", "0", "-5", "9999"} {
		req := httptest.NewRequest("GET", "/api/v1/predictions/AAPL?days="+days, nil)
		req.SetPathValue("symbol", "AAPL")
		w := httptest.NewRecorder()

		h.Predict(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("days=%s: expected 400, got %d", days, w.Code)
		}
	}
}

func TestPredictionsHandler_Predict_UnknownSymbol(t *testing.T) {
	h := newPredictionsHandler()

	req := httptest.NewRequest("GET", "/api/v1/predictions/ZZZZ", nil)
	req.SetPathValue("symbol", "ZZZZ")
	w := httptest.NewRecorder()

	h.Predict(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestPredictionsHandler_Models(t *testing.T) {
	h := newPredictionsHandler()

	req := httptest.NewRequest("GET", "/api/v1/models", nil)
	w := httptest.NewRecorder()

	h.Models(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	data := resp.Data.(map[string]any)
	models := data["models"].([]any)
	if len(models) != 4 {
		t.Errorf("expected 4 models, got %d", len(models))
	}
}
