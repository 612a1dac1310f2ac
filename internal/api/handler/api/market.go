// internal/api/handler/api/market.go
package api

import (
	"net/http"

	"github.com/stockml/stockml/internal/api/response"
	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/market"
	"github.com/stockml/stockml/internal/metrics"
)

// MarketHandler serves the market data endpoints.
type MarketHandler struct {
	provider market.Provider
	metrics  *metrics.Registry
}

// NewMarketHandler creates a new market data handler. The metrics
// registry may be nil.
func NewMarketHandler(provider market.Provider, reg *metrics.Registry) *MarketHandler {
	return &MarketHandler{provider: provider, metrics: reg}
}

// Search handles GET /api/v1/symbols/search?q=<query>
func (h *MarketHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.provider.Search(r.Context(), query)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if results == nil {
		results = []core.SearchResult{}
	}

	h.record("search")
	response.JSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

// Quote handles GET /api/v1/symbols/{symbol}/quote. An unknown symbol
// yields a 200 with a null quote so clients can render a soft
// not-found state.
func (h *MarketHandler) Quote(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	quote, err := h.provider.Quote(r.Context(), symbol)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordQuote(quote != nil)
	}
	response.JSON(w, http.StatusOK, quote)
}

// History handles GET /api/v1/symbols/{symbol}/history?range=1m
func (h *MarketHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	rng := core.Range(r.URL.Query().Get("range"))
	if rng == "" {
		rng = core.Range1M
	}
	if _, ok := rng.Days(); !ok {
		response.DomainError(w, core.WrapError(core.ErrConfigInvalid, nil))
		return
	}

	points, err := h.provider.History(r.Context(), symbol, rng)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	h.record("history")
	response.JSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"range":  rng,
		"points": points,
	})
}

// News handles GET /api/v1/symbols/{symbol}/news
func (h *MarketHandler) News(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	items, err := h.provider.News(r.Context(), symbol)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	h.record("news")
	response.JSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"items":  items,
	})
}

// Movers handles GET /api/v1/market/movers
func (h *MarketHandler) Movers(w http.ResponseWriter, r *http.Request) {
	movers, err := h.provider.TopMovers(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}

	h.record("movers")
	response.JSON(w, http.StatusOK, movers)
}

// Indices handles GET /api/v1/market/indices
func (h *MarketHandler) Indices(w http.ResponseWriter, r *http.Request) {
	indices, err := h.provider.Indices(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}

	h.record("indices")
	response.JSON(w, http.StatusOK, map[string]any{
		"indices": indices,
	})
}

func (h *MarketHandler) record(operation string) {
	if h.metrics != nil {
		h.metrics.RecordMarketRequest(operation)
	}
}
