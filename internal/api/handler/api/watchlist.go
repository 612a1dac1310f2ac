// internal/api/handler/api/watchlist.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/stockml/stockml/internal/api/response"
	"github.com/stockml/stockml/internal/core"
	"github.com/stockml/stockml/internal/market"
	"github.com/stockml/stockml/internal/metrics"
	"github.com/stockml/stockml/internal/watchlist"
)

// WatchlistHandler serves the watchlist endpoints.
type WatchlistHandler struct {
	watchlist *watchlist.Store
	provider  market.Provider
	metrics   *metrics.Registry
}

// NewWatchlistHandler creates a new watchlist handler. The metrics
// registry may be nil.
func NewWatchlistHandler(wl *watchlist.Store, provider market.Provider, reg *metrics.Registry) *WatchlistHandler {
	return &WatchlistHandler{watchlist: wl, provider: provider, metrics: reg}
}

// AddRequest is the request body for adding a symbol.
type AddRequest struct {
	Symbol string `json:"symbol"`
}

// List handles GET /api/v1/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.watchlist.Items()
	response.JSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

// Add handles POST /api/v1/watchlist. The symbol is quoted at add time
// so the stored entry carries a price snapshot.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}
	if req.Symbol == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigMissing, nil))
		return
	}

	quote, err := h.provider.Quote(r.Context(), req.Symbol)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if quote == nil {
		response.DomainError(w, core.ErrSymbolNotFound)
		return
	}

	added, err := h.watchlist.Add(r.Context(), core.WatchlistItem{
		Symbol:        quote.Symbol,
		Name:          quote.CompanyName,
		LastPrice:     quote.LatestPrice,
		PriceChange:   quote.Change,
		PercentChange: quote.ChangePercent,
	})
	if err != nil {
		response.DomainError(w, err)
		return
	}

	h.setSize()
	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	response.JSON(w, status, map[string]any{
		"symbol": quote.Symbol,
		"added":  added,
	})
}

// Remove handles DELETE /api/v1/watchlist/{symbol}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	removed, err := h.watchlist.Remove(r.Context(), symbol)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if !removed {
		response.Error(w, http.StatusNotFound, core.ErrSymbolNotFound)
		return
	}

	h.setSize()
	response.JSON(w, http.StatusOK, map[string]any{
		"symbol":  symbol,
		"removed": true,
	})
}

func (h *WatchlistHandler) setSize() {
	if h.metrics != nil {
		h.metrics.SetWatchlistSize(len(h.watchlist.Items()))
	}
}
