package core

import "time"

// Range identifies a historical data window.
type Range string

const (
	Range1D Range = "1d"
	Range5D Range = "5d"
	Range1M Range = "1m"
	Range3M Range = "3m"
	Range6M Range = "6m"
	Range1Y Range = "1y"
	Range5Y Range = "5y"
)

// Days returns the calendar-day span for the range. The second return
// value is false for unknown tokens.
func (r Range) Days() (int, bool) {
	switch r {
	case Range1D:
		return 1, true
	case Range5D:
		return 5, true
	case Range1M:
		return 30, true
	case Range3M:
		return 90, true
	case Range6M:
		return 180, true
	case Range1Y:
		return 365, true
	case Range5Y:
		return 365 * 5, true
	}
	return 0, false
}

// Supported prediction model names
const (
	ModelLSTM             = "LSTM"
	ModelARIMA            = "ARIMA"
	ModelLinearRegression = "Linear Regression"
	ModelProphet          = "Facebook Prophet"
)

// Models returns the supported prediction model names.
func Models() []string {
	return []string{ModelLSTM, ModelARIMA, ModelLinearRegression, ModelProphet}
}

// Quote is a point-in-time price snapshot for a symbol
type Quote struct {
	Symbol        string   `json:"symbol"`
	CompanyName   string   `json:"companyName"`
	LatestPrice   float64  `json:"latestPrice"`
	PreviousClose float64  `json:"previousClose"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"changePercent"`
	High          float64  `json:"high"`
	Low           float64  `json:"low"`
	Volume        int64    `json:"volume"`
	AvgVolume     int64    `json:"avgVolume"`
	MarketCap     float64  `json:"marketCap"`
	PERatio       *float64 `json:"peRatio"` // nil when unavailable
}

// IsValid checks if the quote has required fields
func (q Quote) IsValid() bool {
	return q.Symbol != "" && q.LatestPrice > 0
}

// HistoricalPoint is one trading day's OHLCV record
type HistoricalPoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// NewsItem is a single simulated news story for a symbol
type NewsItem struct {
	ID       string    `json:"id"`
	Headline string    `json:"headline"`
	Source   string    `json:"source"`
	URL      string    `json:"url"`
	Summary  string    `json:"summary"`
	Image    string    `json:"image"`
	Datetime time.Time `json:"datetime"`
	Related  string    `json:"related"`
}

// SearchResult is a symbol/name pair returned by catalog search
type SearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Mover is one entry in the gainers/losers lists. Change is a
// percentage, not an absolute delta.
type Mover struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Change float64 `json:"change"`
	Price  float64 `json:"price"`
}

// TopMovers holds the day's best and worst performers
type TopMovers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// Index is a market index level snapshot
type Index struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// PredictionMetrics holds illustrative model quality figures. They are
// randomized within plausible ranges, not computed from the series.
type PredictionMetrics struct {
	RMSE     float64 `json:"rmse"`
	MAPE     float64 `json:"mape"`
	Accuracy float64 `json:"accuracy"`
	R2Score  float64 `json:"r2Score"`
}

// Prediction is the result of a mock model run: a trailing historical
// window, the synthesized continuation, and fabricated metrics.
type Prediction struct {
	Historical []HistoricalPoint `json:"historical"`
	Predicted  []HistoricalPoint `json:"predicted"`
	Metrics    PredictionMetrics `json:"metrics"`
}

// User is the authenticated identity
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WatchlistItem is a tracked symbol with its price snapshot at add time
type WatchlistItem struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	LastPrice     float64 `json:"lastPrice,omitempty"`
	PriceChange   float64 `json:"priceChange,omitempty"`
	PercentChange float64 `json:"percentChange,omitempty"`
}
