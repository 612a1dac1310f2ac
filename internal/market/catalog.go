// internal/market/catalog.go
package market

// CatalogEntry is one known symbol with its randomization anchor price.
type CatalogEntry struct {
	Symbol    string
	Name      string
	BasePrice float64
}

// catalog is the fixed table of known symbols. Every generated quote,
// history series and prediction is seeded from these base prices.
var catalog = []CatalogEntry{
	{"AAPL", "Apple Inc.", 180.32},
	{"MSFT", "Microsoft Corporation", 403.78},
	{"GOOGL", "Alphabet Inc.", 142.65},
	{"AMZN", "Amazon.com, Inc.", 175.89},
	{"META", "Meta Platforms, Inc.", 465.20},
	{"TSLA", "Tesla, Inc.", 251.05},
	{"NVDA", "NVIDIA Corporation", 432.76},
	{"JPM", "JPMorgan Chase & Co.", 198.43},
	{"V", "Visa Inc.", 264.15},
	{"WMT", "Walmart Inc.", 69.34},
	{"JNJ", "Johnson & Johnson", 151.89},
	{"PG", "Procter & Gamble Co.", 162.50},
	{"UNH", "UnitedHealth Group Inc.", 515.67},
	{"HD", "The Home Depot, Inc.", 342.80},
	{"BAC", "Bank of America Corp.", 39.42},
}

// indexEntry is one market index with its base level.
type indexEntry struct {
	Name      string
	Symbol    string
	BaseLevel float64
}

var indices = []indexEntry{
	{"S&P 500", "SPX", 4769.83},
	{"Dow Jones", "DJI", 37305.16},
	{"Nasdaq", "COMP", 15310.97},
	{"Russell 2000", "RUT", 2023.83},
}

// headlineTemplates are formatted with the company name.
var headlineTemplates = []string{
	"%s Reports Q2 Earnings Above Expectations",
	"Analysts Upgrade %s to Buy",
	"%s Announces New Product Line",
	"%s Expands Operations in European Markets",
	"Investors Remain Bullish on %s's Growth Prospects",
	"%s Addresses Supply Chain Challenges",
	"%s CEO Discusses Future Strategy in Interview",
	"%s Introduces Sustainable Business Practices",
}

var newsSources = []string{
	"Bloomberg",
	"CNBC",
	"Reuters",
	"Wall Street Journal",
	"Seeking Alpha",
	"MarketWatch",
}

const newsSummary = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. " +
	"Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. " +
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris " +
	"nisi ut aliquip ex ea commodo consequat."
