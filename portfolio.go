package folio

import (
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the reporting currency assumed when a snapshot does not name one.
const DefaultCurrency = "USD"

// Portfolio is an immutable snapshot of a portfolio as assembled by the caller.
//
// Holdings and Transactions keep the order of the source document, PerformanceHistory
// is sorted by ascending date.
type Portfolio struct {
	Address            string             `json:"address"`
	Currency           string             `json:"currency,omitempty"`
	LastUpdated        date.Time          `json:"lastUpdated"`
	Metrics            Metrics            `json:"metrics"`
	Holdings           []AssetHolding     `json:"holdings"`
	Transactions       []Transaction      `json:"transactions"`
	PerformanceHistory []PerformancePoint `json:"performanceHistory"`
	Insights           []Insight          `json:"aiInsights"`
}

// Metrics are the aggregate figures attached to a snapshot.
type Metrics struct {
	TotalValue           decimal.Decimal `json:"totalValue"`
	TotalCost            decimal.Decimal `json:"totalCost"`
	TotalPnL             decimal.Decimal `json:"totalPnL"`
	TotalPnLPercent      Percent         `json:"totalPnLPercent"`
	RealizedPnL          decimal.Decimal `json:"realizedPnL"`
	RealizedPnLPercent   Percent         `json:"realizedPnLPercent"`
	UnrealizedPnL        decimal.Decimal `json:"unrealizedPnL"`
	UnrealizedPnLPercent Percent         `json:"unrealizedPnLPercent"`
	DayReturn            Percent         `json:"dayReturn"`
	WeekReturn           Percent         `json:"weekReturn"`
	MonthReturn          Percent         `json:"monthReturn"`
	YearReturn           Percent         `json:"yearReturn"`
	Volatility           Percent         `json:"volatility"`
	SharpeRatio          float64         `json:"sharpeRatio"`
	MaxDrawdown          Percent         `json:"maxDrawdown"`
	WinRate              Percent         `json:"winRate"`
	TransactionCount     int             `json:"transactionCount"`
	TotalFees            decimal.Decimal `json:"totalFees"`
}

// AssetHolding is the position held in a single asset.
//
// CurrentValue is expected to equal TotalAmount * CurrentPrice, it is never recomputed.
type AssetHolding struct {
	Asset                string          `json:"asset"`
	Type                 string          `json:"type"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	AverageBuyPrice      decimal.Decimal `json:"averageBuyPrice"`
	CurrentPrice         decimal.Decimal `json:"currentPrice"`
	TotalCost            decimal.Decimal `json:"totalCost"`
	CurrentValue         decimal.Decimal `json:"currentValue"`
	UnrealizedPnL        decimal.Decimal `json:"unrealizedPnL"`
	UnrealizedPnLPercent Percent         `json:"unrealizedPnLPercent"`
	RealizedPnL          decimal.Decimal `json:"realizedPnL"`
	TotalPnL             decimal.Decimal `json:"totalPnL"`
	TotalPnLPercent      Percent         `json:"totalPnLPercent"`
	DayChange            Percent         `json:"dayChange"`
	WeekChange           Percent         `json:"weekChange"`
	MonthChange          Percent         `json:"monthChange"`
	FirstPurchase        date.Time       `json:"firstPurchaseDate"`
	LastPurchase         date.Time       `json:"lastPurchaseDate"`
	BuyCount             int             `json:"buyCount"`
	SellCount            int             `json:"sellCount"`
	Volatility30d        Percent         `json:"volatility30d"`
	SharpeRatio          float64         `json:"sharpeRatio"`
}

// TransactionType names the kind of a transaction.
type TransactionType string

const (
	Buy      TransactionType = "buy"
	Sell     TransactionType = "sell"
	Transfer TransactionType = "transfer"
	Swap     TransactionType = "swap"
	Reward   TransactionType = "reward"
)

// Transaction is a single ledger entry.
type Transaction struct {
	Date       date.Time           `json:"date"`
	Type       TransactionType     `json:"type"`
	Asset      string              `json:"asset"`
	Amount     decimal.Decimal     `json:"amount"`
	Price      decimal.Decimal     `json:"price"`
	TotalValue decimal.Decimal     `json:"totalValue"`
	Fee        decimal.Decimal     `json:"fee"` // in reporting currency
	PnL        decimal.NullDecimal `json:"pnl"` // only set on closing transactions
	Status     string              `json:"status"`
	Hash       string              `json:"txHash"`
}

// PerformancePoint is the valuation of the portfolio at a given date.
type PerformancePoint struct {
	Date       date.Time       `json:"date"`
	TotalValue decimal.Decimal `json:"totalValue"`
	PnL        decimal.Decimal `json:"pnl"`
	PnLPercent Percent         `json:"pnlPercent"`
	DayReturn  Percent         `json:"dayReturn"`
}

// Insight is an AI-generated note. Its content is opaque to this module.
type Insight struct {
	Type        string  `json:"type"`
	Confidence  float64 `json:"confidence"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// RiskMetrics are the statistics derived from the performance history.
//
// MaxDrawdown and ValueAtRisk are percentages of loss magnitude, both within [0, 100].
type RiskMetrics struct {
	SharpeRatio  float64 `json:"sharpeRatio"`
	SortinoRatio float64 `json:"sortinoRatio"`
	MaxDrawdown  float64 `json:"maxDrawdown"`
	ValueAtRisk  float64 `json:"valueAtRisk"`
}

// ReportingCurrency returns the snapshot currency or DefaultCurrency.
func (p *Portfolio) ReportingCurrency() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return p.Currency
}
