package renderer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

const (
	// MaxTransactions is the number of most recent transactions shown in a report.
	MaxTransactions = 10
	// MaxInsights is the number of insights shown in a report.
	MaxInsights = 5

	// TimestampFormat is the layout of the generation timestamp.
	TimestampFormat = "2006-01-02 15:04:05 MST"

	// Disclaimer closes every report.
	Disclaimer = "This report is for informational purposes only and does not constitute financial advice."
)

// Tone is the styling hint of a value.
type Tone int

const (
	Neutral Tone = iota
	Positive
	Negative
)

// Class returns the style class of the tone, empty for Neutral.
func (t Tone) Class() string {
	switch t {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return ""
	}
}

// signTone marks values >= 0 as Positive and values < 0 as Negative.
func signTone(negative bool) Tone {
	if negative {
		return Negative
	}
	return Positive
}

// Text is a formatted value and its tone.
type Text struct {
	Value string
	Tone  Tone
}

func plain(s string) Text { return Text{Value: s} }

// Card is a labelled figure.
type Card struct {
	Label string
	Value Text
}

// Align is the horizontal alignment of a table column.
type Align int

const (
	Left Align = iota
	Right
)

// Column describes a table column.
type Column struct {
	Title string
	Align Align
}

// Table is a titled grid of values. Every row has exactly len(Columns) cells.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]Text
	Empty   string // shown instead of the grid when there are no rows
}

// Note is an insight as shown in the report, its fields are copied verbatim.
type Note struct {
	Type        string
	Confidence  string
	Title       string
	Description string
}

// Header is the branding block of the report.
type Header struct {
	Title       string
	Address     string
	LastUpdated string
}

// Document is the narrative report as a tree of typed sections.
//
// Every field is derived from the snapshot except GeneratedAt.
type Document struct {
	Header       Header
	Summary      []Card
	Risk         []Card
	Holdings     Table
	Transactions Table
	Insights     []Note
	Disclaimer   string
	GeneratedAt  time.Time
}

// Timestamp returns the generation timestamp as displayed.
func (d *Document) Timestamp() string {
	return d.GeneratedAt.Format(TimestampFormat)
}

// NewReport builds the narrative report of p.
//
// It does not modify p and the result shares no memory with it.
func NewReport(p *folio.Portfolio, m folio.RiskMetrics, generatedAt time.Time) *Document {
	cur := p.ReportingCurrency()
	doc := &Document{
		Header: Header{
			Title:       "Portfolio Report",
			Address:     p.Address,
			LastUpdated: p.LastUpdated.String(),
		},
		Disclaimer:  Disclaimer,
		GeneratedAt: generatedAt,
	}

	metrics := p.Metrics
	doc.Summary = []Card{
		{"Total Value", plain(folio.M(metrics.TotalValue, cur).String())},
		{"Total P&L", Text{folio.M(metrics.TotalPnL, cur).SignedString(), signTone(metrics.TotalPnL.IsNegative())}},
		{"Return %", Text{metrics.TotalPnLPercent.SignedString(), signTone(metrics.TotalPnLPercent.IsNegative())}},
		{"Win Rate", plain(metrics.WinRate.String())},
	}

	doc.Risk = []Card{
		{"Sharpe Ratio", Text{fmt.Sprintf("%.2f", m.SharpeRatio), signTone(m.SharpeRatio < 0)}},
		{"Sortino Ratio", Text{fmt.Sprintf("%.2f", m.SortinoRatio), signTone(m.SortinoRatio < 0)}},
		{"Max Drawdown", Text{drawdown(m.MaxDrawdown), Negative}},
		{"Value at Risk", plain(fmt.Sprintf("%.2f%%", m.ValueAtRisk))},
	}

	doc.Holdings = holdingsTable(p.Holdings, metrics.TotalValue, cur)
	doc.Transactions = transactionsTable(folio.RecentTransactions(p.Transactions, MaxTransactions), cur)

	insights := p.Insights
	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	for _, in := range insights {
		doc.Insights = append(doc.Insights, Note{
			Type:        in.Type,
			Confidence:  strconv.FormatFloat(in.Confidence, 'f', -1, 64),
			Title:       in.Title,
			Description: in.Description,
		})
	}
	return doc
}

// drawdown displays a loss magnitude as an adverse value.
func drawdown(dd float64) string {
	if dd == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("-%.2f%%", dd)
}

// Share returns value as a percentage of total with one decimal, "0.0%" when total is zero.
func Share(value, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.0%"
	}
	return value.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

func holdingsTable(hs []folio.AssetHolding, total decimal.Decimal, cur string) Table {
	t := Table{
		Title: "Holdings",
		Columns: []Column{
			{"Asset", Left},
			{"Amount", Right},
			{"Avg Buy Price", Right},
			{"Current Price", Right},
			{"Current Value", Right},
			{"P&L", Right},
			{"% of Portfolio", Right},
		},
		Empty: "No holdings.",
	}
	for _, h := range hs {
		pnl := fmt.Sprintf("%s (%s)", folio.M(h.TotalPnL, cur).SignedString(), h.TotalPnLPercent.SignedString())
		t.Rows = append(t.Rows, []Text{
			plain(h.Asset),
			plain(h.TotalAmount.StringFixed(8)),
			plain(folio.M(h.AverageBuyPrice, cur).Price()),
			plain(folio.M(h.CurrentPrice, cur).Price()),
			plain(folio.M(h.CurrentValue, cur).String()),
			{pnl, signTone(h.TotalPnL.IsNegative())},
			plain(Share(h.CurrentValue, total)),
		})
	}
	return t
}

func transactionsTable(txs []folio.Transaction, cur string) Table {
	t := Table{
		Title: "Recent Transactions",
		Columns: []Column{
			{"Date", Left},
			{"Type", Left},
			{"Asset", Left},
			{"Amount", Right},
			{"Price", Right},
			{"Total Value", Right},
		},
		Empty: "No transactions.",
	}
	for _, tx := range txs {
		t.Rows = append(t.Rows, []Text{
			plain(tx.Date.String()),
			plain(string(tx.Type)),
			plain(tx.Asset),
			plain(tx.Amount.String()),
			plain(folio.M(tx.Price, cur).Price()),
			plain(folio.M(tx.TotalValue, cur).String()),
		})
	}
	return t
}
