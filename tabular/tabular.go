// Package tabular writes portfolio snapshots as comma separated text.
//
// Headers are a compatibility contract with existing consumers: their names and order
// never change. Numbers are plain decimal text, dates use date.Format.
package tabular

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/folio"
	"github.com/shopspring/decimal"
)

// HistoryLimit is the number of latest performance points in the full portfolio export.
const HistoryLimit = 30

// TransactionHeader is the header of the transactions export.
var TransactionHeader = []string{
	"Date", "Type", "Asset", "Amount", "Price", "Total Value", "Fee (USD)", "P&L", "Status", "Transaction ID",
}

// HoldingHeader is the header of the holdings export and of the holdings block of the
// full portfolio export.
var HoldingHeader = []string{
	"Asset", "Type", "Amount", "Avg Buy Price", "Current Price", "Total Cost", "Current Value",
	"Unrealized P&L", "Unrealized P&L %", "Realized P&L", "Total P&L", "Total P&L %",
	"Day Change %", "Week Change %", "Month Change %", "First Purchase", "Last Purchase",
	"Buy Count", "Sell Count", "Volatility 30d", "Sharpe Ratio",
}

// PerformanceHeader is the header of the performance history block.
var PerformanceHeader = []string{"Date", "Total Value", "P&L", "P&L %", "Day Return %"}

// summary lists the label/value pairs of the summary block, in order.
var summary = []struct {
	label string
	value func(p *folio.Portfolio) string
}{
	{"Portfolio Address", func(p *folio.Portfolio) string { return p.Address }},
	{"Last Updated", func(p *folio.Portfolio) string { return p.LastUpdated.String() }},
	{"Total Value", func(p *folio.Portfolio) string { return p.Metrics.TotalValue.String() }},
	{"Total Cost", func(p *folio.Portfolio) string { return p.Metrics.TotalCost.String() }},
	{"Total P&L", func(p *folio.Portfolio) string { return p.Metrics.TotalPnL.String() }},
	{"Total P&L %", func(p *folio.Portfolio) string { return p.Metrics.TotalPnLPercent.Decimal() }},
	{"Realized P&L", func(p *folio.Portfolio) string { return p.Metrics.RealizedPnL.String() }},
	{"Realized P&L %", func(p *folio.Portfolio) string { return p.Metrics.RealizedPnLPercent.Decimal() }},
	{"Unrealized P&L", func(p *folio.Portfolio) string { return p.Metrics.UnrealizedPnL.String() }},
	{"Unrealized P&L %", func(p *folio.Portfolio) string { return p.Metrics.UnrealizedPnLPercent.Decimal() }},
	{"Day Return %", func(p *folio.Portfolio) string { return p.Metrics.DayReturn.Decimal() }},
	{"Week Return %", func(p *folio.Portfolio) string { return p.Metrics.WeekReturn.Decimal() }},
	{"Month Return %", func(p *folio.Portfolio) string { return p.Metrics.MonthReturn.Decimal() }},
	{"Year Return %", func(p *folio.Portfolio) string { return p.Metrics.YearReturn.Decimal() }},
	{"Volatility %", func(p *folio.Portfolio) string { return p.Metrics.Volatility.Decimal() }},
	{"Sharpe Ratio", func(p *folio.Portfolio) string { return number(p.Metrics.SharpeRatio) }},
	{"Max Drawdown %", func(p *folio.Portfolio) string { return p.Metrics.MaxDrawdown.Decimal() }},
	{"Win Rate %", func(p *folio.Portfolio) string { return p.Metrics.WinRate.Decimal() }},
	{"Transaction Count", func(p *folio.Portfolio) string { return strconv.Itoa(p.Metrics.TransactionCount) }},
	{"Total Fees", func(p *folio.Portfolio) string { return p.Metrics.TotalFees.String() }},
}

// SummaryLabels returns the labels of the summary block, in order.
func SummaryLabels() []string {
	labels := make([]string, len(summary))
	for i, s := range summary {
		labels[i] = s.label
	}
	return labels
}

// WriteTransactions writes the transactions export of txs, in the given order.
func WriteTransactions(w io.Writer, txs []folio.Transaction) error {
	cw := NewWriter(w)
	cw.Write(TransactionHeader...)
	for _, tx := range txs {
		cw.Write(transactionRecord(tx)...)
	}
	return cw.Flush()
}

// WriteHoldings writes the holdings export of hs.
func WriteHoldings(w io.Writer, hs []folio.AssetHolding) error {
	cw := NewWriter(w)
	writeHoldings(cw, hs)
	return cw.Flush()
}

// WritePortfolio writes the full portfolio export: the summary block, a separator, the
// holdings block, a separator, and the latest HistoryLimit performance points.
func WritePortfolio(w io.Writer, p *folio.Portfolio) error {
	cw := NewWriter(w)
	for _, s := range summary {
		cw.Write(s.label, s.value(p))
	}
	cw.Separator()
	writeHoldings(cw, p.Holdings)
	cw.Separator()
	cw.Write(PerformanceHeader...)
	for _, point := range folio.LastPoints(p.PerformanceHistory, HistoryLimit) {
		cw.Write(
			point.Date.String(),
			point.TotalValue.String(),
			point.PnL.String(),
			point.PnLPercent.Decimal(),
			point.DayReturn.Decimal(),
		)
	}
	return cw.Flush()
}

// Write writes the export of the given kind for p.
func Write(w io.Writer, kind Kind, p *folio.Portfolio) error {
	switch kind {
	case Full:
		return WritePortfolio(w, p)
	case Transactions:
		return WriteTransactions(w, p.Transactions)
	case Holdings:
		return WriteHoldings(w, p.Holdings)
	default:
		return fmt.Errorf("unknown export kind %d", kind)
	}
}

// Bytes returns the export of the given kind for p.
func Bytes(kind Kind, p *folio.Portfolio) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, kind, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHoldings(cw *Writer, hs []folio.AssetHolding) {
	cw.Write(HoldingHeader...)
	for _, h := range hs {
		cw.Write(holdingRecord(h)...)
	}
}

func transactionRecord(tx folio.Transaction) []string {
	pnl := ""
	if tx.PnL.Valid {
		pnl = tx.PnL.Decimal.String()
	}
	return []string{
		tx.Date.String(),
		string(tx.Type),
		tx.Asset,
		tx.Amount.String(),
		tx.Price.String(),
		tx.TotalValue.String(),
		tx.Fee.String(),
		pnl,
		tx.Status,
		tx.Hash,
	}
}

func holdingRecord(h folio.AssetHolding) []string {
	return []string{
		h.Asset,
		h.Type,
		h.TotalAmount.String(),
		h.AverageBuyPrice.String(),
		h.CurrentPrice.String(),
		h.TotalCost.String(),
		h.CurrentValue.String(),
		h.UnrealizedPnL.String(),
		h.UnrealizedPnLPercent.Decimal(),
		h.RealizedPnL.String(),
		h.TotalPnL.String(),
		h.TotalPnLPercent.Decimal(),
		h.DayChange.Decimal(),
		h.WeekChange.Decimal(),
		h.MonthChange.Decimal(),
		h.FirstPurchase.String(),
		h.LastPurchase.String(),
		strconv.Itoa(h.BuyCount),
		strconv.Itoa(h.SellCount),
		h.Volatility30d.Decimal(),
		number(h.SharpeRatio),
	}
}

// number formats a float as plain decimal text.
func number(f float64) string {
	return decimal.NewFromFloat(f).String()
}
