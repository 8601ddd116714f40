package folio

import (
	"slices"
)

// Limits bounds the size of the lists a snapshot may carry into an export.
// A zero field means no limit.
type Limits struct {
	MaxTransactions int
	MaxHistory      int
}

// DefaultLimits are large enough for any real portfolio.
var DefaultLimits = Limits{MaxTransactions: 100_000, MaxHistory: 100_000}

// Bounded returns a copy of p keeping only the most recent entries allowed by 'l',
// and whether anything was dropped. p is left untouched.
func (p *Portfolio) Bounded(l Limits) (*Portfolio, bool) {
	q := *p
	truncated := false
	if l.MaxTransactions > 0 && len(p.Transactions) > l.MaxTransactions {
		q.Transactions = latestTransactions(p.Transactions, l.MaxTransactions)
		truncated = true
	}
	if l.MaxHistory > 0 && len(p.PerformanceHistory) > l.MaxHistory {
		q.PerformanceHistory = p.PerformanceHistory[len(p.PerformanceHistory)-l.MaxHistory:]
		truncated = true
	}
	return &q, truncated
}

// latestTransactions keeps the n latest transactions of txs, in their original order.
// Among transactions at the same date, the later ones in txs are the latest.
func latestTransactions(txs []Transaction, n int) []Transaction {
	order := make([]int, len(txs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return txs[a].Date.Compare(txs[b].Date)
	})
	keep := make([]bool, len(txs))
	for _, i := range order[len(order)-n:] {
		keep[i] = true
	}
	kept := make([]Transaction, 0, n)
	for i, tx := range txs {
		if keep[i] {
			kept = append(kept, tx)
		}
	}
	return kept
}

// SortedTransactions returns a copy of txs in ascending date order.
// Transactions at the same date keep their relative order.
func SortedTransactions(txs []Transaction) []Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// RecentTransactions returns at most n of the latest transactions, oldest first.
func RecentTransactions(txs []Transaction, n int) []Transaction {
	sorted := SortedTransactions(txs)
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// LastPoints returns at most n of the latest performance points, oldest first.
func LastPoints(history []PerformancePoint, n int) []PerformancePoint {
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}
