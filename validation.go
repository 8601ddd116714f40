package folio

import (
	"errors"
	"fmt"
)

// Validate checks the snapshot invariants and returns an error with all validation failures.
func (p *Portfolio) Validate() error {
	var errs []error
	if p.Address == "" {
		errs = append(errs, fmt.Errorf("%w %q", ErrMissingField, "address"))
	}
	if p.LastUpdated.IsZero() {
		errs = append(errs, fmt.Errorf("%w %q", ErrMissingField, "lastUpdated"))
	}
	for i, h := range p.Holdings {
		if err := h.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("holdings[%d]: %w", i, err))
		}
	}
	for i, tx := range p.Transactions {
		if err := tx.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("transactions[%d]: %w", i, err))
		}
	}
	for i, point := range p.PerformanceHistory {
		if point.Date.IsZero() {
			errs = append(errs, fmt.Errorf("performanceHistory[%d]: %w %q", i, ErrMissingField, "date"))
		}
		if point.TotalValue.IsNegative() {
			errs = append(errs, fmt.Errorf("performanceHistory[%d]: negative totalValue %s", i, point.TotalValue))
		}
		if i > 0 && !p.PerformanceHistory[i-1].Date.Before(point.Date) {
			errs = append(errs, fmt.Errorf("performanceHistory[%d]: date %s is not after %s", i, point.Date, p.PerformanceHistory[i-1].Date))
		}
	}
	return errors.Join(errs...)
}

// Validate checks a holding.
func (h AssetHolding) Validate() error {
	if h.Asset == "" {
		return fmt.Errorf("%w %q", ErrMissingField, "asset")
	}
	return nil
}

// Validate checks a transaction.
func (tx Transaction) Validate() error {
	var errs []error
	if tx.Date.IsZero() {
		errs = append(errs, fmt.Errorf("%w %q", ErrMissingField, "date"))
	}
	if tx.Asset == "" {
		errs = append(errs, fmt.Errorf("%w %q", ErrMissingField, "asset"))
	}
	if tx.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("negative amount %s", tx.Amount))
	}
	if tx.Price.IsNegative() {
		errs = append(errs, fmt.Errorf("negative price %s", tx.Price))
	}
	if tx.Fee.IsNegative() {
		errs = append(errs, fmt.Errorf("negative fee %s", tx.Fee))
	}
	return errors.Join(errs...)
}
