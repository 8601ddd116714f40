package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage: 5 means 5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// IsNegative reports whether p is strictly below zero.
func (p Percent) IsNegative() bool { return p < 0 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", float64(p))
}

// Decimal returns the exact decimal text form of p, without a percent sign.
func (p Percent) Decimal() string {
	return decimal.NewFromFloat(float64(p)).String()
}
