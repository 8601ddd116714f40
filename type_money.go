package folio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount in a currency, used for display only.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in the currency cur.
func M(value decimal.Decimal, cur string) Money {
	return Money{value: value, cur: cur}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, like "$1,234.50".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// PricePlaces is the number of decimals kept by Price for sub-unit prices.
const PricePlaces = 8

// Price formats a unit price. It is String, except for prices below one unit that the
// currency fraction would round: those keep PricePlaces decimals, like "$0.00001234".
func (m Money) Price() string {
	cur := m.currency()
	if m.value.Abs().LessThan(decimal.NewFromInt(1)) && !m.value.Equal(m.value.Round(int32(cur.Fraction))) {
		return m.StringFixed(PricePlaces)
	}
	return m.String()
}

// StringFixed formats the amount with 'places' decimals and the currency grapheme.
func (m Money) StringFixed(places int32) string {
	cur := m.currency()
	if m.value.IsNegative() {
		return "-" + cur.Grapheme + m.value.Abs().StringFixed(places)
	}
	return cur.Grapheme + m.value.StringFixed(places)
}

func (m Money) Currency() string { return m.cur }
func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
