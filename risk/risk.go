// Package risk derives risk and performance statistics from a portfolio's
// performance history.
//
// Everything here is pure: the same history always yields the same RiskMetrics and
// no state is shared between calls.
package risk

import (
	"github.com/etnz/folio"
)

// Calculator holds the assumptions used to compute the metrics.
type Calculator struct {
	RiskFreeRate   float64 // annual, 0.05 for 5%
	PeriodsPerYear float64 // 365 for a daily series
	Confidence     float64 // value at risk confidence level, 0.95 for 95%
}

// Default returns the Calculator for a daily series, a 5% risk-free rate and a 95% value at risk.
func Default() Calculator {
	return Calculator{
		RiskFreeRate:   0.05,
		PeriodsPerYear: 365,
		Confidence:     0.95,
	}
}

// PeriodRiskFreeRate returns the risk-free rate of a single period.
func (c Calculator) PeriodRiskFreeRate() float64 {
	if c.PeriodsPerYear <= 0 {
		return 0
	}
	return c.RiskFreeRate / c.PeriodsPerYear
}

// Compute returns the risk metrics of 'history', rounded to 2 decimals.
//
// A history shorter than 2 points yields all zeros.
func (c Calculator) Compute(history []folio.PerformancePoint) folio.RiskMetrics {
	if len(history) < 2 {
		return folio.RiskMetrics{}
	}
	values := make([]float64, len(history))
	for i, point := range history {
		values[i] = point.TotalValue.InexactFloat64()
	}
	return c.ComputeValues(values)
}

// ComputeValues is like Compute on a raw value series.
func (c Calculator) ComputeValues(values []float64) folio.RiskMetrics {
	if len(values) < 2 {
		return folio.RiskMetrics{}
	}
	returns := Returns(values)
	rf := c.PeriodRiskFreeRate()

	return folio.RiskMetrics{
		SharpeRatio:  round2(Sharpe(returns, rf, c.PeriodsPerYear)),
		SortinoRatio: round2(Sortino(returns, rf, c.PeriodsPerYear)),
		MaxDrawdown:  round2(MaxDrawdown(values)),
		ValueAtRisk:  round2(ValueAtRisk(returns, c.Confidence)),
	}
}

// Compute returns the metrics of p with the Default calculator.
func Compute(p *folio.Portfolio) folio.RiskMetrics {
	return Default().Compute(p.PerformanceHistory)
}
