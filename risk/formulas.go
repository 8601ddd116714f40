package risk

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Returns converts a value series to simple per-period returns.
// Returns[i] = (V[i+1] - V[i]) / V[i], and 0 when V[i] <= 0.
func Returns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] > 0 {
			returns[i-1] = (values[i] - values[i-1]) / values[i-1]
		}
	}
	return returns
}

// Sharpe returns (mean(r) - rf) / stddev(r) using the population standard deviation.
//
// rf is the per-period risk-free rate. Numerator and denominator are both scaled by
// sqrt(periodsPerYear), so the result is a per-period ratio.
func Sharpe(returns []float64, rf, periodsPerYear float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean, variance := stat.PopMeanVariance(returns, nil)
	if variance == 0 {
		return 0
	}
	factor := math.Sqrt(periodsPerYear)
	return (mean - rf) * factor / (math.Sqrt(variance) * factor)
}

// Sortino is like Sharpe but divides by the downside deviation: the root mean square
// shortfall below rf, taken over the returns that fall below rf only.
//
// A flat series (zero variance) yields 0, like Sharpe.
func Sortino(returns []float64, rf, periodsPerYear float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	mean, variance := stat.PopMeanVariance(returns, nil)
	if variance == 0 {
		return 0
	}
	dd := DownsideDeviation(returns, rf)
	if dd == 0 {
		return 0
	}
	factor := math.Sqrt(periodsPerYear)
	return (mean - rf) * factor / (dd * factor)
}

// DownsideDeviation returns sqrt(mean((r - target)^2)) over the returns r < target.
func DownsideDeviation(returns []float64, target float64) float64 {
	var sum float64
	var n int
	for _, r := range returns {
		if r < target {
			sum += (r - target) * (r - target)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}

// MaxDrawdown returns the largest peak-to-trough decline of the series, in percent.
//
// The peak is the running maximum in chronological order, points where the peak is
// not positive are skipped.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	peak := values[0]
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD * 100
}

// ValueAtRisk returns the historical value at risk at the 'confidence' level, in percent.
//
// Returns are sorted ascending and the one at index floor(n * (1 - confidence)) is
// reported as a loss magnitude, capped at 100%.
func ValueAtRisk(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := slices.Clone(returns)
	slices.Sort(sorted)

	index := int(math.Floor(float64(len(sorted)) * (1 - confidence)))
	index = max(0, min(index, len(sorted)-1))

	return min(math.Abs(sorted[index])*100, 100)
}

// round2 rounds x to 2 decimal places. Non finite values become 0.
func round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
