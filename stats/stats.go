// Package stats implements the descriptive statistics, returns, Sharpe ratio
// and alpha/beta regression used by the analysis views.
//
// Every function is pure and sums left to right, so identical inputs give
// bit-identical results. Standard deviations and (co)variances are population
// moments (divide by N).
package stats

import (
	"fmt"
	"math"
)

// Summary is the mean, population standard deviation, maximum and minimum of a sequence.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Max    float64 `json:"max"`
	Min    float64 `json:"min"`
}

// Summarize computes the Summary of values.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("summarize: %w", ErrEmptyInput)
	}

	m := mean(values)
	s := Summary{
		Mean:   m,
		StdDev: math.Sqrt(variance(values, m)),
		Max:    values[0],
		Min:    values[0],
	}
	for _, v := range values[1:] {
		if v > s.Max {
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
	}
	return s, nil
}

// DailyReturns converts prices into day-over-day relative changes:
// r[i] = prices[i+1]/prices[i] - 1. The result has one fewer element.
func DailyReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("daily returns: need at least 2 prices, got %d: %w", len(prices), ErrInsufficientData)
	}

	out := make([]float64, len(prices)-1)
	for i := 0; i < len(prices)-1; i++ {
		out[i] = prices[i+1]/prices[i] - 1
	}
	return out, nil
}

// IntradayYields returns 1 - adjClose/open for each day.
func IntradayYields(opens, adjCloses []float64) ([]float64, error) {
	if len(opens) != len(adjCloses) {
		return nil, fmt.Errorf("intraday yields: %d opens vs %d closes: %w", len(opens), len(adjCloses), ErrMisalignedSeries)
	}
	if len(opens) == 0 {
		return nil, fmt.Errorf("intraday yields: %w", ErrEmptyInput)
	}

	out := make([]float64, len(opens))
	for i := range opens {
		if opens[i] == 0 {
			return nil, fmt.Errorf("intraday yields: index %d: %w", i, ErrZeroOpen)
		}
		out[i] = 1 - adjCloses[i]/opens[i]
	}
	return out, nil
}

// SharpeRatio returns mean(returns) / stddev(returns). No risk-free rate is
// subtracted and the ratio is not annualized.
func SharpeRatio(returns []float64) (float64, error) {
	if len(returns) == 0 {
		return 0, fmt.Errorf("sharpe ratio: %w", ErrEmptyInput)
	}

	m := mean(returns)
	sd := math.Sqrt(variance(returns, m))
	if sd == 0 {
		return 0, fmt.Errorf("sharpe ratio: %w", ErrZeroVolatility)
	}
	return m / sd, nil
}

// Regression holds the intercept (Alpha) and slope (Beta) of an ordinary
// least squares fit asset ≈ Alpha + Beta*benchmark.
type Regression struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Regress fits asset returns against benchmark returns with the closed-form
// estimators beta = Cov(b, a)/Var(b), alpha = mean(a) - beta*mean(b).
func Regress(asset, benchmark []float64) (Regression, error) {
	if len(asset) != len(benchmark) {
		return Regression{}, fmt.Errorf("regress: %d asset vs %d benchmark returns: %w", len(asset), len(benchmark), ErrMisalignedSeries)
	}
	if len(asset) == 0 {
		return Regression{}, fmt.Errorf("regress: no returns: %w", ErrMisalignedSeries)
	}

	ma := mean(asset)
	mb := mean(benchmark)

	vb := variance(benchmark, mb)
	if vb == 0 {
		return Regression{}, fmt.Errorf("regress: %w", ErrFlatBenchmark)
	}

	cov := 0.0
	for i := range asset {
		cov += (benchmark[i] - mb) * (asset[i] - ma)
	}
	cov /= float64(len(asset))

	beta := cov / vb
	return Regression{Alpha: ma - beta*mb, Beta: beta}, nil
}

// Align truncates both sequences to the shorter length.
func Align(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[:n], b[:n]
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance is exactly zero for a constant sequence, whatever rounding the
// mean picked up.
func variance(values []float64, m float64) float64 {
	if constant(values) {
		return 0
	}
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(values))
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
