package stats

import (
	"fmt"
	"math"
)

// Histogram is an equal-width binning of a sequence. Edges has one more
// element than Counts; bin i covers [Edges[i], Edges[i+1]) except the last,
// which also includes its upper edge.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// NewHistogram bins values into the given number of equal-width bins spanning
// [min, max]. When every value is equal all of them land in a single bin.
func NewHistogram(values []float64, bins int) (Histogram, error) {
	if len(values) == 0 {
		return Histogram{}, fmt.Errorf("histogram: %w", ErrEmptyInput)
	}
	if bins < 1 {
		return Histogram{}, fmt.Errorf("histogram: bins must be positive, got %d", bins)
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Histogram{}, fmt.Errorf("histogram: value %d is %v: %w", i, v, ErrNonFinite)
		}
	}

	s, _ := Summarize(values)
	if s.Max == s.Min {
		return Histogram{
			Edges:  []float64{s.Min, s.Max},
			Counts: []int{len(values)},
		}, nil
	}

	span := s.Max - s.Min
	if math.IsInf(span, 0) {
		return Histogram{}, fmt.Errorf("histogram: range overflows: %w", ErrNonFinite)
	}
	width := span / float64(bins)
	h := Histogram{
		Edges:  make([]float64, bins+1),
		Counts: make([]int, bins),
	}
	for i := range h.Edges {
		h.Edges[i] = s.Min + float64(i)*width
	}
	h.Edges[bins] = s.Max

	for _, v := range values {
		// span rather than width: width underflows to zero for subnormal ranges.
		i := int(float64(bins) * ((v - s.Min) / span))
		switch {
		case i < 0:
			i = 0
		case i >= bins:
			i = bins - 1
		}
		h.Counts[i]++
	}
	return h, nil
}

// Total returns the number of values binned.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}
