package market

import (
	"fmt"
	"time"
)

// PriceRecord is one trading day of a stock's price history.
type PriceRecord struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// PriceSeries is the daily history of one symbol, ordered by date.
// Market-closed days are simply absent.
type PriceSeries struct {
	Symbol  string
	Records []PriceRecord
}

// Len returns the number of trading days in the series.
func (s PriceSeries) Len() int { return len(s.Records) }

// Validate checks that dates are strictly increasing.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s.Records); i++ {
		if !s.Records[i].Date.After(s.Records[i-1].Date) {
			return fmt.Errorf("%s: dates not strictly increasing at index %d (%s after %s)",
				s.Symbol, i,
				s.Records[i].Date.Format(DateLayout),
				s.Records[i-1].Date.Format(DateLayout))
		}
	}
	return nil
}

// AdjustedCloses projects the adjusted close column.
func (s PriceSeries) AdjustedCloses() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.AdjClose
	}
	return out
}

// Opens projects the open column.
func (s PriceSeries) Opens() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.Open
	}
	return out
}

// Between returns the records whose date is within [start, end).
func (s PriceSeries) Between(start, end time.Time) PriceSeries {
	out := PriceSeries{Symbol: s.Symbol}
	for _, r := range s.Records {
		if r.Date.Before(start) || !r.Date.Before(end) {
			continue
		}
		out.Records = append(out.Records, r)
	}
	return out
}

// AlignByDate keeps only the days present in both series. Both inputs must
// already be ordered by date.
func AlignByDate(a, b PriceSeries) (PriceSeries, PriceSeries) {
	outA := PriceSeries{Symbol: a.Symbol}
	outB := PriceSeries{Symbol: b.Symbol}

	i, j := 0, 0
	for i < len(a.Records) && j < len(b.Records) {
		da, db := a.Records[i].Date, b.Records[j].Date
		switch {
		case da.Equal(db):
			outA.Records = append(outA.Records, a.Records[i])
			outB.Records = append(outB.Records, b.Records[j])
			i++
			j++
		case da.Before(db):
			i++
		default:
			j++
		}
	}
	return outA, outB
}
