package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/stockstat/market"
)

var (
	// ErrUnknownSymbol is returned when a request names a ticker outside the universe.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInvalidRange is returned when start is not before end.
	ErrInvalidRange = errors.New("invalid date range")
)

// Request selects a ticker and the half-open date range [Start, End).
type Request struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

// NewRequest parses yyyy-mm-dd dates and normalises the symbol.
func NewRequest(symbol, start, end string) (Request, error) {
	s, err := market.ParseDate(start)
	if err != nil {
		return Request{}, fmt.Errorf("start: %w", err)
	}
	e, err := market.ParseDate(end)
	if err != nil {
		return Request{}, fmt.Errorf("end: %w", err)
	}
	return Request{Symbol: market.NormalizeSymbol(symbol), Start: s, End: e}, nil
}

// Validate checks the symbol against u and the ordering of the range.
func (r Request) Validate(u market.Universe) error {
	if !u.Contains(r.Symbol) {
		return fmt.Errorf("%q: %w", r.Symbol, ErrUnknownSymbol)
	}
	return r.validateRange()
}

func (r Request) validateRange() error {
	if !r.Start.Before(r.End) {
		return fmt.Errorf("%s: %w", market.FormatRange(r.Start, r.End), ErrInvalidRange)
	}
	return nil
}

// Range formats the request range for display.
func (r Request) Range() string {
	return market.FormatRange(r.Start, r.End)
}
