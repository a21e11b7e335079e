package market

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Provider returns the daily price history of a symbol over [start, end).
// It either returns a complete series or a *FetchError.
type Provider interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) (PriceSeries, error)
}

// FetchErrorKind classifies why a fetch failed.
type FetchErrorKind int

const (
	FetchNetwork FetchErrorKind = iota
	FetchNotFound
	FetchRateLimited
	FetchBadResponse
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchNotFound:
		return "not found"
	case FetchRateLimited:
		return "rate limited"
	case FetchBadResponse:
		return "bad response"
	default:
		return fmt.Sprintf("FetchErrorKind(%d)", int(k))
	}
}

// FetchError is returned by providers. It is terminal for the request.
type FetchError struct {
	Symbol string
	Kind   FetchErrorKind
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %s", e.Symbol, e.Kind)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Symbol, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError builds a FetchError with a formatted cause.
func NewFetchError(symbol string, kind FetchErrorKind, format string, args ...any) *FetchError {
	return &FetchError{Symbol: symbol, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// SeriesStore persists fetched series keyed by the exact request.
type SeriesStore interface {
	LoadSeries(ctx context.Context, symbol string, start, end time.Time) (PriceSeries, bool, error)
	SaveSeries(ctx context.Context, series PriceSeries, start, end time.Time) error
}

// CachingProvider serves repeated requests from a SeriesStore and falls back
// to Source on a miss. Store failures are logged, never returned.
//
// Only closed ranges are cached: a range whose end lies after the start of
// the current UTC day can still gain bars, so it always goes to Source.
type CachingProvider struct {
	Source Provider
	Store  SeriesStore
	Log    logrus.FieldLogger
	Now    func() time.Time
}

func (p *CachingProvider) Fetch(ctx context.Context, symbol string, start, end time.Time) (PriceSeries, error) {
	symbol = NormalizeSymbol(symbol)
	cacheable := p.Store != nil && p.closed(end)
	if p.Store != nil && !cacheable {
		p.logger().Debugf("cache skip %s %s (open range)", symbol, FormatRange(start, end))
	}

	if cacheable {
		s, ok, err := p.Store.LoadSeries(ctx, symbol, start, end)
		switch {
		case err != nil:
			p.logger().WithError(err).Warnf("cache load %s", symbol)
		case ok:
			p.logger().Debugf("cache hit %s %s (%d records)", symbol, FormatRange(start, end), s.Len())
			return s, nil
		}
	}

	s, err := p.Source.Fetch(ctx, symbol, start, end)
	if err != nil {
		return PriceSeries{}, err
	}

	if cacheable {
		if err := p.Store.SaveSeries(ctx, s, start, end); err != nil {
			p.logger().WithError(err).Warnf("cache save %s", symbol)
		}
	}
	return s, nil
}

func (p *CachingProvider) closed(end time.Time) bool {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return !end.After(Day(now()))
}

func (p *CachingProvider) logger() logrus.FieldLogger {
	if p.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		return l
	}
	return p.Log
}
