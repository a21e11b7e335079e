// Package analysis runs the statistics engine over fetched price series and
// records every run in the journal.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/stockstat/internal/logging"
	"github.com/rustyeddy/stockstat/journal"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/pkg/id"
	"github.com/rustyeddy/stockstat/stats"
)

// Operation names as stored in the journal.
const (
	OpClosingStats       = "closing_stats"
	OpDailyYieldStats    = "daily_yield_stats"
	OpIntradayYieldStats = "intraday_yield_stats"
	OpSharpe             = "sharpe"
	OpRegression         = "regression"
	OpPriceSeries        = "price_series"
	OpDailyYields        = "daily_yields"
)

// Analyzer fetches series through Provider and computes statistics on them.
type Analyzer struct {
	Provider  market.Provider
	Recorder  journal.Recorder
	Benchmark string
	Log       logrus.FieldLogger

	// Now stamps journal records; time.Now when nil.
	Now func() time.Time
}

// Dataset is the loaded asset series for one request. The benchmark series
// is fetched on first use and kept for later regressions.
type Dataset struct {
	Request Request
	Series  market.PriceSeries

	benchmark *market.PriceSeries
}

// Load fetches the asset series for req.
func (a *Analyzer) Load(ctx context.Context, req Request) (*Dataset, error) {
	if a.Provider == nil {
		return nil, fmt.Errorf("analysis: Provider is required")
	}
	if err := req.validateRange(); err != nil {
		return nil, err
	}

	s, err := a.Provider.Fetch(ctx, req.Symbol, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	a.logger().WithField("symbol", req.Symbol).Infof("loaded %d records for %s", s.Len(), req.Range())
	return &Dataset{Request: req, Series: s}, nil
}

// ClosingStats summarises the adjusted closes.
func (a *Analyzer) ClosingStats(ctx context.Context, ds *Dataset) (stats.Summary, error) {
	s, err := stats.Summarize(ds.Series.AdjustedCloses())
	a.record(ctx, ds, OpClosingStats, s, err)
	return s, err
}

// DailyYieldStats summarises the day-over-day returns of the adjusted close.
func (a *Analyzer) DailyYieldStats(ctx context.Context, ds *Dataset) (stats.Summary, error) {
	s, err := summarizeReturns(ds.Series)
	a.record(ctx, ds, OpDailyYieldStats, s, err)
	return s, err
}

func summarizeReturns(series market.PriceSeries) (stats.Summary, error) {
	r, err := stats.DailyReturns(series.AdjustedCloses())
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(r)
}

// IntradayYieldStats summarises 1 - adjClose/open per day.
func (a *Analyzer) IntradayYieldStats(ctx context.Context, ds *Dataset) (stats.Summary, error) {
	var s stats.Summary
	y, err := stats.IntradayYields(ds.Series.Opens(), ds.Series.AdjustedCloses())
	if err == nil {
		s, err = stats.Summarize(y)
	}
	a.record(ctx, ds, OpIntradayYieldStats, s, err)
	return s, err
}

// Sharpe returns the Sharpe ratio of the daily returns.
func (a *Analyzer) Sharpe(ctx context.Context, ds *Dataset) (float64, error) {
	var ratio float64
	r, err := stats.DailyReturns(ds.Series.AdjustedCloses())
	if err == nil {
		ratio, err = stats.SharpeRatio(r)
	}
	a.record(ctx, ds, OpSharpe, ratio, err)
	return ratio, err
}

// Regression regresses the asset's daily returns on the benchmark's over
// the dates both series share. Alpha and beta are its coefficients.
func (a *Analyzer) Regression(ctx context.Context, ds *Dataset) (stats.Regression, error) {
	reg, err := a.regress(ctx, ds)
	a.record(ctx, ds, OpRegression, reg, err)
	return reg, err
}

func (a *Analyzer) regress(ctx context.Context, ds *Dataset) (stats.Regression, error) {
	bench, err := a.benchmarkSeries(ctx, ds)
	if err != nil {
		return stats.Regression{}, err
	}

	asset, bench := market.AlignByDate(ds.Series, bench)
	if ds.Series.Len() >= 2 && asset.Len() < 2 {
		return stats.Regression{}, fmt.Errorf("%d trading days shared with %s: %w",
			asset.Len(), a.Benchmark, stats.ErrMisalignedSeries)
	}
	ar, err := stats.DailyReturns(asset.AdjustedCloses())
	if err != nil {
		return stats.Regression{}, fmt.Errorf("asset: %w", err)
	}
	br, err := stats.DailyReturns(bench.AdjustedCloses())
	if err != nil {
		return stats.Regression{}, fmt.Errorf("benchmark: %w", err)
	}

	ar, br = stats.Align(ar, br)
	return stats.Regress(ar, br)
}

func (a *Analyzer) benchmarkSeries(ctx context.Context, ds *Dataset) (market.PriceSeries, error) {
	if ds.benchmark != nil {
		return *ds.benchmark, nil
	}
	if a.Benchmark == "" {
		return market.PriceSeries{}, fmt.Errorf("analysis: Benchmark is required")
	}

	req := ds.Request
	s, err := a.Provider.Fetch(ctx, a.Benchmark, req.Start, req.End)
	if err != nil {
		return market.PriceSeries{}, fmt.Errorf("benchmark %s: %w", a.Benchmark, err)
	}
	ds.benchmark = &s
	return s, nil
}

// PriceSeries returns the adjusted closes for plotting.
func (a *Analyzer) PriceSeries(ctx context.Context, ds *Dataset) ([]float64, error) {
	values := ds.Series.AdjustedCloses()
	var err error
	if len(values) == 0 {
		err = fmt.Errorf("price series: %w", stats.ErrEmptyInput)
	}
	a.record(ctx, ds, OpPriceSeries, points(values), err)
	return values, err
}

// DailyYields returns the daily returns for plotting.
func (a *Analyzer) DailyYields(ctx context.Context, ds *Dataset) ([]float64, error) {
	values, err := stats.DailyReturns(ds.Series.AdjustedCloses())
	a.record(ctx, ds, OpDailyYields, points(values), err)
	return values, err
}

type seriesResult struct {
	Points int `json:"points"`
}

func points(values []float64) seriesResult {
	return seriesResult{Points: len(values)}
}

// record writes the outcome of op to the journal. A journal failure is
// logged and never fails the analysis.
func (a *Analyzer) record(ctx context.Context, ds *Dataset, op string, result any, opErr error) {
	log := a.logger().WithFields(logrus.Fields{"symbol": ds.Request.Symbol, "op": op})
	if opErr != nil {
		log.WithError(opErr).Warn("analysis failed")
	} else {
		log.Debug("analysis done")
	}

	if a.Recorder == nil {
		return
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	created := now().UTC()

	rec := journal.AnalysisRecord{
		ID:        id.NewAt(created),
		Created:   created,
		Symbol:    ds.Request.Symbol,
		Benchmark: a.Benchmark,
		Start:     ds.Request.Start,
		End:       ds.Request.End,
		Operation: op,
	}
	if opErr != nil {
		rec.Error = opErr.Error()
	} else {
		b, err := json.Marshal(result)
		if err != nil {
			log.WithError(err).Warn("encode analysis result")
			return
		}
		rec.Result = b
	}

	if err := a.Recorder.RecordAnalysis(ctx, rec); err != nil {
		log.WithError(err).Warn("record analysis")
	}
}

func (a *Analyzer) logger() logrus.FieldLogger {
	if a.Log == nil {
		return logging.Discard()
	}
	return a.Log
}
