// Package session runs the interactive menu loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/stockstat/analysis"
	"github.com/rustyeddy/stockstat/internal/logging"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/menu"
	"github.com/rustyeddy/stockstat/report"
	"github.com/rustyeddy/stockstat/stats"
)

// DefaultBins is the histogram bin count when Bins is not set.
const DefaultBins = 20

var errNoPlotter = errors.New("plotting is not available")

// Session reads choices from In and writes everything the user sees to Out.
type Session struct {
	In       io.Reader
	Out      io.Writer
	Universe market.Universe
	Analyzer *analysis.Analyzer
	Plotter  report.Plotter
	Bins     int
	Log      logrus.FieldLogger

	in *menu.Lines
}

// Run shows the main menu until the user exits, input ends or ctx is done.
// A done ctx interrupts a pending prompt and Run returns ctx.Err().
// Analysis failures are reported to the user and never end the session.
func (s *Session) Run(ctx context.Context) error {
	if s.Analyzer == nil {
		return fmt.Errorf("session: Analyzer is required")
	}
	for _, m := range []menu.Branch{menu.MainMenu(), menu.AnalysisMenu()} {
		if err := menu.Validate(m); err != nil {
			return fmt.Errorf("session: %w", err)
		}
	}
	s.in = menu.NewLines(s.In)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		op, err := menu.Choose(ctx, s.in, s.Out, menu.MainMenu())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		s.logger().Debugf("user's choice: %s", op)

		switch op {
		case menu.OpExit:
			return nil
		case menu.OpListSymbols:
			report.PrintSymbols(s.Out, s.Universe.Symbols())
		case menu.OpStockStats:
			err = s.stockStats(ctx)
		default:
			err = fmt.Errorf("unexpected main menu operation %s", op)
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// stockStats asks for a request, prints the statistics view and then runs
// the analysis menu. Only input and context errors are returned.
func (s *Session) stockStats(ctx context.Context) error {
	symbol, err := s.prompt(ctx, "Enter desired stock: ")
	if err != nil {
		return err
	}
	start, err := s.prompt(ctx, "Enter start date (yyyy-mm-dd): ")
	if err != nil {
		return err
	}
	end, err := s.prompt(ctx, "Enter end date (yyyy-mm-dd): ")
	if err != nil {
		return err
	}

	if !s.Universe.Contains(symbol) {
		fmt.Fprintf(s.Out, "The selected company %q is not among the available stock symbols\n", symbol)
		return nil
	}

	req, err := analysis.NewRequest(symbol, start, end)
	if err == nil {
		err = req.Validate(s.Universe)
	}
	if err != nil {
		s.fail(err)
		return nil
	}

	ds, err := s.Analyzer.Load(ctx, req)
	if err != nil {
		s.fail(err)
		return ctx.Err()
	}

	report.PrintHeader(s.Out, req.Symbol, req.Start, req.End)
	if err := s.dispatch(ctx, ds, menu.OpClosingStats); err != nil {
		s.fail(err)
	}
	if err := s.dispatch(ctx, ds, menu.OpDailyYieldStats); err != nil {
		s.fail(err)
	}
	fmt.Fprintln(s.Out)

	return s.analyze(ctx, ds)
}

func (s *Session) analyze(ctx context.Context, ds *analysis.Dataset) error {
	for {
		op, err := menu.Choose(ctx, s.in, s.Out, menu.AnalysisMenu())
		if err != nil {
			return err
		}
		if op == menu.OpEndAnalysis {
			return nil
		}

		if err := s.dispatch(ctx, ds, op); err != nil {
			s.fail(err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (s *Session) dispatch(ctx context.Context, ds *analysis.Dataset, op menu.Operation) error {
	a := s.Analyzer
	symbol := ds.Request.Symbol

	switch op {
	case menu.OpClosingStats:
		sum, err := a.ClosingStats(ctx, ds)
		if err != nil {
			return err
		}
		report.PrintSummary(s.Out, "Adjusted Closing Rates", sum)

	case menu.OpDailyYieldStats:
		sum, err := a.DailyYieldStats(ctx, ds)
		if err != nil {
			return err
		}
		report.PrintSummary(s.Out, "Daily Yield", sum)

	case menu.OpIntradayYieldStats:
		sum, err := a.IntradayYieldStats(ctx, ds)
		if err != nil {
			return err
		}
		report.PrintSummary(s.Out, "Intraday Yield", sum)

	case menu.OpSharpe:
		ratio, err := a.Sharpe(ctx, ds)
		if err != nil {
			return err
		}
		report.PrintSharpe(s.Out, symbol, ratio)

	case menu.OpAlpha, menu.OpBeta:
		reg, err := a.Regression(ctx, ds)
		if err != nil {
			return err
		}
		if op == menu.OpAlpha {
			report.PrintAlpha(s.Out, symbol, a.Benchmark, reg)
		} else {
			report.PrintBeta(s.Out, symbol, a.Benchmark, reg)
		}

	case menu.OpPlotPrices, menu.OpHistogramPrices:
		values, err := a.PriceSeries(ctx, ds)
		if err != nil {
			return err
		}
		return s.plot(op == menu.OpHistogramPrices, s.title(ds, "adjusted closing rates"), values)

	case menu.OpPlotYields, menu.OpHistogramYields:
		values, err := a.DailyYields(ctx, ds)
		if err != nil {
			return err
		}
		return s.plot(op == menu.OpHistogramYields, s.title(ds, "daily yields"), values)

	default:
		return fmt.Errorf("unexpected analysis operation %s", op)
	}
	return nil
}

func (s *Session) plot(histogram bool, title string, values []float64) error {
	if s.Plotter == nil {
		return errNoPlotter
	}
	if !histogram {
		return s.Plotter.Line(title, values)
	}

	bins := s.Bins
	if bins < 1 {
		bins = DefaultBins
	}
	h, err := stats.NewHistogram(values, bins)
	if err != nil {
		return err
	}
	return s.Plotter.Histogram(title, h)
}

func (s *Session) title(ds *analysis.Dataset, what string) string {
	return fmt.Sprintf("%s %s, %s", ds.Request.Symbol, what, ds.Request.Range())
}

func (s *Session) prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(s.Out, text)
	return s.in.Next(ctx)
}

// fail shows the user-facing message for err and logs the detail.
func (s *Session) fail(err error) {
	s.logger().WithError(err).Warn("analysis failed")
	fmt.Fprintln(s.Out, report.Message(err))
}

func (s *Session) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logging.Discard()
	}
	return s.Log
}
