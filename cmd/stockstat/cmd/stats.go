package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockstat/analysis"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats <SYMBOL>",
	Short: "Print every statistic for one stock without the menu",
	Long: `Print the statistics view, intraday yield, Sharpe ratio, alpha and beta
of a stock over [--from, --to). Failures of single statistics are reported
and the rest are still printed.

Example:
  stockstat stats EBAY --from 2024-01-01 --to 2024-07-01`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

var (
	statsFrom string
	statsTo   string
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsFrom, "from", "f", "", "start date yyyy-mm-dd (required)")
	statsCmd.Flags().StringVarP(&statsTo, "to", "t", "", "end date yyyy-mm-dd, exclusive (default tomorrow)")
	statsCmd.MarkFlagRequired("from")
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := analysis.NewRequest(args[0], statsFrom, endOrTomorrow(statsTo))
	if err != nil {
		return err
	}
	if err := req.Validate(a.cfg.Universe()); err != nil {
		return errors.New(report.Message(err))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	an := a.analyzer()
	ds, err := an.Load(ctx, req)
	if err != nil {
		a.log.WithError(err).Error("load series")
		return errors.New(report.Message(err))
	}

	printStats(ctx, cmd.OutOrStdout(), an, ds)
	return nil
}

func printStats(ctx context.Context, w io.Writer, an *analysis.Analyzer, ds *analysis.Dataset) {
	req := ds.Request
	report.PrintHeader(w, req.Symbol, req.Start, req.End)
	fmt.Fprintf(w, "Trading days: %d\n", ds.Series.Len())

	show := func(err error) {
		if err != nil {
			fmt.Fprintln(w, report.Message(err))
		}
	}

	if s, err := an.ClosingStats(ctx, ds); err == nil {
		report.PrintSummary(w, "Adjusted Closing Rates", s)
	} else {
		show(err)
	}
	if s, err := an.DailyYieldStats(ctx, ds); err == nil {
		report.PrintSummary(w, "Daily Yield", s)
	} else {
		show(err)
	}
	if s, err := an.IntradayYieldStats(ctx, ds); err == nil {
		report.PrintSummary(w, "Intraday Yield", s)
	} else {
		show(err)
	}

	fmt.Fprintln(w)
	if r, err := an.Sharpe(ctx, ds); err == nil {
		report.PrintSharpe(w, req.Symbol, r)
	} else {
		show(err)
	}
	if reg, err := an.Regression(ctx, ds); err == nil {
		report.PrintAlpha(w, req.Symbol, an.Benchmark, reg)
		report.PrintBeta(w, req.Symbol, an.Benchmark, reg)
	} else {
		show(err)
	}
}

// endOrTomorrow defaults an empty end date so that today's bar is included.
func endOrTomorrow(end string) string {
	if end != "" {
		return end
	}
	return market.Day(time.Now()).AddDate(0, 0, 1).Format(market.DateLayout)
}
