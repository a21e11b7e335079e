package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockstat/report"
	"github.com/rustyeddy/stockstat/session"
)

var rootCmd = &cobra.Command{
	Use:   "stockstat",
	Short: "Descriptive statistics for stock price histories",
	Long: `Stockstat downloads daily price history for a configured list of stocks
and shows descriptive statistics over a date range.

Run without a sub-command for the interactive menu. It provides:
  - Average, standard deviation, maximum and minimum of adjusted closes
  - The same statistics for daily yields
  - The Sharpe ratio of daily yields
  - Alpha and beta against a benchmark index
  - Line plots and histograms in the terminal

Every analysis is recorded in a SQLite journal, which also caches prices.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

var (
	cfgFile  string
	dataDir  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "read prices from <dir>/<SYMBOL>.csv instead of Yahoo")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level: debug|info|warn|error")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := &session.Session{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Universe: a.cfg.Universe(),
		Analyzer: a.analyzer(),
		Plotter:  &report.TermPlotter{Log: a.log},
		Bins:     a.cfg.Plot.HistogramBins,
		Log:      a.log,
	}

	a.log.Info("session started")
	err = s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout())
		a.log.Info("session interrupted")
		return nil
	}
	a.log.Info("session ended")
	return err
}
