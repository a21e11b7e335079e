package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockstat/analysis"
	"github.com/rustyeddy/stockstat/journal"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/report"
)

var exportCmd = &cobra.Command{
	Use:   "export <SYMBOL>",
	Short: "Download a price series and write it as CSV",
	Long: `Fetch the daily prices of a symbol over [--from, --to) and write them as
CSV (date,open,high,low,close,adj_close,volume). Any symbol Yahoo knows can
be exported, including the benchmark. Files written with --dir can be
read back with --data-dir.

Examples:
  stockstat export EBAY --from 2024-01-01 --to 2024-07-01 --out ebay.csv
  stockstat export ^GSPC --from 2024-01-01 --dir ./data`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportFrom string
	exportTo   string
	exportOut  string
	exportDir  string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFrom, "from", "f", "", "start date yyyy-mm-dd (required)")
	exportCmd.Flags().StringVarP(&exportTo, "to", "t", "", "end date yyyy-mm-dd, exclusive (default tomorrow)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output CSV file (default stdout)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "write <dir>/<SYMBOL>.csv instead of --out")
	exportCmd.MarkFlagRequired("from")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := analysis.NewRequest(args[0], exportFrom, endOrTomorrow(exportTo))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := a.provider.Fetch(ctx, req.Symbol, req.Start, req.End)
	if err != nil {
		a.log.WithError(err).Error("export fetch")
		return errors.New(report.Message(err))
	}

	if exportDir != "" {
		path, err := journal.SaveSeriesCSV(exportDir, s)
		if err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", s.Len(), path)
		return nil
	}

	if exportOut == "" {
		if _, err := journal.WriteSeriesCSV(cmd.OutOrStdout(), s); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	}

	fh, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	n, err := writeAndClose(fh, s)
	if err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records for %s (%s) to %s\n",
		n, s.Symbol, market.FormatRange(req.Start, req.End), exportOut)
	return nil
}

// writeAndClose writes s to wc and reports the Close error, which is where a
// failed final flush to disk surfaces.
func writeAndClose(wc io.WriteCloser, s market.PriceSeries) (int, error) {
	n, err := journal.WriteSeriesCSV(wc, s)
	if err != nil {
		wc.Close()
		return n, err
	}
	return n, wc.Close()
}
