package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockstat/journal"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/pkg/id"
	"github.com/rustyeddy/stockstat/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the analysis journal",
	Long: `List the analyses recorded in the SQLite journal.

Examples:
  stockstat history
  stockstat history --symbol EBAY
  stockstat history --day 2024-03-01
  stockstat history --id 01HQ3Z5K8W0S7V2C1N4M6P9R3T`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historySymbol string
	historyDay    string
	historyID     string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historySymbol, "symbol", "s", "", "only analyses of this symbol")
	historyCmd.Flags().StringVarP(&historyDay, "day", "d", "", "only analyses run on this UTC day (yyyy-mm-dd)")
	historyCmd.Flags().StringVar(&historyID, "id", "", "show a single analysis")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	db, err := a.requireJournal()
	if err != nil {
		return err
	}

	ctx := context.Background()
	w := cmd.OutOrStdout()

	if historyID != "" {
		if _, err := id.Time(historyID); err != nil {
			return fmt.Errorf("invalid analysis id %q: %w", historyID, err)
		}
		rec, err := db.GetAnalysis(ctx, historyID)
		if err != nil {
			return fmt.Errorf("get analysis: %w", err)
		}
		report.PrintAnalysis(w, rec)
		return nil
	}

	var recs []journal.AnalysisRecord
	if historyDay != "" {
		start, err := market.ParseDate(historyDay)
		if err != nil {
			return fmt.Errorf("day: %w", err)
		}
		recs, err = db.ListAnalysesBetween(ctx, start, start.Add(24*time.Hour))
		if err != nil {
			return fmt.Errorf("query analyses: %w", err)
		}
		recs = filterSymbol(recs, historySymbol)
	} else {
		recs, err = db.ListAnalyses(ctx, historySymbol)
		if err != nil {
			return fmt.Errorf("query analyses: %w", err)
		}
	}

	report.PrintAnalyses(w, recs)
	return nil
}

func filterSymbol(recs []journal.AnalysisRecord, symbol string) []journal.AnalysisRecord {
	if symbol == "" {
		return recs
	}
	symbol = market.NormalizeSymbol(symbol)
	out := recs[:0]
	for _, r := range recs {
		if r.Symbol == symbol {
			out = append(out, r)
		}
	}
	return out
}
