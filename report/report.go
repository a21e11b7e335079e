// Package report formats analysis results for the console.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/stockstat/journal"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/stats"
)

// Number formats v with the fewest digits that read back to the same float.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// PrintHeader announces the symbol and range of a statistics view.
func PrintHeader(w io.Writer, symbol string, start, end time.Time) {
	fmt.Fprintf(w, "\nPrinting stats for: Symbol: %s. Range: %s\n", symbol, market.FormatRange(start, end))
}

// PrintSummary prints s under label. An empty label prints the values only.
func PrintSummary(w io.Writer, label string, s stats.Summary) {
	if label != "" {
		fmt.Fprintf(w, "\n%s:\n", label)
	}
	fmt.Fprintf(w, "Average: %s\nStandard Deviation: %s\nMaximum: %s\nMinimum: %s\n",
		Number(s.Mean), Number(s.StdDev), Number(s.Max), Number(s.Min))
}

func PrintSharpe(w io.Writer, symbol string, ratio float64) {
	fmt.Fprintf(w, "Sharpe ratio of %s: %s\n", symbol, Number(ratio))
}

func PrintAlpha(w io.Writer, symbol, benchmark string, r stats.Regression) {
	fmt.Fprintf(w, "Alpha of %s against %s: %s\n", symbol, benchmark, Number(r.Alpha))
}

func PrintBeta(w io.Writer, symbol, benchmark string, r stats.Regression) {
	fmt.Fprintf(w, "Beta of %s against %s: %s\n", symbol, benchmark, Number(r.Beta))
}

// PrintSymbols lists the tickers a user may pick.
func PrintSymbols(w io.Writer, symbols []string) {
	fmt.Fprintln(w, "Available stocks:")
	fmt.Fprintln(w, strings.Join(symbols, "\n"))
}

// PrintAnalyses prints journal records oldest first, one per line.
func PrintAnalyses(w io.Writer, recs []journal.AnalysisRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No analyses recorded.")
		return
	}

	fmt.Fprintf(w, "%-26s  %-19s  %-6s  %-23s  %-20s  %s\n", "ID", "CREATED", "SYMBOL", "RANGE", "OPERATION", "RESULT")
	for _, r := range recs {
		result := string(r.Result)
		if r.Failed() {
			result = "error: " + r.Error
		}
		fmt.Fprintf(w, "%-26s  %-19s  %-6s  %-23s  %-20s  %s\n",
			r.ID,
			r.Created.UTC().Format("2006-01-02 15:04:05"),
			r.Symbol,
			market.FormatRange(r.Start, r.End),
			r.Operation,
			result,
		)
	}
}

// PrintAnalysis prints one record in full.
func PrintAnalysis(w io.Writer, r journal.AnalysisRecord) {
	fmt.Fprintf(w, "ID:         %s\n", r.ID)
	fmt.Fprintf(w, "Created:    %s\n", r.Created.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Symbol:     %s\n", r.Symbol)
	fmt.Fprintf(w, "Benchmark:  %s\n", r.Benchmark)
	fmt.Fprintf(w, "Range:      %s\n", market.FormatRange(r.Start, r.End))
	fmt.Fprintf(w, "Operation:  %s\n", r.Operation)
	if r.Failed() {
		fmt.Fprintf(w, "Error:      %s\n", r.Error)
		return
	}
	fmt.Fprintf(w, "Result:     %s\n", string(r.Result))
}
