package report

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/stockstat/journal"
	"github.com/rustyeddy/stockstat/stats"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, "", stats.Summary{Mean: 0.1, StdDev: 0, Max: 0.1, Min: 0.1})
	assert.Equal(t, "Average: 0.1\nStandard Deviation: 0\nMaximum: 0.1\nMinimum: 0.1\n", buf.String())
}

func TestPrintSummaryLabel(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, "Adjusted Closing Rates", stats.Summary{Mean: 110.33333333333333, StdDev: 8.5, Max: 121, Min: 100})
	assert.Equal(t,
		"\nAdjusted Closing Rates:\nAverage: 110.33333333333333\nStandard Deviation: 8.5\nMaximum: 121\nMinimum: 100\n",
		buf.String())
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "0.1", Number(0.1))
	assert.Equal(t, "-2.5e-05", Number(-0.000025))
	assert.Equal(t, "121", Number(121))
	assert.Equal(t, "NaN", Number(math.NaN()))
}

func TestPrintHeader(t *testing.T) {
	var buf bytes.Buffer
	PrintHeader(&buf, "EBAY", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "\nPrinting stats for: Symbol: EBAY. Range: 2024-01-02 - 2024-03-01\n", buf.String())
}

func TestPrintRatios(t *testing.T) {
	var buf bytes.Buffer
	PrintSharpe(&buf, "EA", 0.25)
	PrintAlpha(&buf, "EA", "^GSPC", stats.Regression{Alpha: 0.001, Beta: 1.2})
	PrintBeta(&buf, "EA", "^GSPC", stats.Regression{Alpha: 0.001, Beta: 1.2})
	assert.Equal(t,
		"Sharpe ratio of EA: 0.25\nAlpha of EA against ^GSPC: 0.001\nBeta of EA against ^GSPC: 1.2\n",
		buf.String())
}

func TestPrintSymbols(t *testing.T) {
	var buf bytes.Buffer
	PrintSymbols(&buf, []string{"EBAY", "ECL"})
	assert.Equal(t, "Available stocks:\nEBAY\nECL\n", buf.String())
}

func TestPrintAnalyses(t *testing.T) {
	var buf bytes.Buffer
	PrintAnalyses(&buf, nil)
	assert.Equal(t, "No analyses recorded.\n", buf.String())

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	recs := []journal.AnalysisRecord{
		{ID: "01HQ0000000000000000000001", Created: created, Symbol: "EBAY", Start: start, End: end,
			Operation: "sharpe", Result: json.RawMessage(`0.5`)},
		{ID: "01HQ0000000000000000000002", Created: created, Symbol: "EBAY", Start: start, End: end,
			Operation: "regression", Error: "zero benchmark variance"},
	}

	buf.Reset()
	PrintAnalyses(&buf, recs)
	out := buf.String()
	assert.Contains(t, out, "OPERATION")
	assert.Contains(t, out, "01HQ0000000000000000000001")
	assert.Contains(t, out, "2024-01-01 - 2024-02-01")
	assert.Contains(t, out, "0.5")
	assert.Contains(t, out, "error: zero benchmark variance")
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	PrintAnalysis(&buf, journal.AnalysisRecord{
		ID: "01HQ0000000000000000000001", Symbol: "EW", Benchmark: "^GSPC", Operation: "closing_stats",
		Result: json.RawMessage(`{"mean":1}`),
	})
	assert.Contains(t, buf.String(), "Benchmark:  ^GSPC\n")
	assert.Contains(t, buf.String(), `Result:     {"mean":1}`)
}
