package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockstat/analysis"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/stats"
)

type fakeProvider struct {
	series map[string]market.PriceSeries
	errs   map[string]error
}

func (f *fakeProvider) Fetch(ctx context.Context, symbol string, start, end time.Time) (market.PriceSeries, error) {
	if err := f.errs[symbol]; err != nil {
		return market.PriceSeries{}, err
	}
	return f.series[symbol].Between(start, end), nil
}

type plotCall struct {
	kind   string
	title  string
	values []float64
	hist   stats.Histogram
}

type fakePlotter struct {
	calls []plotCall
	err   error
}

func (f *fakePlotter) Line(title string, values []float64) error {
	f.calls = append(f.calls, plotCall{kind: "line", title: title, values: values})
	return f.err
}

func (f *fakePlotter) Histogram(title string, h stats.Histogram) error {
	f.calls = append(f.calls, plotCall{kind: "histogram", title: title, hist: h})
	return f.err
}

func series(symbol string, closes ...float64) market.PriceSeries {
	s := market.PriceSeries{Symbol: symbol}
	for i, c := range closes {
		s.Records = append(s.Records, market.PriceRecord{
			Date:     time.Date(2024, time.January, i+2, 0, 0, 0, 0, time.UTC),
			Open:     c,
			High:     c,
			Low:      c,
			Close:    c,
			AdjClose: c,
		})
	}
	return s
}

type harness struct {
	provider *fakeProvider
	plotter  *fakePlotter
	session  *Session
	out      *bytes.Buffer
}

func newHarness(input string) *harness {
	p := &fakeProvider{
		series: map[string]market.PriceSeries{
			"EBAY":  series("EBAY", 100, 110, 121),
			"EA":    series("EA", 50, 51, 49.5, 52.5),
			"^GSPC": series("^GSPC", 4000, 4080, 3960, 4200),
		},
		errs: map[string]error{},
	}
	plotter := &fakePlotter{}
	out := &bytes.Buffer{}
	return &harness{
		provider: p,
		plotter:  plotter,
		out:      out,
		session: &Session{
			In:       strings.NewReader(input),
			Out:      out,
			Universe: market.NewUniverse(market.DefaultSymbols),
			Analyzer: &analysis.Analyzer{Provider: p, Benchmark: "^GSPC"},
			Plotter:  plotter,
		},
	}
}

func (h *harness) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, h.session.Run(context.Background()))
	return h.out.String()
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestRunExit(t *testing.T) {
	out := newHarness(script("b")).run(t)
	assert.Equal(t, "a. Display stock data\nb. Exit\n", out)
}

func TestRunEOF(t *testing.T) {
	out := newHarness("").run(t)
	assert.Contains(t, out, "b. Exit")
}

func TestRunListSymbols(t *testing.T) {
	out := newHarness(script("a", "a", "b")).run(t)
	assert.Contains(t, out, "Available stocks:\nEBAY\nECL\nEIX\nEW\nEA\n")
}

func TestRunUnknownSymbol(t *testing.T) {
	out := newHarness(script("a", "b", "AAPL", "2024-01-01", "2024-02-01", "b")).run(t)
	assert.Contains(t, out, "Enter desired stock: Enter start date (yyyy-mm-dd): Enter end date (yyyy-mm-dd): ")
	assert.Contains(t, out, `The selected company "AAPL" is not among the available stock symbols`)
	assert.NotContains(t, out, "Printing stats for")
}

func TestRunStatisticsView(t *testing.T) {
	out := newHarness(script("a", "b", "ebay", "2024-01-01", "2024-02-01", "h", "b")).run(t)

	assert.Contains(t, out, "\nPrinting stats for: Symbol: EBAY. Range: 2024-01-01 - 2024-02-01\n")
	assert.Contains(t, out, "\nAdjusted Closing Rates:\nAverage: 110.33333333333333\n")
	assert.Contains(t, out, "Maximum: 121\nMinimum: 100\n")
	assert.Contains(t, out, "\nDaily Yield:\nAverage: 0.1")
	assert.Contains(t, out, "Standard Deviation: 0\n")
	assert.Contains(t, out, "h. End analysis\n")
	assert.True(t, strings.HasSuffix(out, "a. Display stock data\nb. Exit\n"), "back at main menu")
}

func TestRunSharpeDegenerateKeepsSession(t *testing.T) {
	out := newHarness(script("a", "b", "EBAY", "2024-01-01", "2024-02-01", "c", "a", "h", "b")).run(t)

	assert.Contains(t, out, "Cannot compute this ratio: the prices show zero volatility in the selected range.\n")
	assert.Equal(t, 2, strings.Count(out, "Adjusted Closing Rates:"), "analysis continues after the failure")
}

func TestRunSharpe(t *testing.T) {
	out := newHarness(script("a", "b", "EA", "2024-01-01", "2024-02-01", "c", "h", "b")).run(t)
	assert.Contains(t, out, "Sharpe ratio of EA: ")
}

func TestRunAlphaBeta(t *testing.T) {
	out := newHarness(script("a", "b", "EA", "2024-01-01", "2024-02-01", "i", "j", "h", "b")).run(t)

	assert.Contains(t, out, "Alpha of EA against ^GSPC: ")
	assert.Contains(t, out, "Beta of EA against ^GSPC: 1\n")
}

func TestRunIntradayYield(t *testing.T) {
	out := newHarness(script("a", "b", "EA", "2024-01-01", "2024-02-01", "k", "h", "b")).run(t)
	assert.Contains(t, out, "\nIntraday Yield:\nAverage: 0\n")
}

func TestRunPlots(t *testing.T) {
	h := newHarness(script("a", "b", "EBAY", "2024-01-01", "2024-02-01", "d", "e", "f", "g", "h", "b"))
	h.session.Bins = 4
	h.run(t)

	require.Len(t, h.plotter.calls, 4)

	assert.Equal(t, "line", h.plotter.calls[0].kind)
	assert.Equal(t, "EBAY adjusted closing rates, 2024-01-01 - 2024-02-01", h.plotter.calls[0].title)
	assert.Equal(t, []float64{100, 110, 121}, h.plotter.calls[0].values)

	assert.Equal(t, "line", h.plotter.calls[1].kind)
	assert.Len(t, h.plotter.calls[1].values, 2)

	assert.Equal(t, "histogram", h.plotter.calls[2].kind)
	assert.Len(t, h.plotter.calls[2].hist.Counts, 4)
	assert.Equal(t, 3, h.plotter.calls[2].hist.Total())

	assert.Equal(t, "histogram", h.plotter.calls[3].kind)
	assert.Equal(t, 2, h.plotter.calls[3].hist.Total())
}

func TestRunPlotDefaultBins(t *testing.T) {
	h := newHarness(script("a", "b", "EA", "2024-01-01", "2024-02-01", "f", "h", "b"))
	h.run(t)

	require.Len(t, h.plotter.calls, 1)
	assert.Len(t, h.plotter.calls[0].hist.Counts, DefaultBins)
}

func TestRunPlotFailure(t *testing.T) {
	h := newHarness(script("a", "b", "EBAY", "2024-01-01", "2024-02-01", "d", "h", "b"))
	h.plotter.err = errors.New("no terminal")
	out := h.run(t)

	assert.Contains(t, out, "Something went wrong. See the log file for details.\n")
}

func TestRunNoPlotter(t *testing.T) {
	h := newHarness(script("a", "b", "EBAY", "2024-01-01", "2024-02-01", "d", "h", "b"))
	h.session.Plotter = nil
	out := h.run(t)

	assert.Contains(t, out, "Something went wrong")
}

func TestRunBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad date", script("a", "b", "EBAY", "01/01/2024", "2024-02-01", "b"), "Dates must be entered as yyyy-mm-dd."},
		{"reversed range", script("a", "b", "EBAY", "2024-02-01", "2024-01-01", "b"), "The start date must be before the end date."},
		{"empty range", script("a", "b", "EBAY", "2023-01-01", "2023-02-01", "b"), "No price data is available for the selected range."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newHarness(tt.input).run(t)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRunFetchError(t *testing.T) {
	h := newHarness(script("a", "b", "EBAY", "2024-01-01", "2024-02-01", "b"))
	h.provider.errs["EBAY"] = market.NewFetchError("EBAY", market.FetchNotFound, "404")
	out := h.run(t)

	assert.Contains(t, out, "No price data was found for EBAY in the selected range.\n")
	assert.NotContains(t, out, "Printing stats for")
}

func TestRunBenchmarkFetchError(t *testing.T) {
	h := newHarness(script("a", "b", "EA", "2024-01-01", "2024-02-01", "i", "h", "b"))
	h.provider.errs["^GSPC"] = market.NewFetchError("^GSPC", market.FetchRateLimited, "429")
	out := h.run(t)

	assert.Contains(t, out, "The price service is limiting requests. Wait a moment and try again.\n")
}

func TestRunEOFInsideAnalysis(t *testing.T) {
	out := newHarness(script("a", "b", "EBAY", "2024-01-01", "2024-02-01")).run(t)
	assert.Contains(t, out, "Printing stats for")
}

func TestRunEOFAtPrompt(t *testing.T) {
	out := newHarness(script("a", "b", "EBAY")).run(t)
	assert.Contains(t, out, "Enter start date")
}

func TestRunCancelled(t *testing.T) {
	h := newHarness(script("b"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.session.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunInterruptedWhileWaitingForInput(t *testing.T) {
	tests := []struct {
		name  string
		typed string
	}{
		{"main menu", ""},
		{"date prompt", script("a", "b", "EBAY")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr, pw := io.Pipe()
			defer pw.Close()

			h := newHarness("")
			h.session.In = pr
			if tt.typed != "" {
				go func() { _, _ = io.WriteString(pw, tt.typed) }()
			}

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- h.session.Run(ctx) }()

			time.Sleep(50 * time.Millisecond)
			cancel()

			select {
			case err := <-done:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(2 * time.Second):
				t.Fatal("Run still waiting for input after cancel")
			}
		})
	}
}

func TestRunRequiresAnalyzer(t *testing.T) {
	s := &Session{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	assert.Error(t, s.Run(context.Background()))
}
