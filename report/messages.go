package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/rustyeddy/stockstat/analysis"
	"github.com/rustyeddy/stockstat/market"
	"github.com/rustyeddy/stockstat/stats"
)

// Message turns err into the sentence shown to the user. Each failure kind
// gets its own message; the raw error text goes to the log only.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var fe *market.FetchError
	if errors.As(err, &fe) {
		return fetchMessage(fe)
	}

	switch {
	case errors.Is(err, stats.ErrEmptyInput):
		return "No price data is available for the selected range."
	case errors.Is(err, stats.ErrInsufficientData):
		return "Not enough price history: at least two trading days are needed."
	case errors.Is(err, stats.ErrZeroVolatility):
		return "Cannot compute this ratio: the prices show zero volatility in the selected range."
	case errors.Is(err, stats.ErrZeroOpen):
		return "Cannot compute intraday yields: the data has a day with a zero opening price."
	case errors.Is(err, stats.ErrFlatBenchmark):
		return "Cannot compute alpha and beta: the benchmark did not move in the selected range."
	case errors.Is(err, stats.ErrNonFinite):
		return "Cannot chart these values: the data contains a zero price or an out-of-range value."
	case errors.Is(err, stats.ErrDegenerateInput):
		return "Cannot compute this statistic for the selected range."
	case errors.Is(err, stats.ErrMisalignedSeries):
		return "The stock and the benchmark have fewer than two trading days in common."
	case errors.Is(err, analysis.ErrUnknownSymbol):
		return "The selected stock is not among the available stock symbols."
	case errors.Is(err, analysis.ErrInvalidRange):
		return "The start date must be before the end date."
	case errors.Is(err, market.ErrInvalidDate):
		return "Dates must be entered as yyyy-mm-dd."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The request was cancelled."
	}
	return "Something went wrong. See the log file for details."
}

func fetchMessage(fe *market.FetchError) string {
	switch fe.Kind {
	case market.FetchNetwork:
		return fmt.Sprintf("Could not reach the price service for %s. Check your connection and try again.", fe.Symbol)
	case market.FetchNotFound:
		return fmt.Sprintf("No price data was found for %s in the selected range.", fe.Symbol)
	case market.FetchRateLimited:
		return "The price service is limiting requests. Wait a moment and try again."
	case market.FetchBadResponse:
		return fmt.Sprintf("The price service returned data for %s that could not be read.", fe.Symbol)
	}
	return fmt.Sprintf("Fetching %s failed.", fe.Symbol)
}
