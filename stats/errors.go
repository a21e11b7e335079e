package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when an operation needs at least one value.
	ErrEmptyInput = errors.New("empty input")

	// ErrInsufficientData is returned when there are too few prices to form a return.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateInput is returned when a ratio is undefined, e.g. zero volatility.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrMisalignedSeries is returned when paired sequences differ in length or
	// share no observations.
	ErrMisalignedSeries = errors.New("misaligned series")
)

// Causes of ErrDegenerateInput. errors.Is matches both the cause and
// ErrDegenerateInput.
var (
	ErrZeroVolatility = fmt.Errorf("zero volatility: %w", ErrDegenerateInput)
	ErrZeroOpen       = fmt.Errorf("zero opening price: %w", ErrDegenerateInput)
	ErrFlatBenchmark  = fmt.Errorf("zero benchmark variance: %w", ErrDegenerateInput)
	ErrNonFinite      = fmt.Errorf("non-finite value: %w", ErrDegenerateInput)
)
