package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockstat/stats"
)

func TestLineWidget(t *testing.T) {
	p := LineWidget("EBAY prices", []float64{100, 110, 121}, 80, 24)
	require.Len(t, p.Data, 1)
	assert.Equal(t, []float64{100, 110, 121}, p.Data[0])
	assert.Equal(t, "EBAY prices [q to close]", p.Title)
	assert.Equal(t, 80, p.GetRect().Dx())
}

func TestLineWidgetShiftsNegative(t *testing.T) {
	p := LineWidget("EBAY yields", []float64{0.1, -0.05, 0.02}, 80, 24)
	require.Len(t, p.Data, 1)
	assert.InDeltaSlice(t, []float64{0.15, 0, 0.07}, p.Data[0], 1e-12)
	assert.Contains(t, p.Title, "shifted by 0.05")
}

func TestLineWidgetDownsamples(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64(i)
	}
	p := LineWidget("long", values, 58, 20)
	require.Len(t, p.Data[0], 100)
	assert.Equal(t, 0.0, p.Data[0][0])
	assert.Equal(t, 999.0, p.Data[0][99])
}

func TestHistogramWidget(t *testing.T) {
	h, err := stats.NewHistogram([]float64{1, 2, 2, 3, 4}, 3)
	require.NoError(t, err)

	bc := HistogramWidget("EBAY prices", h, 62, 20)
	assert.Equal(t, []float64{1, 2, 2}, bc.Data)
	assert.Equal(t, []string{"1", "2", "3"}, bc.Labels)
	assert.Equal(t, 19, bc.BarWidth)
	assert.Equal(t, "7", bc.NumFormatter(7))
}

func TestHistogramWidgetNarrowTerminal(t *testing.T) {
	h, err := stats.NewHistogram([]float64{1, 2, 3, 4}, 40)
	require.NoError(t, err)

	bc := HistogramWidget("narrow", h, 20, 10)
	assert.Equal(t, 1, bc.BarWidth)
}

func TestTermPlotterRejectsShortInput(t *testing.T) {
	p := &TermPlotter{}
	assert.ErrorIs(t, p.Line("x", []float64{1}), stats.ErrInsufficientData)
	assert.ErrorIs(t, p.Histogram("x", stats.Histogram{}), stats.ErrEmptyInput)
}

func TestDownsample(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, downsample([]float64{1, 2, 3}, 10))
	assert.Equal(t, []float64{0, 4}, downsample([]float64{0, 1, 2, 3, 4}, 1))
	assert.Equal(t, []float64{0, 2, 4}, downsample([]float64{0, 1, 2, 3, 4}, 3))
}
