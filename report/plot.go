package report

import (
	"fmt"
	"strconv"

	"github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/stockstat/internal/logging"
	"github.com/rustyeddy/stockstat/stats"
)

// Plotter renders a chart and returns once the user closes it.
type Plotter interface {
	Line(title string, values []float64) error
	Histogram(title string, h stats.Histogram) error
}

// TermPlotter draws charts in the terminal with termui. The chart stays on
// screen until the user presses q or Ctrl-C.
type TermPlotter struct {
	Log logrus.FieldLogger
}

func (p *TermPlotter) Line(title string, values []float64) error {
	if len(values) < 2 {
		return fmt.Errorf("line plot: need 2 points, got %d: %w", len(values), stats.ErrInsufficientData)
	}
	return p.show(func(w, h int) termui.Drawable {
		return LineWidget(title, values, w, h)
	})
}

func (p *TermPlotter) Histogram(title string, h stats.Histogram) error {
	if len(h.Counts) == 0 {
		return fmt.Errorf("histogram plot: %w", stats.ErrEmptyInput)
	}
	return p.show(func(w, ht int) termui.Drawable {
		return HistogramWidget(title, h, w, ht)
	})
}

func (p *TermPlotter) show(build func(width, height int) termui.Drawable) error {
	if err := termui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	defer termui.Close()

	termui.Render(build(termui.TerminalDimensions()))

	for e := range termui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			p.logger().Debug("plot closed")
			return nil
		case "<Resize>":
			r := e.Payload.(termui.Resize)
			termui.Clear()
			termui.Render(build(r.Width, r.Height))
		}
	}
	return nil
}

func (p *TermPlotter) logger() logrus.FieldLogger {
	if p.Log == nil {
		return logging.Discard()
	}
	return p.Log
}

// LineWidget builds a braille line chart of values sized to the terminal.
// The chart cannot draw below zero, so negative series are shifted up and
// the shift is named in the title.
func LineWidget(title string, values []float64, width, height int) *widgets.Plot {
	data := downsample(values, 2*(width-8))

	lo := data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
	}
	if lo < 0 {
		shifted := make([]float64, len(data))
		for i, v := range data {
			shifted[i] = v - lo
		}
		data = shifted
		title = fmt.Sprintf("%s (shifted by %s)", title, Number(-lo))
	}

	p := widgets.NewPlot()
	p.Title = title + " [q to close]"
	p.Data = [][]float64{data}
	p.Marker = widgets.MarkerBraille
	p.AxesColor = termui.ColorWhite
	p.LineColors = []termui.Color{termui.ColorYellow}
	p.TitleStyle.Fg = termui.ColorYellow
	p.SetRect(0, 0, width, height)
	return p
}

// HistogramWidget builds a bar chart with one bar per bin, labelled with
// the bin's lower edge.
func HistogramWidget(title string, h stats.Histogram, width, height int) *widgets.BarChart {
	bc := widgets.NewBarChart()
	bc.Title = title + " [q to close]"
	bc.Data = make([]float64, len(h.Counts))
	bc.Labels = make([]string, len(h.Counts))
	for i, c := range h.Counts {
		bc.Data[i] = float64(c)
		bc.Labels[i] = strconv.FormatFloat(h.Edges[i], 'g', 4, 64)
	}

	bc.BarGap = 1
	bc.BarWidth = (width-2)/len(h.Counts) - bc.BarGap
	if bc.BarWidth < 1 {
		bc.BarWidth = 1
	}
	bc.BarColors = []termui.Color{termui.ColorGreen}
	bc.LabelStyles = []termui.Style{termui.NewStyle(termui.ColorWhite)}
	bc.NumStyles = []termui.Style{termui.NewStyle(termui.ColorBlack)}
	bc.NumFormatter = func(v float64) string { return strconv.Itoa(int(v)) }
	bc.TitleStyle.Fg = termui.ColorYellow
	bc.SetRect(0, 0, width, height)
	return bc
}

// downsample keeps at most n evenly spaced values, always including the
// first and last.
func downsample(values []float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	if len(values) <= n {
		return values
	}
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	return out
}
