// Package plot renders the descriptive charts of the GDSC readers as PNG
// images.
package plot

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

var (
	Width  = 1024
	Height = 512

	gridStyle = chart.Style{
		StrokeColor: drawing.ColorFromHex("dddddd"),
		StrokeWidth: 1.0,
	}

	dotStyle = chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    drawing.ColorFromHex("1f77b4"),
	}
)

// Axes labels the axes of a chart and optionally fixes their ranges. A range
// whose minimum equals its maximum is computed from the data.
type Axes struct {
	Title  string
	XLabel string
	YLabel string

	XMin, XMax float64
	YMin, YMax float64
}

func (a Axes) xRange() chart.Range {
	if a.XMin == a.XMax {
		return nil
	}

	return &chart.ContinuousRange{Min: a.XMin, Max: a.XMax}
}

func (a Axes) yRange() chart.Range {
	if a.YMin == a.YMax {
		return nil
	}

	return &chart.ContinuousRange{Min: a.YMin, Max: a.YMax}
}

func (a Axes) chart(series chart.Series) chart.Chart {
	return chart.Chart{
		Title:  a.Title,
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           a.XLabel,
			Range:          a.xRange(),
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           a.YLabel,
			Range:          a.yRange(),
			GridMajorStyle: gridStyle,
			GridMinorStyle: gridStyle,
		},
		Series: []chart.Series{series},
	}
}

// padded fills in a range that would otherwise collapse onto a single value,
// which happens with one point or with identical values.
func (a Axes) padded(x, y []float64) Axes {
	if a.XMin == a.XMax {
		if lo, hi := floats.Min(x), floats.Max(x); lo == hi {
			a.XMin, a.XMax = lo-0.5, hi+0.5
		}
	}
	if a.YMin == a.YMax {
		if lo, hi := floats.Min(y), floats.Max(y); lo == hi {
			a.YMin, a.YMax = lo-0.5, hi+0.5
		}
	}

	return a
}

// Line draws y against x. A single point is drawn as a dot.
func Line(w io.Writer, x, y []float64, axes Axes) error {
	if len(x) != len(y) {
		return fmt.Errorf("Line plot has %d x values but %d y values", len(x), len(y))
	}
	if len(x) < 1 {
		return fmt.Errorf("Line plot needs at least 1 point")
	}

	series := chart.ContinuousSeries{
		XValues: x,
		YValues: y,
	}
	if len(x) == 1 {
		series.Style = dotStyle
	}

	graph := axes.padded(x, y).chart(series)

	return graph.Render(chart.PNG, w)
}

// Scatter draws unconnected points. Points with a NaN coordinate are skipped.
func Scatter(w io.Writer, x, y []float64, axes Axes) error {
	if len(x) != len(y) {
		return fmt.Errorf("Scatter plot has %d x values but %d y values", len(x), len(y))
	}

	xs, ys := make([]float64, 0, len(x)), make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs, ys = append(xs, x[i]), append(ys, y[i])
	}
	if len(xs) < 1 {
		return fmt.Errorf("Scatter plot needs at least 1 complete point")
	}

	graph := axes.padded(xs, ys).chart(chart.ContinuousSeries{
		Style:   dotStyle,
		XValues: xs,
		YValues: ys,
	})

	return graph.Render(chart.PNG, w)
}

// Bars draws one labeled bar per value.
func Bars(w io.Writer, labels []string, values []float64, axes Axes) error {
	if len(labels) != len(values) {
		return fmt.Errorf("Bar chart has %d labels but %d values", len(labels), len(values))
	}
	if len(values) == 0 {
		return fmt.Errorf("Bar chart needs at least one value")
	}

	max := 0.0
	bars := make([]chart.Value, len(values))
	for i, v := range values {
		bars[i] = chart.Value{Label: labels[i], Value: v}
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		max = 1
	}

	spacing := 4
	barWidth := (Width-100)/len(values) - spacing
	if barWidth < 1 {
		barWidth, spacing = 1, 0
	}

	graph := chart.BarChart{
		Title:  axes.Title,
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Name:           axes.YLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: max},
			GridMajorStyle: gridStyle,
		},
		Bars: bars,
	}

	return graph.Render(chart.PNG, w)
}

// Histogram bins values and draws the bins as bars labeled by their centers.
func Histogram(w io.Writer, values []float64, nBins int, density bool, axes Axes) (Bins, error) {
	bins, err := Bin(values, nBins, density)
	if err != nil {
		return bins, err
	}

	labels := make([]string, len(bins.Counts))
	for i, c := range bins.Centers() {
		labels[i] = fmt.Sprintf("%.3g", c)
	}

	if axes.YLabel == "" {
		axes.YLabel = "#"
	}
	if axes.XLabel != "" && axes.Title == "" {
		axes.Title = axes.XLabel
	}

	return bins, Bars(w, labels, bins.Counts, axes)
}

// Pie draws the share of each value in their total.
func Pie(w io.Writer, labels []string, values []float64, title string) error {
	if len(labels) != len(values) {
		return fmt.Errorf("Pie chart has %d labels but %d values", len(labels), len(values))
	}

	slices := make([]chart.Value, 0, len(values))
	total := 0.0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		total += v
		slices = append(slices, chart.Value{Label: labels[i], Value: v})
	}
	if total <= 0 {
		return fmt.Errorf("Pie chart needs at least one positive value")
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  Height,
		Height: Height,
		Values: slices,
	}

	return graph.Render(chart.PNG, w)
}
