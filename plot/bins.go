package plot

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bins is an equal-width histogram. Edges has one more entry than Counts.
type Bins struct {
	Edges  []float64
	Counts []float64
}

// Centers returns the midpoint of each bin.
func (b Bins) Centers() []float64 {
	out := make([]float64, len(b.Counts))
	for i := range out {
		out[i] = (b.Edges[i] + b.Edges[i+1]) / 2
	}

	return out
}

// finite returns the values that are neither NaN nor infinite.
func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}

	return out
}

// Bin sorts values into nBins equal-width bins spanning their range. NaN and
// infinite values are ignored. With density set, counts are scaled so that the
// histogram integrates to 1.
func Bin(values []float64, nBins int, density bool) (Bins, error) {
	if nBins < 1 {
		return Bins{}, fmt.Errorf("Number of bins must be positive, got %d", nBins)
	}

	x := finite(values)
	if len(x) == 0 {
		return Bins{}, fmt.Errorf("No values to bin")
	}
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers := make([]float64, nBins+1)
	floats.Span(dividers, lo, hi)

	// stat.Histogram excludes the upper bound of the last bin.
	dividers[nBins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)

	if density {
		width := (hi - lo) / float64(nBins)
		for i := range counts {
			counts[i] /= float64(len(x)) * width
		}
	}

	return Bins{Edges: dividers, Counts: counts}, nil
}

// Text prints a terminal histogram of the finite values.
func Text(w io.Writer, values []float64, nBins, width int) error {
	x := finite(values)
	if len(x) == 0 {
		_, err := fmt.Fprintln(w, "(no values)")
		return err
	}

	hist := histogram.Hist(nBins, x)

	return histogram.Fprint(w, hist, histogram.Linear(width))
}
