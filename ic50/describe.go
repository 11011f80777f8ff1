package ic50

import (
	"math"
	"sort"
	"strconv"

	"github.com/carbocation/gdsc/frame"
	"github.com/montanaflynn/stats"
)

// DescribeRows are the statistics computed by Describe, in order.
var DescribeRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Summary holds the descriptive statistics of one drug. Everything but Count
// is NaN when the drug has no measurement.
type Summary struct {
	Count                    int
	Mean, Std                float64
	Min, Q1, Median, Q3, Max float64
}

func (s Summary) values() []float64 {
	return []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max}
}

// Summarize computes the descriptive statistics of the measured values in
// vals. The standard deviation is the sample (n-1) estimate; quartiles and
// median are linearly interpolated.
func Summarize(vals []float64) Summary {
	data := make(stats.Float64Data, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}

	nan := math.NaN()
	out := Summary{Count: len(data), Mean: nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	if len(data) == 0 {
		return out
	}

	orNaN := func(v float64, err error) float64 {
		if err != nil {
			return nan
		}
		return v
	}

	out.Mean = orNaN(stats.Mean(data))
	out.Min = orNaN(stats.Min(data))
	out.Max = orNaN(stats.Max(data))
	if len(data) > 1 {
		out.Std = orNaN(stats.StandardDeviationSample(data))
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	out.Q1 = quantile(sorted, 0.25)
	out.Median = quantile(sorted, 0.5)
	out.Q3 = quantile(sorted, 0.75)

	return out
}

// quantile interpolates linearly between the two order statistics around
// position p*(n-1), the rule used by dataframe describe tables. sorted must be
// non-empty and in ascending order.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	i := int(math.Floor(pos))
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	return sorted[i] + (pos-float64(i))*(sorted[i+1]-sorted[i])
}

// Describe computes count, mean, std, min, quartiles and max for every drug.
// The result has one column per drug and one row per statistic.
func (r *IC50) Describe() (*frame.Table, error) {
	drugs := r.DrugIDs()

	cells := make([][]string, len(DescribeRows))
	for i := range cells {
		cells[i] = make([]string, len(drugs))
	}

	for j, drug := range drugs {
		vals, err := r.Drug(drug)
		if err != nil {
			return nil, err
		}

		for i, v := range Summarize(vals).values() {
			cells[i][j] = formatFloat(v)
		}
	}

	out, err := frame.New("", drugs)
	if err != nil {
		return nil, err
	}

	for i, name := range DescribeRows {
		if err := out.AppendRow(name, cells[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
