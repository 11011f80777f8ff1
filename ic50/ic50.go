// Package ic50 reads drug-response matrices: one row per cell line (COSMIC
// ID), one column per drug, each cell holding the IC50 of that pair.
//
// The input must be delimited text (tab-separated by default) with a header
// row. One column must be named "COSMIC ID"; the drug columns are those whose
// name starts with "Drug", conventionally "Drug_<n>_IC50". Any other column
// (tissue, sample name, MSI, features) is ignored:
//
//	COSMIC ID   Drug_1_IC50 Drug_20_IC50
//	111111      0.5         0.8
//	222222      1           2
package ic50

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gdsc/dataset"
	"github.com/carbocation/gdsc/frame"
	"github.com/carbocation/gdsc/plot"
	"github.com/carbocation/pfx"
)

// DrugPrefix marks the columns holding IC50 values.
const DrugPrefix = "Drug"

var ErrUnsupportedInput = errors.New("input must be a filename, an *IC50, or a *frame.Table")

type IC50 struct {
	dataset.Reader
}

// New builds an IC50 from a filename (read with sep), another *IC50 or an
// indexed *frame.Table (both copied).
func New(src interface{}, sep rune) (*IC50, error) {
	switch v := src.(type) {
	case string:
		return Read(v, sep, nil)
	case *IC50:
		return v.Copy(), nil
	case *frame.Table:
		return FromTable(v, sep), nil
	}

	return nil, fmt.Errorf("%w, got %T", ErrUnsupportedInput, src)
}

// Read loads an IC50 matrix from path, which may be a gs:// path when client
// is non-nil. A zero sep means the delimiter is detected; the reader then
// writes tab-separated output.
func Read(path string, sep rune, client *storage.Client) (*IC50, error) {
	r := &IC50{Reader: dataset.NewReader(path, sep)}

	raw, err := frame.ReadFile(path, sep, client)
	if err != nil {
		return nil, err
	}

	if err := r.load(raw); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return r, nil
}

// Parse loads an IC50 matrix from a stream.
func Parse(rdr io.Reader, sep rune) (*IC50, error) {
	r := &IC50{Reader: dataset.NewReader("", sep)}

	raw, err := frame.Read(rdr, sep)
	if err != nil {
		return nil, err
	}

	if err := r.load(raw); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *IC50) load(raw *frame.Table) error {
	if !raw.HasColumn(dataset.CosmicIDColumn) {
		return fmt.Errorf("%w: the IC50 input must contain a column named %q", frame.ErrMissingColumn, dataset.CosmicIDColumn)
	}

	columns := []string{dataset.CosmicIDColumn}
	for _, col := range raw.Columns() {
		if strings.HasPrefix(col, DrugPrefix) {
			columns = append(columns, col)
		}
	}

	sub, err := raw.Select(columns...)
	if err != nil {
		return err
	}

	df, err := sub.SetIndex(dataset.CosmicIDColumn)
	if err != nil {
		return err
	}

	// Drug columns must hold numbers or missing values.
	if _, err := df.Values(); err != nil {
		return err
	}

	r.DF = df

	return nil
}

// FromTable wraps a copy of an already indexed table.
func FromTable(t *frame.Table, sep rune) *IC50 {
	r := &IC50{Reader: dataset.NewReader("", sep)}
	r.DF = t.Copy()

	return r
}

// Copy returns an independent IC50.
func (r *IC50) Copy() *IC50 {
	out := &IC50{Reader: r.Reader}
	out.DF = r.DF.Copy()

	return out
}

// DrugIDs lists the drug column names.
func (r *IC50) DrugIDs() []string {
	return r.DF.Columns()
}

// Drug returns the IC50 values of one drug, NaN where not measured.
func (r *IC50) Drug(name string) ([]float64, error) {
	return r.DF.Floats(name)
}

// ValidFraction returns, for each drug, the fraction of cell lines with a
// measured IC50.
func (r *IC50) ValidFraction() ([]float64, error) {
	drugs := r.DrugIDs()
	out := make([]float64, len(drugs))

	if r.DF.NRows() == 0 {
		return out, nil
	}

	for i, drug := range drugs {
		n, err := r.DF.Count(drug)
		if err != nil {
			return nil, err
		}
		out[i] = float64(n) / float64(r.DF.NRows())
	}

	return out, nil
}

// Measured returns every non-missing IC50 in the matrix, row by row.
func (r *IC50) Measured() ([]float64, error) {
	all, err := r.DF.Values()
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(all))
	for _, v := range all {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}

	return out, nil
}

// PlotIC50Count plots the fraction of valid (measured) IC50 per drug and
// returns those fractions. The plot is skipped when w is nil.
func (r *IC50) PlotIC50Count(w io.Writer) ([]float64, error) {
	data, err := r.ValidFraction()
	if err != nil {
		return nil, err
	}

	if w == nil {
		return data, nil
	}

	x := make([]float64, len(data))
	for i := range x {
		x[i] = float64(i)
	}

	err = plot.Line(w, x, data, plot.Axes{
		XLabel: "Drug index",
		YLabel: "Percentage of valid IC50",
		XMin:   0,
		XMax:   float64(len(data) + 1),
		YMin:   0,
		YMax:   1,
	})

	return data, err
}

// Hist draws a histogram of the measured IC50 values and returns them. The
// plot is skipped when w is nil.
func (r *IC50) Hist(w io.Writer, bins int) ([]float64, error) {
	data, err := r.Measured()
	if err != nil {
		return nil, err
	}

	if w == nil {
		return data, nil
	}

	_, err = plot.Histogram(w, data, bins, false, plot.Axes{XLabel: "log IC50"})

	return data, err
}

// NAFraction is the fraction of drug/cell-line pairs without a measurement.
func (r *IC50) NAFraction() float64 {
	n := len(r.DrugIDs()) * r.DF.NRows()
	if n == 0 {
		return math.NaN()
	}

	return float64(r.DF.NACount()) / float64(n)
}

func (r *IC50) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Number of drugs: %d\n", len(r.DrugIDs()))
	fmt.Fprintf(&b, "Number of cell lines: %d\n", r.DF.NRows())
	fmt.Fprintf(&b, "Percentage of NA %v\n", r.NAFraction())

	return b.String()
}
