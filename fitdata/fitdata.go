// Package fitdata reads the outputs of a dose-response curve fitting release:
// matrices of AUC, IC50 and residuals (cell lines by drugs) and the fitted
// logistic parameters of each cell line.
package fitdata

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gdsc/frame"
	"github.com/carbocation/gdsc/plot"
	"github.com/carbocation/pfx"
)

// File names of the four matrices within a release directory.
const (
	AUCFile       = "dfAUCv17.tsv"
	IC50File      = "dfIC50v17.tsv"
	ResidualsFile = "dfResv17.tsv"
	CellLineFile  = "dfCL.tsv"
)

type FitData struct {
	Dir string
	Sep rune

	AUC       *frame.Table
	IC50      *frame.Table
	Residuals *frame.Table

	// CellLines holds the xmid and scale parameters of each cell line.
	CellLines *frame.Table
}

// Read loads the four matrices from dir, which may be a gs:// prefix when
// client is non-nil. A zero sep means the delimiter is detected in each file.
func Read(dir string, sep rune, client *storage.Client) (*FitData, error) {
	out := &FitData{Dir: dir, Sep: sep}
	if out.Sep == 0 {
		out.Sep = '\t'
	}

	for _, v := range []struct {
		name string
		dst  **frame.Table
	}{
		{AUCFile, &out.AUC},
		{IC50File, &out.IC50},
		{ResidualsFile, &out.Residuals},
		{CellLineFile, &out.CellLines},
	} {
		t, err := frame.ReadMatrix(joinPath(dir, v.name), sep, client)
		if err != nil {
			return nil, pfx.Err(err)
		}
		*v.dst = t
	}

	return out, nil
}

func joinPath(dir, name string) string {
	if strings.HasPrefix(dir, "gs://") {
		return strings.TrimSuffix(dir, "/") + "/" + name
	}

	return filepath.Join(dir, name)
}

// nonZero flattens t, treating missing values as zero and dropping zeros.
func nonZero(t *frame.Table) ([]float64, error) {
	all, err := t.Values()
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(all))
	for _, v := range all {
		if math.IsNaN(v) || v == 0 {
			continue
		}
		out = append(out, v)
	}

	return out, nil
}

func hist(w io.Writer, t *frame.Table, bins int, label string) ([]float64, error) {
	data, err := nonZero(t)
	if err != nil {
		return nil, err
	}

	if w == nil {
		return data, nil
	}

	_, err = plot.Histogram(w, data, bins, true, plot.Axes{XLabel: label, YLabel: "#"})

	return data, err
}

// HistResiduals plots the density of residuals across all drugs and cell
// lines and returns the plotted values.
func (f *FitData) HistResiduals(w io.Writer, bins int) ([]float64, error) {
	return hist(w, f.Residuals, bins, "Residuals")
}

func (f *FitData) HistIC50(w io.Writer, bins int) ([]float64, error) {
	return hist(w, f.IC50, bins, "IC50")
}

func (f *FitData) HistAUC(w io.Writer, bins int) ([]float64, error) {
	return hist(w, f.AUC, bins, "AUC")
}

// Scatter plots the first two cell-line parameters against each other and
// returns them.
func (f *FitData) Scatter(w io.Writer) (x, y []float64, err error) {
	columns := f.CellLines.Columns()
	if len(columns) < 2 {
		return nil, nil, fmt.Errorf("Cell line parameters need 2 columns, found %d", len(columns))
	}

	if x, err = f.CellLines.Floats(columns[0]); err != nil {
		return nil, nil, err
	}
	if y, err = f.CellLines.Floats(columns[1]); err != nil {
		return nil, nil, err
	}

	if w == nil {
		return x, y, nil
	}

	err = plot.Scatter(w, x, y, plot.Axes{XLabel: columns[0], YLabel: columns[1]})

	return x, y, err
}

func (f *FitData) String() string {
	return fmt.Sprintf("Fit data in %s: %d cell lines x %d drugs, %d cell line parameters\n",
		f.Dir, f.IC50.NRows(), f.IC50.NCols(), f.CellLines.NCols())
}
