package features

import (
	"fmt"

	"github.com/carbocation/gdsc/frame"
)

// DropTissueIn removes the cell lines of the given tissues. Features left
// empty (summing to zero) by the removal are dropped too, except the
// informative columns. The dropped feature names are returned.
func (gf *GenomicFeatures) DropTissueIn(tissues ...string) ([]string, error) {
	return gf.filterTissues(tissues, false)
}

// KeepTissueIn keeps only the cell lines of the given tissues, then drops the
// features left empty, as DropTissueIn does.
func (gf *GenomicFeatures) KeepTissueIn(tissues ...string) ([]string, error) {
	return gf.filterTissues(tissues, true)
}

func (gf *GenomicFeatures) filterTissues(tissues []string, keep bool) ([]string, error) {
	set := make(map[string]struct{}, len(tissues))
	for _, tissue := range tissues {
		set[tissue] = struct{}{}
	}

	rowTissues := gf.Tissues()
	filtered := gf.DF.Filter(func(i int) bool {
		_, in := set[rowTissues[i]]
		return in == keep
	})

	// Validate before touching gf so a failure leaves it unchanged.
	todrop, err := emptyFeatures(filtered, gf.Schema, 0)
	if err != nil {
		return nil, err
	}

	gf.DF = filtered.Drop(todrop...)

	return todrop, nil
}

// PruneFeatures drops every feature whose sum over the remaining cell lines is
// at most minimum, and returns their names. Missing values count as zero.
func (gf *GenomicFeatures) PruneFeatures(minimum float64) ([]string, error) {
	todrop, err := emptyFeatures(gf.DF, gf.Schema, minimum)
	if err != nil {
		return nil, err
	}

	gf.DF = gf.DF.Drop(todrop...)

	return todrop, nil
}

func emptyFeatures(df *frame.Table, schema Schema, minimum float64) ([]string, error) {
	ignore := make(map[string]struct{})
	for _, col := range schema.Informative() {
		ignore[col] = struct{}{}
	}

	out := make([]string, 0)
	for _, col := range df.Columns() {
		if _, skip := ignore[col]; skip {
			continue
		}

		sum, err := df.Sum(col)
		if err != nil {
			return nil, fmt.Errorf("feature %q is not numeric: %w", col, err)
		}

		if sum <= minimum {
			out = append(out, col)
		}
	}

	return out, nil
}
