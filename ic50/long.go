package ic50

import (
	"encoding/csv"
	"io"
	"math"

	"github.com/carbocation/gdsc/dataset"
	"github.com/carbocation/gdsc/frame"
	"github.com/gocarina/gocsv"
)

// Measurement is one measured cell-line/drug pair.
type Measurement struct {
	CosmicID string  `csv:"cosmic_id" db:"cosmic_id" bigquery:"cosmic_id"`
	Drug     string  `csv:"drug" db:"drug" bigquery:"drug"`
	IC50     float64 `csv:"ic50" db:"ic50" bigquery:"ic50"`
}

// Melt converts the matrix into long format, one Measurement per measured
// pair. Missing values are omitted.
func (r *IC50) Melt() ([]Measurement, error) {
	drugs := r.DrugIDs()
	out := make([]Measurement, 0, r.DF.NRows()*len(drugs))

	for _, drug := range drugs {
		vals, err := r.Drug(drug)
		if err != nil {
			return nil, err
		}

		for i, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			out = append(out, Measurement{CosmicID: r.DF.Index[i], Drug: drug, IC50: v})
		}
	}

	return out, nil
}

// Unmelt rebuilds a matrix from long-format measurements. Cell lines and drugs
// appear in order of first occurrence; pairs never measured are left empty.
// Repeated pairs keep the last value.
func Unmelt(measurements []Measurement) (*IC50, error) {
	rowOf := make(map[string]int)
	colOf := make(map[string]int)
	cosmicIDs := make([]string, 0)
	drugs := make([]string, 0)

	for _, m := range measurements {
		if _, exists := rowOf[m.CosmicID]; !exists {
			rowOf[m.CosmicID] = len(cosmicIDs)
			cosmicIDs = append(cosmicIDs, m.CosmicID)
		}
		if _, exists := colOf[m.Drug]; !exists {
			colOf[m.Drug] = len(drugs)
			drugs = append(drugs, m.Drug)
		}
	}

	cells := make([][]string, len(cosmicIDs))
	for i := range cells {
		cells[i] = make([]string, len(drugs))
	}
	for _, m := range measurements {
		cells[rowOf[m.CosmicID]][colOf[m.Drug]] = formatFloat(m.IC50)
	}

	df, err := frame.New(dataset.CosmicIDColumn, drugs)
	if err != nil {
		return nil, err
	}
	for i, id := range cosmicIDs {
		if err := df.AppendRow(id, cells[i]); err != nil {
			return nil, err
		}
	}

	return FromTable(df, 0), nil
}

// WriteLong writes measurements as delimited text with a header row.
func WriteLong(w io.Writer, measurements []Measurement, sep rune) error {
	if sep == 0 {
		sep = '\t'
	}

	c := csv.NewWriter(w)
	c.Comma = sep

	return gocsv.MarshalCSV(measurements, gocsv.NewSafeCSVWriter(c))
}

// ReadLong parses measurements written by WriteLong.
func ReadLong(rdr io.Reader, sep rune) ([]Measurement, error) {
	if sep == 0 {
		sep = '\t'
	}

	c := csv.NewReader(rdr)
	c.Comma = sep

	out := []Measurement{}
	if err := gocsv.UnmarshalCSV(c, &out); err != nil {
		return nil, err
	}

	return out, nil
}
