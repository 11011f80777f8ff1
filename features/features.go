// Package features reads genomic-feature matrices: one row per cell line,
// with informative columns (tissue, sample name, MSI status) followed by
// binary feature columns such as BRAF_mut, gain_cna... and loss_cna...
package features

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gdsc/dataset"
	"github.com/carbocation/gdsc/frame"
	"github.com/carbocation/gdsc/plot"
	"github.com/carbocation/pfx"
)

var ErrUnsupportedInput = errors.New("input must be a filename, a *GenomicFeatures, or a *frame.Table")

// Schema names the structural columns of a features file.
type Schema struct {
	CosmicID string `json:"cosmic_id"`
	Tissue   string `json:"tissue"`
	Sample   string `json:"sample"`
	MSI      string `json:"msi"`

	// Columns starting with DrugPrefix belong to the IC50 matrix and are
	// removed.
	DrugPrefix string `json:"drug_prefix"`
}

// DefaultSchema matches the GDSC release files. Note the spaces.
var DefaultSchema = Schema{
	CosmicID:   dataset.CosmicIDColumn,
	Tissue:     "Tissue Factor Value",
	Sample:     "Sample Name",
	MSI:        "MS-instability Factor Value",
	DrugPrefix: "Drug_",
}

// Informative returns the non-feature columns that every file must carry in
// addition to the COSMIC ID.
func (s Schema) Informative() []string {
	return []string{s.Tissue, s.Sample, s.MSI}
}

// Feature naming conventions.
const (
	MutationSuffix = "_mut"
	GainPrefix     = "gain_cna"
	LossPrefix     = "loss_cna"
)

type GenomicFeatures struct {
	dataset.Reader
	Schema Schema
}

// New builds GenomicFeatures from a filename (read with sep), another
// *GenomicFeatures or an indexed *frame.Table (both copied).
func New(src interface{}, sep rune) (*GenomicFeatures, error) {
	switch v := src.(type) {
	case string:
		return Read(v, sep, nil)
	case *GenomicFeatures:
		return v.Copy(), nil
	case *frame.Table:
		return FromTable(v, sep, DefaultSchema)
	}

	return nil, fmt.Errorf("%w, got %T", ErrUnsupportedInput, src)
}

// Read loads a features file using DefaultSchema.
func Read(path string, sep rune, client *storage.Client) (*GenomicFeatures, error) {
	return ReadSchema(path, sep, client, DefaultSchema)
}

// ReadSchema loads a features file whose structural columns are named by
// schema. path may be a gs:// path when client is non-nil.
func ReadSchema(path string, sep rune, client *storage.Client, schema Schema) (*GenomicFeatures, error) {
	if path == "" {
		return nil, fmt.Errorf("No genomic features file was provided")
	}

	gf := &GenomicFeatures{Reader: dataset.NewReader(path, sep), Schema: schema}

	raw, err := frame.ReadFile(path, sep, client)
	if err != nil {
		return nil, err
	}

	if err := gf.load(raw); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return gf, nil
}

// Parse loads a features file from a stream using DefaultSchema.
func Parse(rdr io.Reader, sep rune) (*GenomicFeatures, error) {
	gf := &GenomicFeatures{Reader: dataset.NewReader("", sep), Schema: DefaultSchema}

	raw, err := frame.Read(rdr, sep)
	if err != nil {
		return nil, err
	}

	if err := gf.load(raw); err != nil {
		return nil, err
	}

	return gf, nil
}

func (gf *GenomicFeatures) load(raw *frame.Table) error {
	if !raw.HasColumn(gf.Schema.CosmicID) {
		return fmt.Errorf("%w: the features input file must contain a column named %q", frame.ErrMissingColumn, gf.Schema.CosmicID)
	}

	df, err := raw.SetIndex(gf.Schema.CosmicID)
	if err != nil {
		return err
	}

	return gf.adopt(df)
}

// FromTable wraps a copy of a table already indexed by COSMIC ID.
func FromTable(t *frame.Table, sep rune, schema Schema) (*GenomicFeatures, error) {
	gf := &GenomicFeatures{Reader: dataset.NewReader("", sep), Schema: schema}
	if err := gf.adopt(t.Copy()); err != nil {
		return nil, err
	}

	return gf, nil
}

// adopt drops the drug columns and checks for the informative ones.
func (gf *GenomicFeatures) adopt(df *frame.Table) error {
	if gf.Schema.DrugPrefix != "" {
		df = df.SelectFunc(func(column string) bool {
			return !strings.HasPrefix(column, gf.Schema.DrugPrefix)
		})
	}

	for _, name := range gf.Schema.Informative() {
		if !df.HasColumn(name) {
			return fmt.Errorf("%w: could not find column %q", frame.ErrMissingColumn, name)
		}
	}

	gf.DF = df

	return nil
}

// Copy returns independent GenomicFeatures.
func (gf *GenomicFeatures) Copy() *GenomicFeatures {
	out := &GenomicFeatures{Reader: gf.Reader, Schema: gf.Schema}
	out.DF = gf.DF.Copy()

	return out
}

// Features lists every column, informative ones included.
func (gf *GenomicFeatures) Features() []string {
	return gf.DF.Columns()
}

// Tissues returns the tissue of each row.
func (gf *GenomicFeatures) Tissues() []string {
	// The tissue column was checked on construction.
	out, _ := gf.DF.Column(gf.Schema.Tissue)
	return out
}

// UniqueTissues returns the distinct tissues in order of first appearance.
func (gf *GenomicFeatures) UniqueTissues() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tissue := range gf.Tissues() {
		if _, exists := seen[tissue]; exists {
			continue
		}
		seen[tissue] = struct{}{}
		out = append(out, tissue)
	}

	return out
}

// TissueCount is the number of cell lines of one tissue.
type TissueCount struct {
	Tissue string
	Count  int
}

// TissueCounts counts cell lines per tissue, most frequent first. Underscores
// in tissue names are replaced by spaces.
func (gf *GenomicFeatures) TissueCounts() []TissueCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, tissue := range gf.Tissues() {
		if _, exists := counts[tissue]; !exists {
			order = append(order, tissue)
		}
		counts[tissue]++
	}

	out := make([]TissueCount, 0, len(order))
	for _, tissue := range order {
		out = append(out, TissueCount{Tissue: strings.ReplaceAll(tissue, "_", " "), Count: counts[tissue]})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	return out
}

// Plot draws the tissue distribution as a pie chart into pie and as a bar chart
// into bar, and returns it. Either writer may be nil to skip that chart.
func (gf *GenomicFeatures) Plot(pie, bar io.Writer) ([]TissueCount, error) {
	data := gf.TissueCounts()

	labels := make([]string, len(data))
	values := make([]float64, len(data))
	for i, v := range data {
		labels[i] = v.Tissue
		values[i] = float64(v.Count)
	}

	if pie != nil {
		if err := plot.Pie(pie, labels, values, "Tissues"); err != nil {
			return data, err
		}
	}

	if bar != nil {
		if err := plot.Bars(bar, labels, values, plot.Axes{YLabel: "Occurences"}); err != nil {
			return data, err
		}
	}

	return data, nil
}

// Kinds counts features by naming convention.
type Kinds struct {
	Mutation, Gain, Loss int
}

func (gf *GenomicFeatures) Kinds() Kinds {
	out := Kinds{}
	for _, col := range gf.DF.Columns() {
		if strings.HasSuffix(col, MutationSuffix) {
			out.Mutation++
		}
		if strings.HasPrefix(col, GainPrefix) {
			out.Gain++
		}
		if strings.HasPrefix(col, LossPrefix) {
			out.Loss++
		}
	}

	return out
}

func (gf *GenomicFeatures) String() string {
	kinds := gf.Kinds()

	b := strings.Builder{}
	b.WriteString("Genomic features distribution\n")
	fmt.Fprintf(&b, "Number of unique tissues %d\n", len(gf.UniqueTissues()))

	// The tissue, sample and MSI columns are not features.
	fmt.Fprintf(&b, "Number of unique features %d with\n", len(gf.Features())-len(gf.Schema.Informative()))
	fmt.Fprintf(&b, "- Mutation: %d\n", kinds.Mutation)
	fmt.Fprintf(&b, "- CNA (gain): %d\n", kinds.Gain)
	fmt.Fprintf(&b, "- CNA (loss): %d", kinds.Loss)

	return b.String()
}
