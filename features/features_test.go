package features

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/gdsc/frame"
)

func readTestFeatures(t *testing.T) *GenomicFeatures {
	t.Helper()

	gf, err := Read(filepath.Join("testdata", "features.tsv"), '\t', nil)
	if err != nil {
		t.Fatal(err)
	}

	return gf
}

func TestReadDetectsComma(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "features.tsv"))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "features.csv")
	if err := os.WriteFile(path, bytes.ReplaceAll(data, []byte("\t"), []byte(",")), 0644); err != nil {
		t.Fatal(err)
	}

	gf, err := Read(path, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := strings.Join(gf.Features(), ","), strings.Join(readTestFeatures(t).Features(), ","); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestRead(t *testing.T) {
	gf := readTestFeatures(t)

	expected := "Tissue Factor Value,Sample Name,MS-instability Factor Value,BRAF_mut,TP53_mut,gain_cna_PANCAN1,loss_cna_PANCAN2"
	if got := strings.Join(gf.Features(), ","); got != expected {
		t.Errorf("Drug columns should be removed.\nExpected: %s\nGot:      %s", expected, got)
	}

	if got := strings.Join(gf.CosmicIDs(), ","); got != "906800,687800,924100,910700" {
		t.Errorf("CosmicIDs: %s", got)
	}

	if got := strings.Join(gf.UniqueTissues(), ","); got != "breast,lung_NSCLC,skin" {
		t.Errorf("UniqueTissues: %s", got)
	}

	if got := len(gf.Tissues()); got != 4 {
		t.Errorf("Expected 4 tissues, got %d", got)
	}
}

func TestString(t *testing.T) {
	gf := readTestFeatures(t)

	expected := "Genomic features distribution\n" +
		"Number of unique tissues 3\n" +
		"Number of unique features 4 with\n" +
		"- Mutation: 2\n" +
		"- CNA (gain): 1\n" +
		"- CNA (loss): 1"

	if got := gf.String(); got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestRequiredColumns(t *testing.T) {
	header := []string{"COSMIC ID", "Tissue Factor Value", "Sample Name", "MS-instability Factor Value", "BRAF_mut"}
	row := []string{"1", "breast", "MCF7", "0", "1"}

	for skip, name := range header[:4] {
		cols := make([]string, 0)
		vals := make([]string, 0)
		for i := range header {
			if i == skip {
				continue
			}
			cols = append(cols, header[i])
			vals = append(vals, row[i])
		}

		input := strings.Join(cols, "\t") + "\n" + strings.Join(vals, "\t") + "\n"
		_, err := Parse(strings.NewReader(input), '\t')
		if !errors.Is(err, frame.ErrMissingColumn) {
			t.Errorf("Without %q: expected ErrMissingColumn, got %v", name, err)
			continue
		}
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Error should name %q: %v", name, err)
		}
	}
}

func TestReadEmptyPath(t *testing.T) {
	if _, err := Read("", '\t', nil); err == nil {
		t.Error("Expected an error without a filename")
	}
}

func TestKeepTissueIn(t *testing.T) {
	gf := readTestFeatures(t)

	dropped, err := gf.KeepTissueIn("breast")
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(dropped, ","); got != "BRAF_mut,loss_cna_PANCAN2" {
		t.Errorf("Dropped: %s", got)
	}
	if got := strings.Join(gf.CosmicIDs(), ","); got != "906800,910700" {
		t.Errorf("Rows: %s", got)
	}

	// MSI is all zero among breast lines but is informative, so it stays.
	if !gf.DF.HasColumn("MS-instability Factor Value") {
		t.Error("Informative columns must never be pruned")
	}
}

func TestDropTissueIn(t *testing.T) {
	gf := readTestFeatures(t)

	dropped, err := gf.DropTissueIn("breast")
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(dropped, ","); got != "TP53_mut,gain_cna_PANCAN1" {
		t.Errorf("Dropped: %s", got)
	}
	if got := strings.Join(gf.UniqueTissues(), ","); got != "lung_NSCLC,skin" {
		t.Errorf("Tissues: %s", got)
	}
}

func TestDropEverything(t *testing.T) {
	gf := readTestFeatures(t)

	if _, err := gf.DropTissueIn(gf.UniqueTissues()...); err != nil {
		t.Fatal(err)
	}

	if gf.DF.NRows() != 0 {
		t.Errorf("Expected no rows, got %d", gf.DF.NRows())
	}
	if got := len(gf.Features()); got != 3 {
		t.Errorf("Only the informative columns should remain, got %v", gf.Features())
	}
}

func TestNonNumericFeature(t *testing.T) {
	input := "COSMIC ID\tTissue Factor Value\tSample Name\tMS-instability Factor Value\tBRAF_mut\n" +
		"1\tbreast\tMCF7\t0\tyes\n"

	gf, err := Parse(strings.NewReader(input), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if _, err := gf.KeepTissueIn("breast"); err == nil {
		t.Fatal("Expected an error for a non-numeric feature")
	}
	if gf.DF.NRows() != 1 || len(gf.Features()) != 4 {
		t.Error("A failed filter must leave the features unchanged")
	}
}

func TestPruneFeatures(t *testing.T) {
	gf := readTestFeatures(t)

	dropped, err := gf.PruneFeatures(1)
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(dropped, ","); got != "gain_cna_PANCAN1,loss_cna_PANCAN2" {
		t.Errorf("Dropped: %s", got)
	}
}

func TestTissueCountsAndPlot(t *testing.T) {
	gf := readTestFeatures(t)

	var pie, bar bytes.Buffer
	counts, err := gf.Plot(&pie, &bar)
	if err != nil {
		t.Fatal(err)
	}

	expected := []TissueCount{{"breast", 2}, {"lung NSCLC", 1}, {"skin", 1}}
	for i, c := range counts {
		if c != expected[i] {
			t.Errorf("Position %d: expected %+v, got %+v", i, expected[i], c)
		}
	}

	if pie.Len() == 0 || bar.Len() == 0 {
		t.Error("Expected both charts to be rendered")
	}
}

func TestNew(t *testing.T) {
	gf := readTestFeatures(t)

	cp, err := New(gf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cp.KeepTissueIn("skin"); err != nil {
		t.Fatal(err)
	}
	if gf.DF.NRows() != 4 {
		t.Error("New(*GenomicFeatures) must copy")
	}

	fromTable, err := New(gf.DF, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !fromTable.DF.Equal(gf.DF) {
		t.Error("New(*frame.Table) should hold the same content")
	}

	if _, err := New([]string{"x"}, 0); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("Expected ErrUnsupportedInput, got %v", err)
	}
}

func TestSchemaOverride(t *testing.T) {
	input := "cell\ttissue\tsample\tmsi\tBRAF_mut\n1\tbreast\tMCF7\t0\t1\n"
	raw, err := frame.Read(strings.NewReader(input), '\t')
	if err != nil {
		t.Fatal(err)
	}
	df, err := raw.SetIndex("cell")
	if err != nil {
		t.Fatal(err)
	}

	gf, err := FromTable(df, 0, Schema{CosmicID: "cell", Tissue: "tissue", Sample: "sample", MSI: "msi"})
	if err != nil {
		t.Fatal(err)
	}

	if got := gf.UniqueTissues(); len(got) != 1 || got[0] != "breast" {
		t.Errorf("Unexpected tissues %v", got)
	}
}
