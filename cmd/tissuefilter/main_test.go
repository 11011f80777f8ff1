package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/gdsc/features"
)

func TestSplitList(t *testing.T) {
	if got := splitList(" breast, lung_NSCLC ,,"); strings.Join(got, "|") != "breast|lung_NSCLC" {
		t.Errorf("Got %v", got)
	}

	if got := splitList(""); len(got) != 0 {
		t.Errorf("Expected nothing, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	gf, err := features.Read(filepath.Join("..", "..", "features", "testdata", "features.tsv"), '\t', nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := filter(gf, []string{"breast", "skin"}, []string{"skin"}, 1); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(gf.CosmicIDs(), ","); got != "906800,910700" {
		t.Errorf("Rows: %s", got)
	}

	// Among the two breast lines only TP53_mut is carried more than once.
	expected := "Tissue Factor Value,Sample Name,MS-instability Factor Value,TP53_mut"
	if got := strings.Join(gf.Features(), ","); got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}
