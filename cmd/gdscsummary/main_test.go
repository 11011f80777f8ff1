package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/gdsc/config"
)

func TestRunWritesPlots(t *testing.T) {
	dir := t.TempDir()

	opts := options{
		IC50Path:     filepath.Join("..", "..", "ic50", "testdata", "ic50.tsv"),
		FeaturesPath: filepath.Join("..", "..", "features", "testdata", "features.tsv"),
		MoBEMPath:    filepath.Join("..", "..", "mobem", "testdata", "PANCAN_simple_MOBEM.tsv"),
		FitDataDir:   filepath.Join("..", "..", "fitdata", "testdata"),
		PlotPrefix:   filepath.Join(dir, "gdsc_"),
		Describe:     true,
		TextHist:     true,
		Config:       config.Default(),
		Sep:          '\t',
	}
	opts.Config.Bins = 5

	if err := run(opts); err != nil {
		t.Fatal(err)
	}
	STDOUT.Flush()

	for _, suffix := range []string{
		"ic50_count", "ic50_hist",
		"tissues_pie", "tissues_bar",
		"residuals_hist", "fit_ic50_hist", "auc_hist", "cell_line_scatter",
	} {
		info, err := os.Stat(opts.PlotPrefix + suffix + ".png")
		if err != nil {
			t.Errorf("%s: %v", suffix, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s: empty plot", suffix)
		}
	}
}

func TestUsesGoogleStorage(t *testing.T) {
	if usesGoogleStorage("a.tsv", "") {
		t.Error("Local paths should not need a storage client")
	}
	if !usesGoogleStorage("a.tsv", "gs://bucket/b.tsv") {
		t.Error("gs:// paths need a storage client")
	}
}
