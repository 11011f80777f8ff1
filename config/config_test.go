package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/gdsc/features"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestParsePartialSchema(t *testing.T) {
	path := writeConfig(t, `{"columns": {"tissue": "Tissue"}, "delimiter": "comma", "bins": 50}`)

	cfg, err := ParseJSONConfigFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Columns.Tissue != "Tissue" {
		t.Errorf("Tissue: %q", cfg.Columns.Tissue)
	}
	if cfg.Columns.CosmicID != features.DefaultSchema.CosmicID || cfg.Columns.MSI != features.DefaultSchema.MSI {
		t.Errorf("Unset columns should keep their defaults: %+v", cfg.Columns)
	}
	if cfg.Bins != 50 || cfg.PlotWidth != 1024 {
		t.Errorf("Unexpected numbers: %+v", cfg)
	}

	sep, err := cfg.Sep()
	if err != nil || sep != ',' {
		t.Errorf("Expected ',', got %q (%v)", sep, err)
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := ParseJSONConfigFromPath(writeConfig(t, `{"bins": `)); err == nil {
		t.Error("Expected a syntax error")
	}
}

func TestParseMissing(t *testing.T) {
	if _, err := ParseJSONConfigFromPath(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
