// Package config reads the optional JSON configuration shared by the gdsc
// commands. Every field may be omitted; omitted fields keep their defaults.
package config

import (
	"encoding/json"
	"log"
	"os"

	"github.com/carbocation/gdsc"
	"github.com/carbocation/gdsc/features"
	"github.com/carbocation/pfx"
)

type JSONConfig struct {
	ConfigPath string          `json:"-"`
	Columns    features.Schema `json:"columns"`
	Delimiter  string          `json:"delimiter"`
	Bins       int             `json:"bins"`
	PlotWidth  int             `json:"plot_width"`
	PlotHeight int             `json:"plot_height"`
	Project    string          `json:"project"`
	Output     string          `json:"output"`
}

// Default is the configuration used when no file is given.
func Default() JSONConfig {
	return JSONConfig{
		Columns:    features.DefaultSchema,
		Bins:       20,
		PlotWidth:  1024,
		PlotHeight: 512,
	}
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := Default()
	out.ConfigPath = gdsc.ExpandHome(path)

	f, err := os.Open(out.ConfigPath)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	// A partially specified schema inherits the remaining names.
	def := features.DefaultSchema
	if out.Columns.CosmicID == "" {
		out.Columns.CosmicID = def.CosmicID
	}
	if out.Columns.Tissue == "" {
		out.Columns.Tissue = def.Tissue
	}
	if out.Columns.Sample == "" {
		out.Columns.Sample = def.Sample
	}
	if out.Columns.MSI == "" {
		out.Columns.MSI = def.MSI
	}
	if out.Columns.DrugPrefix == "" {
		out.Columns.DrugPrefix = def.DrugPrefix
	}

	out.Output = gdsc.ExpandHome(out.Output)

	return out, nil
}

// Sep returns the configured delimiter, or 0 to detect it.
func (c JSONConfig) Sep() (rune, error) {
	return gdsc.ParseDelimiter(c.Delimiter)
}
