// Package dataset holds the pieces shared by the IC50 and genomic-feature
// readers: where a table came from, how to write it back out, and access to
// the cell-line (COSMIC) identifiers that index it.
package dataset

import (
	"cloud.google.com/go/storage"
	"github.com/carbocation/gdsc/frame"
)

// CosmicIDColumn names the column holding the cell-line identifiers.
const CosmicIDColumn = "COSMIC ID"

// Reader is embedded by each dataset type.
type Reader struct {
	Filename string
	Sep      rune

	// DF is the normalized, indexed table.
	DF *frame.Table
}

// NewReader records the source of a dataset. A zero sep means tab.
func NewReader(filename string, sep rune) Reader {
	if sep == 0 {
		sep = '\t'
	}

	return Reader{Filename: filename, Sep: sep}
}

// ToCSV saves the table, index included. If sep is 0, the reader's own
// separator is used.
func (r *Reader) ToCSV(path string, sep rune, client *storage.Client) error {
	if sep == 0 {
		sep = r.Sep
	}

	return r.DF.WriteFile(path, sep, client)
}

// Info describes the underlying table.
func (r *Reader) Info() string {
	return r.DF.Info()
}

// CosmicRows is satisfied by datasets whose rows are cell lines.
type CosmicRows interface {
	CosmicIDs() []string
}

// CosmicIDs returns the cell-line identifiers in row order. Duplicates are
// kept.
func (r *Reader) CosmicIDs() []string {
	return append([]string(nil), r.DF.Index...)
}
