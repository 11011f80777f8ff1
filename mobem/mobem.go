// Package mobem reads PANCAN MoBEM matrices (the binary event matrix of
// mutations, copy-number alterations and methylation). The matrix is stored
// with features as rows and cell lines as columns.
package mobem

import (
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gdsc/dataset"
	"github.com/carbocation/gdsc/frame"
)

// DefaultFilename is the name of the MoBEM export in a GDSC release.
const DefaultFilename = "PANCAN_simple_MOBEM.tsv"

type MoBEM struct {
	dataset.Reader
}

// Read loads a MoBEM export. A zero sep means the delimiter is detected; an
// empty path means DefaultFilename in the working directory.
func Read(path string, sep rune, client *storage.Client) (*MoBEM, error) {
	if path == "" {
		path = DefaultFilename
	}

	m := &MoBEM{Reader: dataset.NewReader(path, sep)}

	df, err := frame.ReadMatrix(path, sep, client)
	if err != nil {
		return nil, err
	}
	m.DF = df

	return m, nil
}

// Features returns the feature names, i.e. the row names.
func (m *MoBEM) Features() []string {
	return append([]string(nil), m.DF.Index...)
}

// CosmicIDs returns the cell lines, i.e. the column names.
func (m *MoBEM) CosmicIDs() []string {
	return m.DF.Columns()
}

// CellLines returns the matrix transposed so that rows are cell lines, indexed
// by COSMIC ID, as the other readers expect.
func (m *MoBEM) CellLines() (*frame.Table, error) {
	return m.DF.Transpose(dataset.CosmicIDColumn)
}

func (m *MoBEM) String() string {
	return fmt.Sprintf("MoBEM with %d features and %d cell lines\n", m.DF.NRows(), m.DF.NCols())
}
