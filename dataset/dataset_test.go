package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/gdsc/frame"
)

func TestToCSVUsesReaderSeparator(t *testing.T) {
	raw, err := frame.Read(strings.NewReader("COSMIC ID,Drug_1_IC50\n2,0.1\n1,0.2\n2,0.3\n"), ',')
	if err != nil {
		t.Fatal(err)
	}
	df, err := raw.SetIndex(CosmicIDColumn)
	if err != nil {
		t.Fatal(err)
	}

	r := NewReader("in.csv", ',')
	r.DF = df

	var rows CosmicRows = &r
	if got := strings.Join(rows.CosmicIDs(), ","); got != "2,1,2" {
		t.Errorf("CosmicIDs should keep order and duplicates, got %s", got)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := r.ToCSV(path, 0, nil); err != nil {
		t.Fatal(err)
	}

	back, err := frame.ReadFile(path, ',', nil)
	if err != nil {
		t.Fatal(err)
	}
	indexed, err := back.SetIndex(CosmicIDColumn)
	if err != nil {
		t.Fatal(err)
	}

	if !indexed.Equal(df) {
		t.Error("Saved table does not match")
	}
}

func TestDefaultSeparator(t *testing.T) {
	if r := NewReader("x", 0); r.Sep != '\t' {
		t.Errorf("Expected tab, got %q", r.Sep)
	}
}
