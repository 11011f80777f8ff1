package sqlstore

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/gdsc/ic50"
)

func TestStore(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	r, err := ic50.Parse(strings.NewReader("COSMIC ID\tDrug_1_IC50\tDrug_2_IC50\n111\t0.5\t\n222\t1.5\t-2\n"), '\t')
	if err != nil {
		t.Fatal(err)
	}

	long, err := r.Melt()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Insert(long); err != nil {
		t.Fatal(err)
	}

	all, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 measurements, got %d", len(all))
	}
	for i := range all {
		if all[i] != long[i] {
			t.Errorf("Row %d: expected %+v, got %+v", i, long[i], all[i])
		}
	}

	drug2, err := s.ByDrug("Drug_2_IC50")
	if err != nil {
		t.Fatal(err)
	}
	if len(drug2) != 1 || drug2[0].IC50 != -2 || drug2[0].CosmicID != "222" {
		t.Errorf("Unexpected Drug_2_IC50 rows %+v", drug2)
	}

	line, err := s.ByCosmicID("222")
	if err != nil {
		t.Fatal(err)
	}
	if len(line) != 2 {
		t.Errorf("Expected 2 measurements for 222, got %d", len(line))
	}

	drugs, err := s.Drugs()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(drugs, ",") != "Drug_1_IC50,Drug_2_IC50" {
		t.Errorf("Drugs: %v", drugs)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ic50.sqlite")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Insert([]ic50.Measurement{{CosmicID: "1", Drug: "Drug_1_IC50", IC50: 0.25}}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	all, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].IC50 != 0.25 {
		t.Errorf("Unexpected contents %+v", all)
	}
}
