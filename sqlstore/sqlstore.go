// Package sqlstore persists long-format IC50 measurements in SQLite so that
// they can be queried per drug or per cell line without re-reading the matrix.
package sqlstore

import (
	"fmt"

	"github.com/carbocation/gdsc/ic50"
	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS ic50 (
	cosmic_id TEXT NOT NULL,
	drug TEXT NOT NULL,
	ic50 REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS ic50_drug ON ic50 (drug);
CREATE INDEX IF NOT EXISTS ic50_cosmic_id ON ic50 (cosmic_id);`

type Store struct {
	DB *sqlx.DB
}

// Open opens (creating if needed) the SQLite database at path and ensures the
// schema exists. Use ":memory:" for a transient store.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	s := &Store{DB: db}
	if err := s.CreateSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) CreateSchema() error {
	if _, err := s.DB.Exec(schema); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Insert adds measurements in a single transaction.
func (s *Store) Insert(measurements []ic50.Measurement) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return pfx.Err(err)
	}

	stmt, err := tx.PrepareNamed("INSERT INTO ic50 (cosmic_id, drug, ic50) VALUES (:cosmic_id, :drug, :ic50)")
	if err != nil {
		tx.Rollback()
		return pfx.Err(err)
	}
	defer stmt.Close()

	for _, m := range measurements {
		if _, err := stmt.Exec(m); err != nil {
			tx.Rollback()
			return pfx.Err(fmt.Errorf("inserting %s/%s: %v", m.CosmicID, m.Drug, err))
		}
	}

	return tx.Commit()
}

// Load returns every stored measurement in insertion order.
func (s *Store) Load() ([]ic50.Measurement, error) {
	out := make([]ic50.Measurement, 0)
	if err := s.DB.Select(&out, "SELECT cosmic_id, drug, ic50 FROM ic50 ORDER BY rowid"); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// ByDrug returns the measurements of one drug.
func (s *Store) ByDrug(drug string) ([]ic50.Measurement, error) {
	out := make([]ic50.Measurement, 0)
	if err := s.DB.Select(&out, "SELECT cosmic_id, drug, ic50 FROM ic50 WHERE drug=? ORDER BY rowid", drug); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// ByCosmicID returns the measurements of one cell line.
func (s *Store) ByCosmicID(cosmicID string) ([]ic50.Measurement, error) {
	out := make([]ic50.Measurement, 0)
	if err := s.DB.Select(&out, "SELECT cosmic_id, drug, ic50 FROM ic50 WHERE cosmic_id=? ORDER BY rowid", cosmicID); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// Drugs lists the distinct drugs stored.
func (s *Store) Drugs() ([]string, error) {
	out := make([]string, 0)
	if err := s.DB.Select(&out, "SELECT DISTINCT drug FROM ic50 ORDER BY drug"); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
