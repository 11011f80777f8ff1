// Package frame holds the indexed, in-memory table that every GDSC reader
// normalizes its input into. Cells are kept as the strings found in the file,
// so that writing a table back out reproduces what was read; numeric access
// goes through ParseFloat, Floats and Values.
package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrMissingColumn   = errors.New("missing column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrRowLength       = errors.New("row length does not match the header")
)

// NAValues are the cell contents interpreted as missing.
var NAValues = map[string]struct{}{
	"":     {},
	"NA":   {},
	"NaN":  {},
	"nan":  {},
	"N/A":  {},
	"#N/A": {},
	"null": {},
	"NULL": {},
}

// IsNA reports whether the cell holds a missing value.
func IsNA(cell string) bool {
	_, exists := NAValues[strings.TrimSpace(cell)]
	return exists
}

// ParseFloat converts a cell into a float64. Missing values become NaN.
func ParseFloat(cell string) (float64, error) {
	if IsNA(cell) {
		return math.NaN(), nil
	}

	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}

// Table is a row-indexed table of string cells. Index labels need not be
// unique.
type Table struct {
	IndexName string
	Index     []string

	columns []string
	lookup  map[string]int
	rows    [][]string
}

// New creates an empty table with the given index name and columns.
func New(indexName string, columns []string) (*Table, error) {
	t := &Table{
		IndexName: indexName,
		Index:     make([]string, 0),
		rows:      make([][]string, 0),
	}

	if err := t.setColumns(columns); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) setColumns(columns []string) error {
	lookup := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, exists := lookup[col]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, col)
		}
		lookup[col] = i
	}

	t.columns = append([]string(nil), columns...)
	t.lookup = lookup

	return nil
}

// AppendRow adds a row keyed by id. The values are copied.
func (t *Table) AppendRow(id string, values []string) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: row %q has %d values, expected %d", ErrRowLength, id, len(values), len(t.columns))
	}

	t.Index = append(t.Index, id)
	t.rows = append(t.rows, append([]string(nil), values...))

	return nil
}

// Columns returns a copy of the column names, in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) NRows() int { return len(t.rows) }

func (t *Table) NCols() int { return len(t.columns) }

func (t *Table) HasColumn(name string) bool {
	_, exists := t.lookup[name]
	return exists
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	i, exists := t.lookup[name]
	if !exists {
		return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}

	return i, nil
}

// Row returns the cells of row i. The slice must not be modified.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Cell returns the raw contents of row i in the named column.
func (t *Table) Cell(i int, column string) (string, error) {
	j, err := t.ColumnIndex(column)
	if err != nil {
		return "", err
	}

	return t.rows[i][j], nil
}

// Column returns a copy of the raw cells of the named column.
func (t *Table) Column(name string) ([]string, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}

	return out, nil
}

// Floats returns the named column as float64, with missing values as NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		v, err := ParseFloat(row[j])
		if err != nil {
			return nil, fmt.Errorf("column %q, row %q: %w", name, t.Index[i], err)
		}
		out[i] = v
	}

	return out, nil
}

// Values returns every cell of the table as float64 in row-major order, with
// missing values as NaN.
func (t *Table) Values() ([]float64, error) {
	out := make([]float64, 0, len(t.rows)*len(t.columns))
	for i, row := range t.rows {
		for j, cell := range row {
			v, err := ParseFloat(cell)
			if err != nil {
				return nil, fmt.Errorf("column %q, row %q: %w", t.columns[j], t.Index[i], err)
			}
			out = append(out, v)
		}
	}

	return out, nil
}

// Count returns the number of non-missing cells in the named column.
func (t *Table) Count(name string) (int, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, row := range t.rows {
		if !IsNA(row[j]) {
			n++
		}
	}

	return n, nil
}

// Sum adds up the named column, skipping missing values. A column with no
// values sums to zero.
func (t *Table) Sum(name string) (float64, error) {
	vals, err := t.Floats(name)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
	}

	return sum, nil
}

// NACount returns the number of missing cells across the whole table.
func (t *Table) NACount() int {
	n := 0
	for _, row := range t.rows {
		for _, cell := range row {
			if IsNA(cell) {
				n++
			}
		}
	}

	return n
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	out := &Table{
		IndexName: t.IndexName,
		Index:     append([]string(nil), t.Index...),
		rows:      make([][]string, len(t.rows)),
	}
	out.setColumns(t.columns)

	for i, row := range t.rows {
		out.rows[i] = append([]string(nil), row...)
	}

	return out
}

// SetIndex moves the named column into the index. The previous index labels
// are discarded.
func (t *Table) SetIndex(name string) (*Table, error) {
	j, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(t.columns)-1)
	columns = append(columns, t.columns[:j]...)
	columns = append(columns, t.columns[j+1:]...)

	out, err := New(name, columns)
	if err != nil {
		return nil, err
	}

	for _, row := range t.rows {
		values := make([]string, 0, len(columns))
		values = append(values, row[:j]...)
		values = append(values, row[j+1:]...)
		out.Index = append(out.Index, strings.TrimSpace(row[j]))
		out.rows = append(out.rows, values)
	}

	return out, nil
}

// Select returns a new table holding only the named columns, in the order
// given.
func (t *Table) Select(columns ...string) (*Table, error) {
	positions := make([]int, len(columns))
	for k, col := range columns {
		j, err := t.ColumnIndex(col)
		if err != nil {
			return nil, err
		}
		positions[k] = j
	}

	out, err := New(t.IndexName, columns)
	if err != nil {
		return nil, err
	}

	out.Index = append(out.Index, t.Index...)
	for _, row := range t.rows {
		values := make([]string, len(positions))
		for k, j := range positions {
			values[k] = row[j]
		}
		out.rows = append(out.rows, values)
	}

	return out, nil
}

// SelectFunc returns a new table holding the columns for which keep returns
// true.
func (t *Table) SelectFunc(keep func(column string) bool) *Table {
	columns := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		if keep(col) {
			columns = append(columns, col)
		}
	}

	// Columns come from t, so they exist and are unique.
	out, _ := t.Select(columns...)

	return out
}

// Drop returns a new table without the named columns. Names that are not
// present are ignored.
func (t *Table) Drop(columns ...string) *Table {
	drop := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		drop[col] = struct{}{}
	}

	return t.SelectFunc(func(column string) bool {
		_, exists := drop[column]
		return !exists
	})
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := &Table{
		IndexName: t.IndexName,
		Index:     make([]string, 0),
		rows:      make([][]string, 0),
	}
	out.setColumns(t.columns)

	for i, row := range t.rows {
		if !keep(i) {
			continue
		}
		out.Index = append(out.Index, t.Index[i])
		out.rows = append(out.rows, append([]string(nil), row...))
	}

	return out
}

// Transpose swaps rows and columns. The index labels become the column names,
// so they must be unique.
func (t *Table) Transpose(indexName string) (*Table, error) {
	out, err := New(indexName, t.Index)
	if err != nil {
		return nil, err
	}

	for j, col := range t.columns {
		values := make([]string, len(t.rows))
		for i, row := range t.rows {
			values[i] = row[j]
		}
		out.Index = append(out.Index, col)
		out.rows = append(out.rows, values)
	}

	return out, nil
}

// Equal reports whether two tables hold the same index, columns and cells.
func (t *Table) Equal(other *Table) bool {
	if t.IndexName != other.IndexName ||
		len(t.Index) != len(other.Index) ||
		len(t.columns) != len(other.columns) {
		return false
	}

	for i := range t.Index {
		if t.Index[i] != other.Index[i] {
			return false
		}
	}

	for j := range t.columns {
		if t.columns[j] != other.columns[j] {
			return false
		}
	}

	for i, row := range t.rows {
		for j, cell := range row {
			if cell != other.rows[i][j] {
				return false
			}
		}
	}

	return true
}

// Info summarizes the table's shape and per-column non-missing counts, in the
// manner of a dataframe's info listing.
func (t *Table) Info() string {
	b := strings.Builder{}

	fmt.Fprintf(&b, "Index: %d entries (%s)\n", len(t.rows), t.IndexName)
	fmt.Fprintf(&b, "Data columns (total %d columns):\n", len(t.columns))

	for j, col := range t.columns {
		nonNull := 0
		numeric := true
		for _, row := range t.rows {
			if IsNA(row[j]) {
				continue
			}
			nonNull++
			if _, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64); err != nil {
				numeric = false
			}
		}

		kind := "float64"
		if !numeric {
			kind = "object"
		}
		fmt.Fprintf(&b, "%s\t%d non-null\t%s\n", col, nonNull, kind)
	}

	return b.String()
}

// Rename applies fn to every column name.
func (t *Table) Rename(fn func(column string) string) error {
	columns := make([]string, len(t.columns))
	for j, col := range t.columns {
		columns[j] = fn(col)
	}

	return t.setColumns(columns)
}
