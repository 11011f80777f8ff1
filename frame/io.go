package frame

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gdsc"
	"github.com/carbocation/pfx"
	"github.com/extrame/xls"
)

const BufferSize = 4096 * 32

// Read parses a delimited stream whose first row is the header. The returned
// table has no index column yet: rows are labeled by their 0-based position.
// Use SetIndex to promote a column to the index. When sep is 0 the delimiter
// is detected from the content.
func Read(r io.Reader, sep rune) (*Table, error) {
	if sep == 0 {
		// Detection consumes the stream, so buffer it.
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, pfx.Err(err)
		}

		sep = gdsc.DetermineDelimiter(bytes.NewReader(data))
		r = bytes.NewReader(data)
	}

	fileCSV := csv.NewReader(bufio.NewReaderSize(r, BufferSize))
	fileCSV.Comma = sep
	fileCSV.LazyQuotes = true
	fileCSV.FieldsPerRecord = -1

	header, err := fileCSV.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("Header parsing error: input is empty")
	} else if err != nil {
		return nil, fmt.Errorf("Header parsing error: %v", err)
	}

	t, err := New("", header)
	if err != nil {
		return nil, err
	}

	for line := 2; ; line++ {
		row, err := fileCSV.Read()
		if err != nil && err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		// Blank lines are skipped by encoding/csv, but a line of bare
		// delimiters is a row of missing values and is kept.
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrRowLength, line, len(row), len(header))
		}

		if err := t.AppendRow(strconv.Itoa(t.NRows()), row); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Write serializes the table, index first, using sep as the delimiter.
func (t *Table) Write(w io.Writer, sep rune) error {
	if sep == 0 {
		sep = '\t'
	}

	c := csv.NewWriter(w)
	c.Comma = sep

	if err := c.Write(append([]string{t.IndexName}, t.columns...)); err != nil {
		return err
	}

	line := make([]string, len(t.columns)+1)
	for i, row := range t.rows {
		line[0] = t.Index[i]
		copy(line[1:], row)
		if err := c.Write(line); err != nil {
			return err
		}
	}

	c.Flush()

	return c.Error()
}

// ReadFile reads a table from a local path or, with a non-nil client, a gs://
// path. Compressed inputs are decompressed transparently. When sep is 0 the
// delimiter is detected from the content. Files ending in .xls are read as
// spreadsheets (first sheet).
func ReadFile(path string, sep rune, client *storage.Client) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		if strings.HasPrefix(path, "gs://") {
			return readRemoteXLS(path, client)
		}
		return ReadXLS(gdsc.ExpandHome(path), 0)
	}

	f, err := gdsc.Open(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f, sep)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return t, nil
}

// WriteFile writes the table to a local path or, with a non-nil client, a
// gs:// path.
func (t *Table) WriteFile(path string, sep rune, client *storage.Client) error {
	f, err := gdsc.Create(path, client)
	if err != nil {
		return pfx.Err(err)
	}

	bw := bufio.NewWriterSize(f, BufferSize)
	if err := t.Write(bw, sep); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	if err := bw.Flush(); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return f.Close()
}

// readRemoteXLS copies a gs:// workbook to a temporary file, since the
// spreadsheet reader needs to seek.
func readRemoteXLS(path string, client *storage.Client) (*Table, error) {
	src, err := gdsc.Open(path, client)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "gdsc-*.xls")
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	if err := tmp.Close(); err != nil {
		return nil, pfx.Err(err)
	}

	return ReadXLS(tmp.Name(), 0)
}

// sheetRow returns nil for rows absent from the sheet. The xls package
// dereferences missing rows instead of reporting them.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()

	return sheet.Row(i)
}

// ReadXLS reads one sheet of a legacy Excel workbook. The first row of the
// sheet is the header.
func ReadXLS(path string, sheetID int) (*Table, error) {
	spreadsheet, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}

	if sheetID < 0 || sheetID >= spreadsheet.NumSheets() {
		return nil, fmt.Errorf("Sheet %d requested but %s has %d sheets", sheetID, path, spreadsheet.NumSheets())
	}

	sheet := spreadsheet.GetSheet(sheetID)
	if sheet == nil {
		return nil, fmt.Errorf("Sheet %d was nil", sheetID)
	}

	var t *Table
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheetRow(sheet, rowID)
		if row == nil {
			continue
		}

		if t == nil {
			header := make([]string, 0, row.LastCol()+1)
			for colID := 0; colID <= row.LastCol(); colID++ {
				header = append(header, row.Col(colID))
			}

			// Trailing empty header cells are formatting, not columns.
			for len(header) > 0 && header[len(header)-1] == "" {
				header = header[:len(header)-1]
			}

			if t, err = New("", header); err != nil {
				return nil, err
			}
			continue
		}

		values := make([]string, t.NCols())
		for colID := range values {
			values[colID] = row.Col(colID)
		}

		if err := t.AppendRow(strconv.Itoa(t.NRows()), values); err != nil {
			return nil, err
		}
	}

	if t == nil {
		return nil, fmt.Errorf("Sheet %d of %s is empty", sheetID, path)
	}

	return t, nil
}

// ReadMatrix reads a labeled matrix export: the first column holds the row
// names and the header holds the column names. Surrounding whitespace is
// removed from both.
func ReadMatrix(path string, sep rune, client *storage.Client) (*Table, error) {
	raw, err := ReadFile(path, sep, client)
	if err != nil {
		return nil, err
	}

	if raw.NCols() == 0 {
		return nil, fmt.Errorf("%s has no columns", path)
	}

	t, err := raw.SetIndex(raw.columns[0])
	if err != nil {
		return nil, err
	}

	t.IndexName = strings.TrimSpace(t.IndexName)
	if err := t.Rename(strings.TrimSpace); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return t, nil
}
