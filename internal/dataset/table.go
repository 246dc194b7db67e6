// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/kanjiprep/pkg/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExampleTable is the parsed example-sentence table.
type ExampleTable struct {
	// Columns lists the header names in file order.
	Columns []string

	// Rows holds the data rows in file order.
	Rows []types.ExampleRow
}

// HasColumn reports whether the header contains name.
func (t *ExampleTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Require returns an error wrapping types.ErrMissingColumn for the first
// name absent from the header.
func (t *ExampleTable) Require(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return fmt.Errorf("%w %q (have %s)", types.ErrMissingColumn, name, strings.Join(t.Columns, ", "))
		}
	}
	return nil
}

// LoadExampleTable reads the example-sentence table at path. The kanji and
// example columns are always required.
func LoadExampleTable(path string) (*ExampleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening example table: %w", err)
	}
	defer f.Close()

	t, err := ReadExampleTable(f)
	if err != nil {
		return nil, fmt.Errorf("parsing example table %s: %w", path, err)
	}
	return t, nil
}

// ReadExampleTable parses a comma- or tab-delimited table with a header row.
// The delimiter is taken from the header line; a leading byte-order mark is
// ignored.
func ReadExampleTable(r io.Reader) (*ExampleTable, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.LazyQuotes = true
	// Rows may be ragged; a missing trailing cell reads as empty.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: table has no header row", types.ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}

	t := &ExampleTable{Columns: make([]string, len(header))}
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		t.Columns[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	if err := t.Require(types.ColumnKanji, types.ColumnExample); err != nil {
		return nil, err
	}

	cell := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		t.Rows = append(t.Rows, types.ExampleRow{
			Kanji:   cell(record, types.ColumnKanji),
			Reading: cell(record, types.ColumnReading),
			Example: cell(record, types.ColumnExample),
			Meaning: cell(record, types.ColumnMeaning),
			Line:    line,
		})
	}
	return t, nil
}

// detectDelimiter picks tab when the header line holds a tab and no comma.
func detectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.IndexByte(header, '\t') >= 0 && bytes.IndexByte(header, ',') < 0 {
		return '\t'
	}
	return ','
}
