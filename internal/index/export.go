// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kanjiprep/pkg/types"
)

// Entries returns every indexed record, or only those of grade when it is
// non-zero, ordered by grade, source and file position.
func (s *Store) Entries(ctx context.Context, grade int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM records
		 WHERE ? = 0 OR grade = ?
		 ORDER BY grade, source, position`, grade, grade)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Export renders the indexed records of grade (all grades when zero) as a
// JSON or YAML document.
func (s *Store) Export(ctx context.Context, grade int, format types.ReportFormat) ([]byte, error) {
	entries, err := s.Entries(ctx, grade)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}

	switch format {
	case types.ReportJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return buf.Bytes(), nil
	case types.ReportYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q: use json or yaml", format)
	}
}
