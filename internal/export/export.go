// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export flattens datasets into spreadsheet-friendly CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

// ReadingSep joins multi-valued readings into one CSV field.
const ReadingSep = ";"

// Header is the fixed CSV header row.
var Header = []string{"id", "kanji", "onyomi", "kunyomi", "meaning", "exampleSentence"}

// Row flattens one record into CSV fields in Header order.
func Row(r types.Record) []string {
	return []string{
		r.ID,
		r.Kanji,
		r.Onyomi.Join(ReadingSep),
		r.Kunyomi.Join(ReadingSep),
		r.MeaningText(),
		r.ExampleSentenceText(),
	}
}

// WriteCSV writes the header and one row per record to w. The stream starts
// with the UTF-8 byte-order mark and rows end in CRLF.
func WriteCSV(w io.Writer, records []types.Record) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("writing row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}

// Run exports cfg.Input to cfg.Output.
func Run(cfg types.ExportConfig, logger *zap.Logger, w io.Writer) (int, error) {
	if err := types.Validate(&cfg); err != nil {
		return 0, err
	}

	records, err := dataset.LoadRecords(cfg.Input)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return 0, fmt.Errorf("encoding CSV: %w", err)
	}
	if err := dataset.WriteFileAtomic(cfg.Output, buf.Bytes(), 0o644); err != nil {
		return 0, err
	}
	logger.Debug("exported", zap.String("input", cfg.Input), zap.Int("bytes", buf.Len()))
	fmt.Fprintf(w, "exported   %s (%d rows)\n", cfg.Output, len(records))
	return len(records), nil
}
