// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge attaches example sentences and meanings from the example
// table to the matching proto records.
package merge

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

// Duplicate records a table key that appeared more than once. The row on
// Line replaced the row on ReplacedLine.
type Duplicate struct {
	Kanji        string
	Line         int
	ReplacedLine int
}

// Summary holds counts from a merge.
type Summary struct {
	Matched    int
	Unmatched  int
	Duplicates []Duplicate
}

// Total returns the number of records processed.
func (s Summary) Total() int {
	return s.Matched + s.Unmatched
}

// Index maps each kanji to its table row. When a kanji appears more than
// once the later row wins and the collision is returned.
func Index(rows []types.ExampleRow) (map[string]types.ExampleRow, []Duplicate) {
	byKanji := make(map[string]types.ExampleRow, len(rows))
	var dups []Duplicate
	for _, row := range rows {
		if prev, ok := byKanji[row.Kanji]; ok {
			dups = append(dups, Duplicate{Kanji: row.Kanji, Line: row.Line, ReplacedLine: prev.Line})
		}
		byKanji[row.Kanji] = row
	}
	return byKanji, dups
}

// Merge returns a copy of records where every record whose kanji is in the
// table carries the table meaning, a single example built from the row, and
// no legacy exampleSentence. Other records are copied unchanged. The table
// is authoritative: existing meanings and examples are overwritten.
func Merge(records []types.Record, rows []types.ExampleRow) ([]types.Record, Summary, error) {
	byKanji, dups := Index(rows)
	summary := Summary{Duplicates: dups}

	out := make([]types.Record, len(records))
	for i, rec := range records {
		if rec.Kanji == "" {
			return nil, summary, fmt.Errorf("record %d (id %q): %w", i, rec.ID, types.ErrMissingKanji)
		}
		c := rec.Clone()
		row, ok := byKanji[c.Kanji]
		if !ok {
			summary.Unmatched++
			out[i] = c
			continue
		}
		meaning := row.Meaning
		c.Meaning = &meaning
		c.Examples = []types.Example{{
			Word:     c.Kanji,
			Reading:  row.Reading,
			Sentence: row.Example,
		}}
		if _, err := c.DeleteKey(types.KeyExampleSentence); err != nil {
			return nil, summary, err
		}
		out[i] = c
		summary.Matched++
	}
	return out, summary, nil
}

// Run merges the example table into the proto dataset and writes the result.
func Run(cfg types.MergeConfig, logger *zap.Logger, w io.Writer) (Summary, error) {
	if err := types.Validate(&cfg); err != nil {
		return Summary{}, err
	}

	records, err := dataset.LoadRecords(cfg.Proto)
	if err != nil {
		return Summary{}, err
	}
	table, err := dataset.LoadExampleTable(cfg.Examples)
	if err != nil {
		return Summary{}, err
	}
	if err := table.Require(types.ColumnReading, types.ColumnMeaning); err != nil {
		return Summary{}, fmt.Errorf("example table %s: %w", cfg.Examples, err)
	}

	merged, summary, err := Merge(records, table.Rows)
	if err != nil {
		return summary, err
	}
	for _, d := range summary.Duplicates {
		logger.Warn("duplicate kanji in example table, later row wins",
			zap.String("kanji", d.Kanji),
			zap.Int("line", d.Line),
			zap.Int("replaced_line", d.ReplacedLine))
	}

	if err := dataset.SaveRecords(cfg.Output, merged); err != nil {
		return summary, err
	}
	fmt.Fprintf(w, "merged     %s: %d matched, %d unmatched\n", cfg.Output, summary.Matched, summary.Unmatched)
	return summary, nil
}
