// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package check reports example sentences that use characters taught above
// the target grade.
package check

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

const (
	ngHeader = "Out-of-grade kanji found:"
	allClear = "All clear! No out-of-grade kanji found."
)

// Denylist is the set of characters an example may not contain.
type Denylist map[string]struct{}

// NewDenylist builds a denylist from entries, one character each. Blank
// entries are ignored.
func NewDenylist(entries []string) Denylist {
	d := make(Denylist, len(entries))
	for _, e := range entries {
		if e != "" {
			d[e] = struct{}{}
		}
	}
	return d
}

// Contains reports whether ch is denied.
func (d Denylist) Contains(ch string) bool {
	_, ok := d[ch]
	return ok
}

// Offending returns the denied characters of s in order of first use.
func (d Denylist) Offending(s string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, r := range s {
		ch := string(r)
		if d.Contains(ch) && !seen[ch] {
			seen[ch] = true
			found = append(found, ch)
		}
	}
	return found
}

// Finding is a table row whose example uses a denied character.
type Finding struct {
	Kanji     string   `json:"kanji" yaml:"kanji"`
	Example   string   `json:"example" yaml:"example"`
	Offending []string `json:"offending" yaml:"offending"`
	Line      int      `json:"line" yaml:"line"`
}

// Report is the outcome of a grade-level check.
type Report struct {
	Checked  int       `json:"checked" yaml:"checked"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Clear reports whether no row failed.
func (r Report) Clear() bool {
	return len(r.Findings) == 0
}

// Check tests every row's example against the denylist. An empty example
// passes.
func Check(deny Denylist, rows []types.ExampleRow) Report {
	report := Report{Checked: len(rows), Findings: []Finding{}}
	for _, row := range rows {
		bad := deny.Offending(row.Example)
		if len(bad) == 0 {
			continue
		}
		report.Findings = append(report.Findings, Finding{
			Kanji:     row.Kanji,
			Example:   row.Example,
			Offending: bad,
			Line:      row.Line,
		})
	}
	return report
}

// WriteText prints the failing rows as "kanji: example", or the all-clear
// line when there are none.
func (r Report) WriteText(w io.Writer) error {
	if r.Clear() {
		_, err := fmt.Fprintln(w, allClear)
		return err
	}
	if _, err := fmt.Fprintln(w, ngHeader); err != nil {
		return err
	}
	for _, f := range r.Findings {
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Kanji, f.Example); err != nil {
			return err
		}
	}
	return nil
}

// Write prints the report in the given format.
func (r Report) Write(w io.Writer, format types.ReportFormat) error {
	switch format {
	case types.ReportText, "":
		return r.WriteText(w)
	case types.ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case types.ReportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format %q: use text, json or yaml", format)
	}
}

// Run loads the table and denylist, checks every row and prints the report.
// The returned report is never an error by itself; callers decide whether
// findings fail the run.
func Run(cfg types.CheckConfig, logger *zap.Logger, w io.Writer) (Report, error) {
	if cfg.Format == "" {
		cfg.Format = types.ReportText
	}
	if err := types.Validate(&cfg); err != nil {
		return Report{}, err
	}

	table, err := dataset.LoadExampleTable(cfg.Examples)
	if err != nil {
		return Report{}, err
	}
	lines, err := dataset.ReadLines(cfg.Denylist)
	if err != nil {
		return Report{}, err
	}
	deny := NewDenylist(lines)
	logger.Debug("loaded denylist", zap.String("path", cfg.Denylist), zap.Int("characters", len(deny)))

	report := Check(deny, table.Rows)
	if err := report.Write(w, cfg.Format); err != nil {
		return report, fmt.Errorf("writing report: %w", err)
	}
	return report, nil
}
