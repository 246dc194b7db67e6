// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean strips practice and runtime properties from datasets, and
// rewrites legacy string readings as arrays.
package clean

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

// DefaultFields are the properties removed when no list is configured.
var DefaultFields = []string{
	"hasMultipleRead",
	types.KeyCorrectCount,
	types.KeyIncorrectCount,
	types.KeyAccuracy,
	"weakness",
}

// Strip returns copies of records with the named top-level keys removed,
// and how many keys were actually removed.
func Strip(records []types.Record, fields []string) ([]types.Record, int, error) {
	out := make([]types.Record, len(records))
	removed := 0
	for i, rec := range records {
		c := rec.Clone()
		for _, f := range fields {
			had, err := c.DeleteKey(f)
			if err != nil {
				return nil, 0, err
			}
			if had {
				removed++
			}
		}
		out[i] = c
	}
	return out, removed, nil
}

// DerivedPath replaces a trailing "_proto.json" (or ".json") in input with
// "_<suffix>.json": kanji_g10_proto.json -> kanji_g10_cleaned.json.
func DerivedPath(input, suffix string) string {
	dir, base := filepath.Split(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.TrimSuffix(stem, "_proto")
	return filepath.Join(dir, stem+"_"+suffix+".json")
}

// Run strips cfg.Fields from every record of cfg.Input and writes cfg.Output.
// The input file is left untouched.
func Run(cfg types.CleanConfig, logger *zap.Logger, w io.Writer) (int, error) {
	if err := types.Validate(&cfg); err != nil {
		return 0, err
	}
	records, err := dataset.LoadRecords(cfg.Input)
	if err != nil {
		return 0, err
	}
	cleaned, removed, err := Strip(records, cfg.Fields)
	if err != nil {
		return 0, err
	}
	if err := dataset.SaveRecords(cfg.Output, cleaned); err != nil {
		return 0, err
	}
	logger.Debug("stripped fields", zap.Strings("fields", cfg.Fields), zap.Int("removed", removed))
	fmt.Fprintf(w, "cleaned    %s (%d records, %d properties removed)\n", cfg.Output, len(cleaned), removed)
	return removed, nil
}

// Normalize loads cfg.Input, whose readings may be space-separated strings,
// and writes it back with array readings to cfg.Output.
func Normalize(cfg types.NormalizeConfig, logger *zap.Logger, w io.Writer) (int, error) {
	if err := types.Validate(&cfg); err != nil {
		return 0, err
	}
	records, err := dataset.LoadRecords(cfg.Input)
	if err != nil {
		return 0, err
	}
	converted := 0
	for i := range records {
		if records[i].NormalizeReadings() {
			converted++
		}
	}
	if err := dataset.SaveRecords(cfg.Output, records); err != nil {
		return 0, err
	}
	logger.Debug("normalized readings", zap.String("input", cfg.Input),
		zap.Int("records", len(records)), zap.Int("converted", converted))
	fmt.Fprintf(w, "normalized %s (%d records)\n", cfg.Output, len(records))
	return len(records), nil
}
