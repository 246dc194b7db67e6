// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stages fills in missing stage ids on proto records from the
// kanji pools listed in the stage definitions.
package stages

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

// maxMissingShown caps the ids listed in the summary.
const maxMissingShown = 10

// PoolMap maps every kanji id in a stage pool to its stage id. When an id is
// pooled by several stages the later stage wins.
func PoolMap(stages []types.Stage) map[string]string {
	m := make(map[string]string)
	for _, s := range stages {
		for _, id := range s.KanjiPoolIDList {
			m[id] = s.StageID
		}
	}
	return m
}

// Assign sets StageID on every record that has none and whose id is in
// pools. Records that already carry a stage id are never changed. It
// returns the number of updated records and the ids that had no mapping.
func Assign(records []types.Record, pools map[string]string) (updated int, missing []string) {
	for i := range records {
		if records[i].StageID != "" {
			continue
		}
		stageID, ok := pools[records[i].ID]
		if !ok {
			missing = append(missing, records[i].ID)
			continue
		}
		records[i].StageID = stageID
		updated++
	}
	return updated, missing
}

// Summary holds counts from a stage assignment run.
type Summary struct {
	Updated  int
	Missing  []string
	Written  []string
	Skipped  []int
	PoolSize int
}

// Run assigns stage ids across the grade files in cfg.DataDir. A grade file
// that cannot be loaded is skipped with a warning; a file is rewritten only
// when at least one record changed.
func Run(cfg types.StagesConfig, logger *zap.Logger, w io.Writer) (Summary, error) {
	if err := types.Validate(&cfg); err != nil {
		return Summary{}, err
	}

	stages, err := dataset.LoadStages(cfg.StagesFile)
	if err != nil {
		return Summary{}, err
	}
	pools := PoolMap(stages)
	summary := Summary{PoolSize: len(pools)}
	logger.Debug("built stage pool map", zap.Int("stages", len(stages)), zap.Int("ids", len(pools)))

	for _, grade := range cfg.Grades {
		path := filepath.Join(cfg.DataDir, dataset.ProtoName(grade))
		records, err := dataset.LoadRecords(path)
		if err != nil {
			logger.Warn("skipping grade file", zap.Int("grade", grade), zap.Error(err))
			summary.Skipped = append(summary.Skipped, grade)
			continue
		}

		updated, missing := Assign(records, pools)
		summary.Updated += updated
		summary.Missing = append(summary.Missing, missing...)
		fmt.Fprintf(w, "grade %d: %d stage ids set\n", grade, updated)

		if updated == 0 {
			continue
		}
		if err := dataset.SaveRecords(path, records); err != nil {
			return summary, err
		}
		summary.Written = append(summary.Written, path)
	}

	fmt.Fprintf(w, "updated %d records\n", summary.Updated)
	if n := len(summary.Missing); n > 0 {
		shown := summary.Missing
		if n > maxMissingShown {
			shown = shown[:maxMissingShown]
		}
		fmt.Fprintf(w, "no stage for %d ids: %s", n, strings.Join(shown, ", "))
		if n > maxMissingShown {
			fmt.Fprintf(w, " (and %d more)", n-maxMissingShown)
		}
		fmt.Fprintln(w)
	}
	return summary, nil
}
