// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate builds the per-grade proto datasets from a template
// record and the embedded grade character lists.
package generate

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"unicode"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

//go:embed grades.yaml
var defaultGrades []byte

// GradeSpec describes one grade of a generation batch.
type GradeSpec struct {
	// Grade is stamped on every generated record.
	Grade int `yaml:"grade" validate:"min=1,max=6"`

	// Prefix starts every id, e.g. "g2" gives "g2-001".
	Prefix string `yaml:"prefix" validate:"required"`

	// StageID is stamped on every generated record.
	StageID string `yaml:"stage_id" validate:"required"`

	// Kanji lists the grade's characters in id order. Whitespace is ignored.
	Kanji string `yaml:"kanji" validate:"required"`
}

// Characters splits Kanji into single-character strings, skipping whitespace.
func (g GradeSpec) Characters() []string {
	chars := make([]string, 0, len(g.Kanji)/3)
	for _, r := range g.Kanji {
		if unicode.IsSpace(r) {
			continue
		}
		chars = append(chars, string(r))
	}
	return chars
}

// Batch is the set of grades generated in one run.
type Batch struct {
	Grades []GradeSpec `yaml:"grades" validate:"required,min=1,dive"`
}

// DefaultBatch returns the embedded grade 2-6 batch.
func DefaultBatch() (Batch, error) {
	return ParseBatch(defaultGrades)
}

// LoadBatch reads a batch definition from a YAML file.
func LoadBatch(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Batch{}, fmt.Errorf("reading grades file: %w", err)
	}
	b, err := ParseBatch(data)
	if err != nil {
		return Batch{}, fmt.Errorf("parsing grades file %s: %w", path, err)
	}
	return b, nil
}

// ParseBatch decodes and validates a YAML batch definition.
func ParseBatch(data []byte) (Batch, error) {
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Batch{}, err
	}
	if err := types.Validate(&b); err != nil {
		return Batch{}, err
	}
	return b, nil
}

// Select returns the specs for the requested grades in batch order, or the
// whole batch when grades is empty.
func (b Batch) Select(grades []int) ([]GradeSpec, error) {
	if len(grades) == 0 {
		return b.Grades, nil
	}
	want := make(map[int]bool, len(grades))
	for _, g := range grades {
		want[g] = true
	}
	var out []GradeSpec
	for _, spec := range b.Grades {
		if want[spec.Grade] {
			out = append(out, spec)
			delete(want, spec.Grade)
		}
	}
	if len(want) > 0 {
		missing := make([]int, 0, len(want))
		for g := range want {
			missing = append(missing, g)
		}
		sort.Ints(missing)
		return nil, fmt.Errorf("%w: %v", types.ErrUnknownGrade, missing)
	}
	return out, nil
}

// Build returns one record per character. Record i is a deep copy of
// template with the id, stage, grade, kanji and practice statistics
// replaced; every other field is kept.
func Build(template types.Record, chars []string, grade int, stageID, prefix string) []types.Record {
	out := make([]types.Record, 0, len(chars))
	for i, ch := range chars {
		r := template.Clone()
		r.ID = fmt.Sprintf("%s-%03d", prefix, i+1)
		r.StageID = stageID
		r.Grade = grade
		r.Kanji = ch
		r.ResetStats()
		out = append(out, r)
	}
	return out
}

// GradeResult records what was written for one grade.
type GradeResult struct {
	Grade   int
	Path    string
	Records int
}

// Run loads the template, builds every selected grade in memory and then
// writes one proto file per grade into cfg.OutputDir as a single batch: no
// file is replaced unless every grade was written.
func Run(cfg types.GenerateConfig, logger *zap.Logger, w io.Writer) ([]GradeResult, error) {
	if err := types.Validate(&cfg); err != nil {
		return nil, err
	}

	template, err := loadTemplate(cfg.Template)
	if err != nil {
		return nil, err
	}

	batch, err := DefaultBatch()
	if cfg.GradesFile != "" {
		batch, err = LoadBatch(cfg.GradesFile)
	}
	if err != nil {
		return nil, err
	}
	specs, err := batch.Select(cfg.Grades)
	if err != nil {
		return nil, err
	}

	built := make([][]types.Record, len(specs))
	for i, spec := range specs {
		built[i] = Build(template, spec.Characters(), spec.Grade, spec.StageID, spec.Prefix)
		logger.Debug("built grade",
			zap.Int("grade", spec.Grade),
			zap.String("stage_id", spec.StageID),
			zap.Int("records", len(built[i])))
	}

	files := make([]dataset.File, len(specs))
	results := make([]GradeResult, len(specs))
	for i, spec := range specs {
		path := filepath.Join(cfg.OutputDir, dataset.ProtoName(spec.Grade))
		data, err := dataset.EncodeRecords(built[i])
		if err != nil {
			return nil, fmt.Errorf("encoding grade %d: %w", spec.Grade, err)
		}
		files[i] = dataset.File{Path: path, Data: data}
		results[i] = GradeResult{Grade: spec.Grade, Path: path, Records: len(built[i])}
	}
	if err := dataset.WriteFilesAtomic(files, 0o644); err != nil {
		return nil, err
	}
	for _, r := range results {
		fmt.Fprintf(w, "generated  %s (%d records)\n", r.Path, r.Records)
	}
	return results, nil
}

// loadTemplate returns the first record of the template dataset.
func loadTemplate(path string) (types.Record, error) {
	records, err := dataset.LoadRecords(path)
	if err != nil {
		return types.Record{}, fmt.Errorf("loading template: %w", err)
	}
	if len(records) == 0 {
		return types.Record{}, fmt.Errorf("%s: %w", path, types.ErrEmptyTemplate)
	}
	if err := types.Validate(&records[0]); err != nil {
		return types.Record{}, fmt.Errorf("template %s: %w", path, err)
	}
	return records[0], nil
}
