// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GenerateConfig holds settings for the grade-list generator.
type GenerateConfig struct {
	// Template is the dataset whose first record is copied into every
	// generated record (default "kanji_g1_proto.json").
	Template string `json:"template" yaml:"template" validate:"required"`

	// GradesFile optionally replaces the embedded grade batch.
	GradesFile string `json:"grades_file,omitempty" yaml:"grades_file,omitempty"`

	// Grades restricts generation to these grades; empty means all.
	Grades []int `json:"grades,omitempty" yaml:"grades,omitempty" validate:"dive,min=1,max=6"`

	// OutputDir receives one kanji_g{N}_proto.json per generated grade.
	OutputDir string `json:"output_dir" yaml:"output_dir" validate:"required"`
}

// MergeConfig holds settings for the proto/example merger.
type MergeConfig struct {
	// Proto is the input dataset (default "kanji_g2_proto.json").
	Proto string `json:"proto" yaml:"proto" validate:"required"`

	// Examples is the example-sentence table (default "kanji_g2_example.csv").
	Examples string `json:"examples" yaml:"examples" validate:"required"`

	// Output is the merged dataset (default "kanji_g2_completed.json").
	Output string `json:"output" yaml:"output" validate:"required"`
}

// ReportFormat selects how the grade-level check prints its report.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
	ReportYAML ReportFormat = "yaml"
)

// CheckConfig holds settings for the grade-level checker.
type CheckConfig struct {
	// Examples is the example-sentence table to check.
	Examples string `json:"examples" yaml:"examples" validate:"required"`

	// Denylist lists out-of-grade characters, one per line.
	Denylist string `json:"denylist" yaml:"denylist" validate:"required"`

	// Format is text, json or yaml.
	Format ReportFormat `json:"format" yaml:"format" validate:"oneof=text json yaml"`

	// Strict makes a non-empty report fail the run.
	Strict bool `json:"strict" yaml:"strict"`
}

// ExportConfig holds settings for the JSON-to-CSV exporter.
type ExportConfig struct {
	// Input is the dataset to export (default "kanji_g5_proto.json").
	Input string `json:"input" yaml:"input" validate:"required"`

	// Output is the CSV file (default "kanji_g5_proto.csv").
	Output string `json:"output" yaml:"output" validate:"required"`
}

// CleanConfig holds settings for stripping practice properties.
type CleanConfig struct {
	Input  string `json:"input" yaml:"input" validate:"required"`
	Output string `json:"output" yaml:"output" validate:"required"`

	// Fields lists the top-level keys to remove from every record.
	Fields []string `json:"fields" yaml:"fields" validate:"required,min=1,dive,required"`
}

// NormalizeConfig holds settings for rewriting string readings as arrays.
type NormalizeConfig struct {
	Input  string `json:"input" yaml:"input" validate:"required"`
	Output string `json:"output" yaml:"output" validate:"required"`
}

// StagesConfig holds settings for the stage id assigner.
type StagesConfig struct {
	// StagesFile is the stage definition file (default "stages_proto.json").
	StagesFile string `json:"stages_file" yaml:"stages_file" validate:"required"`

	// DataDir holds the kanji_g{N}_proto.json files to update.
	DataDir string `json:"data_dir" yaml:"data_dir" validate:"required"`

	// Grades lists the grade files to visit (default 1-6).
	Grades []int `json:"grades" yaml:"grades" validate:"required,min=1,dive,min=1,max=6"`
}

// IndexConfig holds settings for the SQLite dataset index.
type IndexConfig struct {
	// DBPath is the SQLite database file (default "<data_dir>/kanji.db").
	DBPath string `json:"db" yaml:"db" validate:"required"`
}
