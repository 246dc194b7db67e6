// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Example-table column names.
const (
	ColumnKanji   = "kanji"
	ColumnReading = "reading"
	ColumnExample = "example"
	ColumnMeaning = "meaning"
)

// ExampleRow is one row of the example-sentence table (kanji_g{N}_example.csv).
type ExampleRow struct {
	// Kanji is the join key against Record.Kanji.
	Kanji string `json:"kanji" yaml:"kanji"`

	// Reading is the kana reading used in the example.
	Reading string `json:"reading" yaml:"reading"`

	// Example is the example sentence text.
	Example string `json:"example" yaml:"example"`

	// Meaning is a short gloss of the kanji.
	Meaning string `json:"meaning" yaml:"meaning"`

	// Line is the 1-based line number in the source file, header included.
	Line int `json:"-" yaml:"-"`
}

// Stage is one entry of stages_proto.json. Only the fields the stage
// assigner reads are decoded.
type Stage struct {
	StageID         string   `json:"stageId" yaml:"stage_id"`
	KanjiPoolIDList []string `json:"kanjiPoolIdList" yaml:"kanji_pool_id_list"`
}
