// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

const practiceJSON = `[
  {"id":"g1-001","stageId":"hokkaido_area1","grade":1,"kanji":"一","onyomi":["イチ"],"kunyomi":["ひと"],"hasMultipleRead":true,"correctCount":3,"incorrectCount":1,"accuracy":0.75,"weakness":false,"hint":"x"},
  {"id":"g1-002","stageId":"hokkaido_area1","grade":1,"kanji":"二","onyomi":["ニ"],"kunyomi":["ふた"]}
]`

func TestDerivedPath(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"kanji_g10_proto.json", "cleaned", "kanji_g10_cleaned.json"},
		{filepath.Join("data", "kanji_g1_proto.json"), "array_readings", filepath.Join("data", "kanji_g1_array_readings.json")},
		{"kanji_g2_completed.json", "cleaned", "kanji_g2_completed_cleaned.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DerivedPath(tt.input, tt.suffix))
	}
}

func TestStrip(t *testing.T) {
	records, err := dataset.DecodeRecords([]byte(practiceJSON))
	require.NoError(t, err)

	cleaned, removed, err := Strip(records, DefaultFields)
	require.NoError(t, err)
	// hasMultipleRead, the three practice statistics and weakness.
	assert.Equal(t, 5, removed)

	data, err := dataset.EncodeRecords(cleaned)
	require.NoError(t, err)
	for _, key := range DefaultFields {
		assert.NotContains(t, string(data), `"`+key+`"`)
	}
	assert.Contains(t, string(data), `"hint": "x"`)

	// The input records still carry their statistics.
	require.NotNil(t, records[0].CorrectCount)
	assert.Equal(t, 3, *records[0].CorrectCount)
}

func TestStripRemovesOnlyNamedStatistic(t *testing.T) {
	records, err := dataset.DecodeRecords([]byte(
		`[{"id":"g1-001","stageId":"s","grade":1,"kanji":"一","onyomi":[],"kunyomi":[],"correctCount":4,"incorrectCount":2,"accuracy":0.6}]`))
	require.NoError(t, err)

	cleaned, removed, err := Strip(records, []string{types.KeyAccuracy})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	got := cleaned[0]
	assert.False(t, got.Has(types.KeyAccuracy))
	require.NotNil(t, got.CorrectCount)
	assert.Equal(t, 4, *got.CorrectCount)
	require.NotNil(t, got.IncorrectCount)
	assert.Equal(t, 2, *got.IncorrectCount)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":"g1-001","stageId":"s","grade":1,"kanji":"一","onyomi":[],"kunyomi":[],"correctCount":4,"incorrectCount":2}`,
		string(data))
}

func TestStripCountsEachPresentKey(t *testing.T) {
	records, err := dataset.DecodeRecords([]byte(
		`[{"id":"g1-001","kanji":"一","correctCount":0},{"id":"g1-002","kanji":"二","accuracy":null}]`))
	require.NoError(t, err)

	_, removed, err := Strip(records, []string{types.KeyCorrectCount, types.KeyIncorrectCount, types.KeyAccuracy})
	require.NoError(t, err)
	assert.Equal(t, 2, removed, "absent keys are not counted")
}

func TestStripRefusesRequiredKeys(t *testing.T) {
	records, err := dataset.DecodeRecords([]byte(practiceJSON))
	require.NoError(t, err)
	_, _, err = Strip(records, []string{"kanji"})
	assert.ErrorContains(t, err, "required")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kanji_g1_proto.json")
	require.NoError(t, os.WriteFile(input, []byte(practiceJSON), 0o644))
	output := DerivedPath(input, "cleaned")

	var buf bytes.Buffer
	removed, err := Run(types.CleanConfig{Input: input, Output: output, Fields: DefaultFields}, zap.NewNop(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 5, removed)
	assert.Contains(t, buf.String(), "kanji_g1_cleaned.json (2 records, 5 properties removed)")

	original, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, practiceJSON, string(original), "input is left untouched")
}

func TestNormalize(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kanji_g1_proto.json")
	require.NoError(t, os.WriteFile(input, []byte(
		`[{"id":"g1-001","stageId":"s","grade":1,"kanji":"一","onyomi":"イチ イツ","kunyomi":"ひと ひと.つ"}]`), 0o644))
	output := DerivedPath(input, "array_readings")

	n, err := Normalize(types.NormalizeConfig{Input: input, Output: output}, zap.NewNop(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	compact := strings.Join(strings.Fields(string(data)), "")
	assert.Contains(t, compact, `"onyomi":["イチ","イツ"]`)
	assert.Contains(t, compact, `"kunyomi":["ひと","ひと.つ"]`)
}

func TestNormalizeKeepsArrayReadingsAndMissingKeys(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kanji_g1_proto.json")
	require.NoError(t, os.WriteFile(input, []byte(
		`[{"id":"g1-001","kanji":"一","onyomi":"イチ","meaning":null}]`), 0o644))
	output := DerivedPath(input, "array_readings")

	_, err := Normalize(types.NormalizeConfig{Input: input, Output: output}, zap.NewNop(), &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	compact := strings.Join(strings.Fields(string(data)), "")
	assert.Equal(t, `[{"id":"g1-001","kanji":"一","onyomi":["イチ"],"meaning":null}]`, compact)
}
