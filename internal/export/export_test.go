// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/kanjiprep/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestRow(t *testing.T) {
	tests := []struct {
		name string
		rec  types.Record
		want []string
	}{
		{
			name: "multi-valued readings",
			rec: types.Record{
				ID: "g5-001", Kanji: "引",
				Onyomi:  types.Readings{"いん", "びき"},
				Kunyomi: types.Readings{"ひ.く"},
				Meaning: strPtr("pull"),
			},
			want: []string{"g5-001", "引", "いん;びき", "ひ.く", "pull", ""},
		},
		{
			name: "single onyomi, two kunyomi",
			rec: types.Record{
				ID: "g2-001", Kanji: "引",
				Onyomi:  types.Readings{"イン"},
				Kunyomi: types.Readings{"いん", "びき"},
			},
			want: []string{"g2-001", "引", "イン", "いん;びき", "", ""},
		},
		{
			name: "empty onyomi and legacy sentence",
			rec: types.Record{
				ID: "g5-002", Kanji: "羽",
				Kunyomi:         types.Readings{"は", "はね"},
				ExampleSentence: strPtr("鳥の羽。"),
			},
			want: []string{"g5-002", "羽", "", "は;はね", "", "鳥の羽。"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Row(tt.rec))
		})
	}
}

func TestWriteCSV(t *testing.T) {
	records := []types.Record{
		{ID: "g5-001", Kanji: "引", Onyomi: types.Readings{"いん", "びき"}, Meaning: strPtr("pull, draw")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	want := "\ufeff" +
		"id,kanji,onyomi,kunyomi,meaning,exampleSentence\r\n" +
		"g5-001,引,いん;びき,,\"pull, draw\",\r\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, buf.Bytes()[:3])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "\ufeffid,kanji,onyomi,kunyomi,meaning,exampleSentence\r\n", buf.String())
}

func TestWriteCSVParsesBack(t *testing.T) {
	records := []types.Record{
		{ID: "g5-001", Kanji: "引", ExampleSentence: strPtr("「引く」と\n言う。")},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "「引く」と\n言う。", rows[1][5])
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kanji_g5_proto.json")
	output := filepath.Join(dir, "kanji_g5_proto.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		`[{"id":"g5-001","stageId":"kinki_area1","grade":5,"kanji":"圧","onyomi":"アツ","kunyomi":[]}]`), 0o644))

	var out bytes.Buffer
	n, err := Run(types.ExportConfig{Input: input, Output: output}, zap.NewNop(), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, out.String(), "(1 rows)")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "\ufeffid,kanji,onyomi,kunyomi,meaning,exampleSentence\r\ng5-001,圧,アツ,,,\r\n", string(data))
}

func TestRunBadInputWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "kanji_g5_proto.json")
	output := filepath.Join(dir, "kanji_g5_proto.csv")
	require.NoError(t, os.WriteFile(input, []byte(`not json`), 0o644))

	_, err := Run(types.ExportConfig{Input: input, Output: output}, zap.NewNop(), &bytes.Buffer{})
	require.Error(t, err)

	_, statErr := os.Stat(output)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
