// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kanjiprep/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProtoName(t *testing.T) {
	assert.Equal(t, "kanji_g2_proto.json", ProtoName(2))
	assert.Equal(t, "kanji_g6_proto.json", ProtoName(6))
}

func TestSaveAndLoadRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "kanji_g2_proto.json")
	meaning := "pull & draw"
	records := []types.Record{
		{ID: "g2-001", StageID: "tohoku_area1", Grade: 2, Kanji: "引", Onyomi: types.Readings{"イン"}, Kunyomi: types.Readings{}, Meaning: &meaning},
	}

	require.NoError(t, SaveRecords(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "[\n" +
		"  {\n" +
		"    \"id\": \"g2-001\",\n" +
		"    \"stageId\": \"tohoku_area1\",\n" +
		"    \"grade\": 2,\n" +
		"    \"kanji\": \"引\",\n" +
		"    \"onyomi\": [\n" +
		"      \"イン\"\n" +
		"    ],\n" +
		"    \"kunyomi\": [],\n" +
		"    \"meaning\": \"pull & draw\"\n" +
		"  }\n" +
		"]\n"
	assert.Equal(t, want, string(data))

	loaded, err := LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "pull & draw", loaded[0].MeaningText())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestEncodeRecordsEmpty(t *testing.T) {
	data, err := EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestLoadRecordsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRecords(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.json", `{"id":"g2-001"}`)
	_, err = LoadRecords(bad)
	assert.ErrorContains(t, err, "bad.json")
}

func TestLoadStages(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stages_proto.json",
		`[{"stageId":"tohoku_area1","name":"Tohoku","kanjiPoolIdList":["g2-001","g2-002"]}]`)

	stages, err := LoadStages(path)
	require.NoError(t, err)
	require.Len(t, stages, 1)
	assert.Equal(t, "tohoku_area1", stages[0].StageID)
	assert.Equal(t, []string{"g2-001", "g2-002"}, stages[0].KanjiPoolIDList)
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "high_grade_kanji.txt", "\ufeff校\r\n  \n 学 \n\n")

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"校", "学"}, lines)
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "out.csv", "old")

	require.NoError(t, WriteFileAtomic(path, []byte("new"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFilesAtomic(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", "old a")
	b := filepath.Join(dir, "sub", "b.json")

	require.NoError(t, WriteFilesAtomic([]File{{Path: a, Data: []byte("new a")}, {Path: b, Data: []byte("new b")}}, 0o644))

	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "new a", string(data))
	data, err = os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "new b", string(data))
}

func TestWriteFilesAtomicLeavesTargetsOnFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) string
	}{
		{
			name: "unwritable directory",
			setup: func(t *testing.T, dir string) string {
				blocker := writeFile(t, dir, "blocker", "")
				return filepath.Join(blocker, "b.json")
			},
		},
		{
			name: "directory in place of target",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "b.json")
				require.NoError(t, os.MkdirAll(filepath.Join(path, "x"), 0o755))
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			a := writeFile(t, dir, "a.json", "old a")
			b := tt.setup(t, dir)

			err := WriteFilesAtomic([]File{{Path: a, Data: []byte("new a")}, {Path: b, Data: []byte("new b")}}, 0o644)
			require.Error(t, err)

			data, err := os.ReadFile(a)
			require.NoError(t, err)
			assert.Equal(t, "old a", string(data))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, e := range entries {
				assert.NotContains(t, e.Name(), ".tmp", "temp file left behind")
			}
		})
	}
}
