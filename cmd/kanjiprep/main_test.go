// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestPipeline(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("kanji_g1_proto.json",
		`[{"id":"g1-001","stageId":"hokkaido_area1","grade":1,"kanji":"一","onyomi":["イチ"],"kunyomi":["ひと"],"correctCount":4,"incorrectCount":0,"accuracy":1}]`)
	write("kanji_g2_example.csv",
		"kanji,reading,example,meaning\n引,いん,線を引く。,pull\n羽,はね,学校の鳥の羽。,feather\n")
	write("high_grade_kanji.txt", "校\n")

	out, err := execute(t, "--data-dir", dir, "generate", "--grade", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "kanji_g2_proto.json (160 records)")

	out, err = execute(t, "--data-dir", dir, "merge")
	require.NoError(t, err)
	assert.Contains(t, out, "2 matched, 158 unmatched")

	out, err = execute(t, "--data-dir", dir, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "羽: 学校の鳥の羽。")

	_, err = execute(t, "--data-dir", dir, "check", "--strict")
	assert.ErrorContains(t, err, "1 example(s) use out-of-grade kanji")

	out, err = execute(t, "--data-dir", dir, "export", "--input", "kanji_g2_completed.json")
	require.NoError(t, err)
	assert.Contains(t, out, "(160 rows)")
	csvData, err := os.ReadFile(filepath.Join(dir, "kanji_g2_completed.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "g2-001,引,イチ,ひと,pull,\r\n")

	out, err = execute(t, "--data-dir", dir, "lint", "kanji_g2_completed.json")
	require.NoError(t, err)
	assert.Contains(t, out, "ok ")

	_, err = execute(t, "--data-dir", dir, "index", "build")
	require.NoError(t, err)
	out, err = execute(t, "--data-dir", dir, "index", "lookup", "引")
	require.NoError(t, err)
	assert.Contains(t, out, "kanji_g2_completed.json")
	assert.Contains(t, out, "線を引く。")
}

func TestDataPath(t *testing.T) {
	_, err := execute(t, "--data-dir", "/srv/data", "version")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/srv/data", "a.json"), dataPath("a.json"))
	assert.Equal(t, "/abs/a.json", dataPath("/abs/a.json"))
	assert.Equal(t, "", dataPath(""))
}
