// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kanjiprep/pkg/types"
)

func TestReadExampleTable(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		columns []string
		want    []types.ExampleRow
	}{
		{
			name:    "comma delimited",
			input:   "kanji,reading,example,meaning\n引,いん,線を引く。,pull\n羽,はね,鳥の羽。,feather\n",
			columns: []string{"kanji", "reading", "example", "meaning"},
			want: []types.ExampleRow{
				{Kanji: "引", Reading: "いん", Example: "線を引く。", Meaning: "pull", Line: 2},
				{Kanji: "羽", Reading: "はね", Example: "鳥の羽。", Meaning: "feather", Line: 3},
			},
		},
		{
			name:    "tab delimited with commas in the sentence",
			input:   "kanji\texample\n雲\t白い雲、青い空。\n",
			columns: []string{"kanji", "example"},
			want: []types.ExampleRow{
				{Kanji: "雲", Example: "白い雲、青い空。", Line: 2},
			},
		},
		{
			name:    "byte-order mark and CRLF",
			input:   "\ufeffkanji,example\r\n校,学校に行く。\r\n",
			columns: []string{"kanji", "example"},
			want: []types.ExampleRow{
				{Kanji: "校", Example: "学校に行く。", Line: 2},
			},
		},
		{
			name:    "quoted field with comma",
			input:   "kanji,example\n引,\"線を引く, と書く。\"\n",
			columns: []string{"kanji", "example"},
			want: []types.ExampleRow{
				{Kanji: "引", Example: "線を引く, と書く。", Line: 2},
			},
		},
		{
			name:    "short and long rows",
			input:   "kanji,reading,example,meaning\n引,いん\n羽,はね,鳥の羽。,feather,extra\n",
			columns: []string{"kanji", "reading", "example", "meaning"},
			want: []types.ExampleRow{
				{Kanji: "引", Reading: "いん", Line: 2},
				{Kanji: "羽", Reading: "はね", Example: "鳥の羽。", Meaning: "feather", Line: 3},
			},
		},
		{
			name:    "header names are trimmed",
			input:   " kanji , example \n引,a\n",
			columns: []string{"kanji", "example"},
			want: []types.ExampleRow{
				{Kanji: "引", Example: "a", Line: 2},
			},
		},
		{
			name:    "header only",
			input:   "kanji,example\n",
			columns: []string{"kanji", "example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadExampleTable(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.columns, table.Columns)
			assert.Equal(t, tt.want, table.Rows)
		})
	}
}

func TestReadExampleTableMissingColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no example column", "kanji,reading\n引,いん\n"},
		{"no kanji column", "word,example\n引,a\n"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadExampleTable(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, types.ErrMissingColumn)
		})
	}
}

func TestExampleTableRequire(t *testing.T) {
	table, err := ReadExampleTable(strings.NewReader("kanji,example\n引,a\n"))
	require.NoError(t, err)

	assert.True(t, table.HasColumn("kanji"))
	assert.False(t, table.HasColumn("meaning"))
	assert.NoError(t, table.Require("kanji", "example"))

	err = table.Require("reading", "meaning")
	require.ErrorIs(t, err, types.ErrMissingColumn)
	assert.Contains(t, err.Error(), `"reading"`)
}

func TestLoadExampleTableMissingFile(t *testing.T) {
	_, err := LoadExampleTable(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
