// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		v       any
		wantErr []string
	}{
		{
			name: "valid record",
			v:    &Record{ID: "g2-001", Grade: 2, Kanji: "引"},
		},
		{
			name:    "record missing id and kanji",
			v:       &Record{Grade: 2},
			wantErr: []string{"Record.ID: failed required", "Record.Kanji: failed required"},
		},
		{
			name:    "record grade out of range",
			v:       &Record{ID: "g7-001", Grade: 7, Kanji: "引"},
			wantErr: []string{"Record.Grade: failed max=6"},
		},
		{
			name:    "unknown report format",
			v:       &CheckConfig{Examples: "e.csv", Denylist: "d.txt", Format: "xml"},
			wantErr: []string{"CheckConfig.Format: failed oneof=text json yaml"},
		},
		{
			name:    "generate grade out of range",
			v:       &GenerateConfig{Template: "t.json", OutputDir: ".", Grades: []int{2, 9}},
			wantErr: []string{"GenerateConfig.Grades[1]: failed max=6"},
		},
		{
			name:    "clean needs at least one field",
			v:       &CleanConfig{Input: "in.json", Output: "out.json"},
			wantErr: []string{"CleanConfig.Fields: failed required"},
		},
		{
			name: "generate with all grades",
			v:    &GenerateConfig{Template: "t.json", OutputDir: "."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.v)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
