// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

var (
	// ErrMissingKanji is returned when a record has no kanji to join on.
	ErrMissingKanji = errors.New("record has no kanji")

	// ErrMissingColumn is returned when a table lacks a required column.
	ErrMissingColumn = errors.New("missing column")

	// ErrEmptyTemplate is returned when the template dataset holds no records.
	ErrEmptyTemplate = errors.New("template dataset is empty")

	// ErrUnknownGrade is returned when a requested grade is not in the batch.
	ErrUnknownGrade = errors.New("unknown grade")
)
