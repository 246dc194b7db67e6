// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads and writes the flat files the kanjiprep stages
// exchange: JSON arrays of records, the example-sentence table, line lists
// and the stage definitions. Writers never leave a partial file behind.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/kanjiprep/pkg/types"
)

// ProtoName returns the proto dataset file name for a grade.
func ProtoName(grade int) string {
	return fmt.Sprintf("kanji_g%d_proto.json", grade)
}

// LoadRecords reads a JSON array of records from path.
func LoadRecords(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return records, nil
}

// DecodeRecords parses a JSON array of records.
func DecodeRecords(data []byte) ([]types.Record, error) {
	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EncodeRecords renders records as a 2-space indented JSON array with
// non-ASCII characters written literally and no byte-order mark.
func EncodeRecords(records []types.Record) ([]byte, error) {
	if records == nil {
		records = []types.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveRecords writes records to path atomically.
func SaveRecords(path string, records []types.Record) error {
	data, err := EncodeRecords(records)
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return WriteFileAtomic(path, data, 0o644)
}

// LoadStages reads the stage definitions from a JSON array.
func LoadStages(path string) ([]types.Stage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stages: %w", err)
	}
	var stages []types.Stage
	if err := json.Unmarshal(data, &stages); err != nil {
		return nil, fmt.Errorf("parsing stages %s: %w", path, err)
	}
	return stages, nil
}

// ReadLines returns the trimmed, non-blank lines of a text file.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers see either the old file or the complete new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpName, err := writeTemp(path, data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// File is one entry of a WriteFilesAtomic batch.
type File struct {
	Path string
	Data []byte
}

// WriteFilesAtomic writes every file of a batch to a temp file first and
// renames them into place only once all writes succeeded. A failed write, or
// a target that is a directory, leaves every target untouched. A rename that
// still fails stops the batch: files renamed before it keep their new content
// and the rest keep the old.
func WriteFilesAtomic(files []File, perm os.FileMode) error {
	tmpNames := make([]string, 0, len(files))
	removeTemps := func(from int) {
		for _, name := range tmpNames[from:] {
			os.Remove(name)
		}
	}
	for _, f := range files {
		name, err := writeTemp(f.Path, f.Data, perm)
		if err != nil {
			removeTemps(0)
			return err
		}
		tmpNames = append(tmpNames, name)
	}
	for _, f := range files {
		if fi, err := os.Stat(f.Path); err == nil && fi.IsDir() {
			removeTemps(0)
			return fmt.Errorf("%s is a directory", f.Path)
		}
	}
	for i, f := range files {
		if err := os.Rename(tmpNames[i], f.Path); err != nil {
			removeTemps(i)
			return fmt.Errorf("renaming into %s after %d of %d files: %w", f.Path, i, len(files), err)
		}
	}
	return nil
}

// writeTemp writes data to a new temp file next to path and returns its name.
func writeTemp(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("setting mode on %s: %w", path, err)
	}
	return tmpName, nil
}
