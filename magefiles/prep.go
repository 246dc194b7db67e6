// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Prep runs the dataset pipeline in data/: generate, merge, check and export.
// The check step is strict, so the export only runs on a clean example table.
func Prep() error {
	mg.Deps(Build, Init)

	bin := filepath.Join(binDir, binName)
	run := func(args ...string) error {
		return sh.RunV(bin, append([]string{"--data-dir", dataDir}, args...)...)
	}

	steps := [][]string{
		{"generate"},
		{"merge"},
		{"check", "--strict"},
		{"export", "--input", "kanji_g2_completed.json"},
	}
	for _, step := range steps {
		if err := run(step...); err != nil {
			return err
		}
	}
	return nil
}
