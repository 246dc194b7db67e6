// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kanjiprep/internal/generate"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build per-grade proto datasets from a template record",
	Long: `Generate copies the first record of the template dataset once per
kanji of each grade, stamping a sequential id (g2-001, g2-002, ...), the
grade's stage id and the kanji, and resetting the practice statistics. One
kanji_g{N}_proto.json is written per grade.

The grade 2-6 character lists are built in; --grades-file replaces them with
a YAML file of the same shape and --grade restricts the run to some grades.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	outputDir := viper.GetString("generate.output_dir")
	if outputDir == "" {
		outputDir = viper.GetString("data_dir")
	}
	cfg := types.GenerateConfig{
		Template:   dataPath(viper.GetString("generate.template")),
		GradesFile: dataPath(viper.GetString("generate.grades_file")),
		Grades:     viper.GetIntSlice("generate.grade"),
		OutputDir:  outputDir,
	}
	_, err := generate.Run(cfg, logger, cmd.OutOrStdout())
	return err
}

func init() {
	generateCmd.Flags().String("template", "kanji_g1_proto.json", "dataset whose first record is the template")
	generateCmd.Flags().String("grades-file", "", "YAML grade batch replacing the built-in grade 2-6 lists")
	generateCmd.Flags().IntSlice("grade", nil, "grades to generate (default: every grade in the batch)")
	generateCmd.Flags().String("output-dir", "", "directory for the proto files (default: --data-dir)")
	bindFlags(generateCmd, "generate", "template", "grades-file", "grade", "output-dir")

	rootCmd.AddCommand(generateCmd)
}
