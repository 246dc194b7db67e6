// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kanjiprep/internal/clean"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <dataset.json>",
	Short: "Strip practice properties from a dataset",
	Long: `Clean removes per-learner properties (by default hasMultipleRead,
correctCount, incorrectCount, accuracy and weakness) from every record and
writes the result next to the input as <name>_cleaned.json. The input file
is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	input := dataPath(args[0])
	output := viper.GetString("clean.output")
	if output == "" {
		output = clean.DerivedPath(input, "cleaned")
	} else {
		output = dataPath(output)
	}
	cfg := types.CleanConfig{
		Input:  input,
		Output: output,
		Fields: viper.GetStringSlice("clean.fields"),
	}
	_, err := clean.Run(cfg, logger, cmd.OutOrStdout())
	return err
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <dataset.json>",
	Short: "Rewrite space-separated readings as arrays",
	Long: `Normalize loads a dataset whose onyomi and kunyomi may still be
space-separated strings ("イン ヒ") and writes it back with array readings
(["イン", "ヒ"]) as <name>_array_readings.json. The input file is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	input := dataPath(args[0])
	output := viper.GetString("normalize.output")
	if output == "" {
		output = clean.DerivedPath(input, "array_readings")
	} else {
		output = dataPath(output)
	}
	_, err := clean.Normalize(types.NormalizeConfig{Input: input, Output: output}, logger, cmd.OutOrStdout())
	return err
}

func init() {
	cleanCmd.Flags().String("output", "", "cleaned dataset to write (default: <name>_cleaned.json)")
	cleanCmd.Flags().StringSlice("fields", clean.DefaultFields, "top-level properties to remove")
	bindFlags(cleanCmd, "clean", "output", "fields")

	normalizeCmd.Flags().String("output", "", "normalized dataset to write (default: <name>_array_readings.json)")
	bindFlags(normalizeCmd, "normalize", "output")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(normalizeCmd)
}
