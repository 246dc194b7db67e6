// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kanjiprep/internal/export"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a dataset to CSV",
	Long: `Export writes one CSV row per record with the columns
id, kanji, onyomi, kunyomi, meaning, exampleSentence. Readings are joined
with ";". The file starts with a UTF-8 byte-order mark so spreadsheet tools
detect the encoding.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	input := dataPath(viper.GetString("export.input"))
	output := viper.GetString("export.output")
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
	} else {
		output = dataPath(output)
	}
	cfg := types.ExportConfig{Input: input, Output: output}
	_, err := export.Run(cfg, logger, cmd.OutOrStdout())
	return err
}

func init() {
	exportCmd.Flags().String("input", "kanji_g5_proto.json", "dataset to export")
	exportCmd.Flags().String("output", "", "CSV file to write (default: input with a .csv extension)")
	bindFlags(exportCmd, "export", "input", "output")

	rootCmd.AddCommand(exportCmd)
}
