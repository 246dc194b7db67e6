// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kanjiprep/internal/merge"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Attach example sentences and meanings to a proto dataset",
	Long: `Merge joins the example table (columns kanji, reading, example,
meaning; comma- or tab-delimited) to the proto dataset on the kanji. Every
matching record gets the table meaning and a single example
{word, reading, sentence}, and loses its legacy exampleSentence. Records
without a table row are written unchanged. When the table lists a kanji
twice, the later row wins.`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg := types.MergeConfig{
		Proto:    dataPath(viper.GetString("merge.proto")),
		Examples: dataPath(viper.GetString("merge.examples")),
		Output:   dataPath(viper.GetString("merge.output")),
	}
	_, err := merge.Run(cfg, logger, cmd.OutOrStdout())
	return err
}

func init() {
	mergeCmd.Flags().String("proto", "kanji_g2_proto.json", "proto dataset to enrich")
	mergeCmd.Flags().String("examples", "kanji_g2_example.csv", "example-sentence table")
	mergeCmd.Flags().String("output", "kanji_g2_completed.json", "merged dataset to write")
	bindFlags(mergeCmd, "merge", "proto", "examples", "output")

	rootCmd.AddCommand(mergeCmd)
}
