// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kanjiprep/internal/stages"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Fill in missing stage ids from the stage kanji pools",
	Long: `Stages reads stages_proto.json, maps every kanji id listed in a stage's
kanjiPoolIdList to that stage, and sets stageId on each record of
kanji_g{N}_proto.json that has none. Records that already carry a stage id
are left alone. A grade file is rewritten only when something changed; ids
with no stage are listed in the summary.`,
	Args: cobra.NoArgs,
	RunE: runStages,
}

func runStages(cmd *cobra.Command, args []string) error {
	cfg := types.StagesConfig{
		StagesFile: dataPath(viper.GetString("stages.stages_file")),
		DataDir:    viper.GetString("data_dir"),
		Grades:     viper.GetIntSlice("stages.grade"),
	}
	_, err := stages.Run(cfg, logger, cmd.OutOrStdout())
	return err
}

func init() {
	stagesCmd.Flags().String("stages-file", "stages_proto.json", "stage definitions")
	stagesCmd.Flags().IntSlice("grade", []int{1, 2, 3, 4, 5, 6}, "grade files to update")
	bindFlags(stagesCmd, "stages", "stages-file", "grade")

	rootCmd.AddCommand(stagesCmd)
}
