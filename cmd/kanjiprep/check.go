// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kanjiprep/internal/check"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report example sentences that use out-of-grade kanji",
	Long: `Check reads the example table and a denylist of characters taught
above the target grade (one per line) and prints every row whose example
sentence contains a denied character as "kanji: example", or an all-clear
line. Findings are a report, not an error, unless --strict is set.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := types.CheckConfig{
		Examples: dataPath(viper.GetString("check.examples")),
		Denylist: dataPath(viper.GetString("check.denylist")),
		Format:   types.ReportFormat(viper.GetString("check.format")),
		Strict:   viper.GetBool("check.strict"),
	}
	report, err := check.Run(cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if cfg.Strict && !report.Clear() {
		return fmt.Errorf("%d example(s) use out-of-grade kanji", len(report.Findings))
	}
	return nil
}

func init() {
	checkCmd.Flags().String("examples", "kanji_g2_example.csv", "example-sentence table to check")
	checkCmd.Flags().String("denylist", "high_grade_kanji.txt", "out-of-grade characters, one per line")
	checkCmd.Flags().String("format", "text", "report format: text, json or yaml")
	checkCmd.Flags().Bool("strict", false, "exit non-zero when any example fails")
	bindFlags(checkCmd, "check", "examples", "denylist", "format", "strict")

	rootCmd.AddCommand(checkCmd)
}
