// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kanjiprep/internal/schema"
)

var lintCmd = &cobra.Command{
	Use:   "lint <dataset.json>...",
	Short: "Validate datasets against the record schema",
	Long: `Lint checks each dataset file against the JSON Schema for an array of
kanji records (required id, grade, kanji and array readings; single-character
kanji; grade 1-6) and prints every violation with its field path.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	invalid := 0
	for _, arg := range args {
		path := dataPath(arg)
		err := schema.ValidateFile(path)
		var ve *schema.ValidationError
		switch {
		case err == nil:
			fmt.Fprintf(out, "ok       %s\n", path)
		case errors.As(err, &ve):
			invalid++
			fmt.Fprintf(out, "invalid  %s\n", path)
			for _, fe := range ve.Errors {
				fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
			}
		default:
			return err
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", invalid, len(args))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
