// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kanjiprep CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and shared by every subcommand.
var logger = zap.NewNop()

// rootCmd is the base command for the kanjiprep CLI.
var rootCmd = &cobra.Command{
	Use:   "kanjiprep",
	Short: "Prepare the kanji flashcard dataset",
	Long: `kanjiprep prepares the kanji flashcard dataset. Each stage is a
subcommand that reads flat files, transforms them in memory and writes its
output only when the whole transform succeeded:

  generate   build kanji_g{N}_proto.json for grades 2-6 from a template record
  merge      attach example sentences and meanings from the example table
  check      report example sentences that use out-of-grade kanji
  export     flatten a dataset into spreadsheet-friendly CSV

Supporting stages clean, normalize, stages, index and lint maintain the
datasets between those steps. File names are resolved against --data-dir.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kanjiprep.yaml or ~/.config/kanjiprep/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", ".", "directory that relative data file names are resolved against")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kanjiprep")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kanjiprep"))
		}
	}

	viper.SetEnvPrefix("KANJIPREP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dataPath resolves a configured file name against the data directory.
// Absolute paths are returned unchanged.
func dataPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(viper.GetString("data_dir"), name)
}

// bindFlags binds each named flag of cmd to the viper key section.<flag>,
// with dashes in the flag name turned into underscores.
func bindFlags(cmd *cobra.Command, section string, flags ...string) {
	for _, name := range flags {
		key := section + "." + strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
