// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kanjiprep/internal/dataset"
	"github.com/pdiddy/kanjiprep/internal/index"
	"github.com/pdiddy/kanjiprep/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite index of the datasets (build, lookup, search, dups, stats, export)",
	Long: `Index keeps a local SQLite database of every indexed dataset so a kanji
can be looked up across grades and kanji listed under more than one grade
can be found. Use subcommands to build the index or query it.`,
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build [dataset.json...]",
	Short: "Ingest dataset files into the index",
	Long: `Build ingests the given dataset files, or every kanji_g*_proto.json and
kanji_g*_completed.json in --data-dir when none are given. Each file replaces
the rows previously ingested from it; unchanged files are skipped.`,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	paths := make([]string, 0, len(args))
	for _, a := range args {
		paths = append(paths, dataPath(a))
	}
	if len(paths) == 0 {
		var err error
		paths, err = defaultIndexSources(viper.GetString("data_dir"))
		if err != nil {
			return err
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no dataset files to index in %s", viper.GetString("data_dir"))
	}

	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), paths, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

func defaultIndexSources(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"kanji_g*_proto.json", "kanji_g*_completed.json"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// --- lookup subcommand ---

var indexLookupCmd = &cobra.Command{
	Use:   "lookup <kanji>",
	Short: "Show every indexed record for a kanji",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexLookup,
}

func runIndexLookup(cmd *cobra.Command, args []string) error {
	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Lookup(context.Background(), args[0])
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatEntries(cmd.OutOrStdout(), entries, jsonOutput)
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find records whose meaning or example sentence contains text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatEntries(cmd.OutOrStdout(), entries, jsonOutput)
}

// --- dups subcommand ---

var indexDupsCmd = &cobra.Command{
	Use:   "dups",
	Short: "List kanji indexed under more than one grade",
	Args:  cobra.NoArgs,
	RunE:  runIndexDups,
}

func runIndexDups(cmd *cobra.Command, args []string) error {
	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	dups, err := store.Duplicates(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return encodeJSON(out, dups)
	}
	if len(dups) == 0 {
		fmt.Fprintln(out, "No cross-grade duplicates.")
		return nil
	}
	for _, d := range dups {
		grades := make([]string, len(d.Grades))
		for i, g := range d.Grades {
			grades[i] = fmt.Sprint(g)
		}
		fmt.Fprintf(out, "%s  grades %s\n", d.Kanji, strings.Join(grades, ", "))
	}
	fmt.Fprintf(out, "\n%d duplicated kanji\n", len(dups))
	return nil
}

// --- stats subcommand ---

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the number of distinct kanji indexed per grade",
	Args:  cobra.NoArgs,
	RunE:  runIndexStats,
}

func runIndexStats(cmd *cobra.Command, args []string) error {
	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.GradeCounts(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return encodeJSON(out, counts)
	}
	total := 0
	fmt.Fprintf(out, "%-5s  %s\n", "Grade", "Kanji")
	for _, c := range counts {
		fmt.Fprintf(out, "%-5d  %d\n", c.Grade, c.Kanji)
		total += c.Kanji
	}
	fmt.Fprintf(out, "\n%d kanji across %d grade(s)\n", total, len(counts))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the indexed records as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	grade, _ := cmd.Flags().GetInt("grade")
	output, _ := cmd.Flags().GetString("output")

	store, err := openIndex()
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := store.Export(context.Background(), grade, types.ReportFormat(format))
	if err != nil {
		return err
	}
	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	path := dataPath(output)
	if err := dataset.WriteFileAtomic(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported   %s\n", path)
	return nil
}

// --- shared helpers ---

func openIndex() (*index.Store, error) {
	return index.NewStore(types.IndexConfig{DBPath: dataPath(viper.GetString("index.db"))})
}

func formatEntries(out io.Writer, entries []index.Entry, jsonOutput bool) error {
	if jsonOutput {
		return encodeJSON(out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	fmt.Fprintf(out, "%-8s  %-5s  %-4s  %-16s  %-16s  %-20s  %s\n",
		"ID", "Grade", "Kanji", "Onyomi", "Kunyomi", "Meaning", "Source")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, e := range entries {
		fmt.Fprintf(out, "%-8s  %-5d  %-4s  %-16s  %-16s  %-20s  %s\n",
			e.ID, e.Grade, e.Kanji,
			truncate(strings.Join(e.Onyomi, ";"), 16),
			truncate(strings.Join(e.Kunyomi, ";"), 16),
			truncate(e.Meaning, 20),
			filepath.Base(e.Source))
		if e.Example != nil {
			fmt.Fprintf(out, "          %s (%s): %s\n", e.Example.Word, e.Example.Reading, e.Example.Sentence)
		}
	}
	fmt.Fprintf(out, "\n%d results\n", len(entries))
	return nil
}

// truncate shortens s to at most n characters, counting runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func encodeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("db", "kanji.db", "SQLite index file")
	if err := viper.BindPFlag("index.db", indexCmd.PersistentFlags().Lookup("db")); err != nil {
		panic(err)
	}

	for _, c := range []*cobra.Command{indexLookupCmd, indexSearchCmd, indexDupsCmd, indexStatsCmd} {
		c.Flags().Bool("json", false, "output results as JSON")
	}
	indexSearchCmd.Flags().Int("limit", 20, "maximum number of results")

	indexExportCmd.Flags().String("format", "json", "export format: json or yaml")
	indexExportCmd.Flags().Int("grade", 0, "export only this grade (default: all)")
	indexExportCmd.Flags().String("output", "", "file to write (default: stdout)")

	// Wire subcommands.
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexLookupCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexDupsCmd)
	indexCmd.AddCommand(indexStatsCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
