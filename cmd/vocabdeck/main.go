// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vocabdeck CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leixing/vocabdeck/internal/lesson"
	"github.com/leixing/vocabdeck/internal/pdfio"
	"github.com/leixing/vocabdeck/internal/pipeline"
	"github.com/leixing/vocabdeck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts lesson PDFs into one importable Anki package.
var rootCmd = &cobra.Command{
	Use:   "vocabdeck",
	Short: "Convert vocabulary lesson PDFs into an Anki deck",
	Long: `vocabdeck extracts Chinese-English vocabulary entries from lesson PDFs
and writes them into a single importable Anki .apkg package. Entries
are deduplicated across lessons and every card is tagged with the
lessons it appeared in.

By default all *.pdf files in the input directory are processed in
lesson order. Use --file to convert a single document instead.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	listOnly, _ := cmd.Flags().GetBool("list-pdfs")
	if listOnly {
		return runListPDFs(viper.GetString("input_dir"))
	}

	cfg := types.PipelineConfig{
		InputDir:   viper.GetString("input_dir"),
		SingleFile: viper.GetString("single_file"),
		DumpPath:   viper.GetString("dump_path"),
		Parser: types.ParserConfig{
			StartPage:      viper.GetInt("parser.start_page"),
			MaxLineRunes:   viper.GetInt("parser.max_line_runes"),
			HeaderPatterns: viper.GetStringSlice("parser.header_patterns"),
		},
		Export: types.ExportConfig{
			DeckName:  viper.GetString("export.deck_name"),
			OutputDir: viper.GetString("export.output_dir"),
			Subdecks:  viper.GetBool("export.subdecks"),
			FixedTags: viper.GetStringSlice("export.fixed_tags"),
		},
	}

	result, err := pipeline.Run(pdfio.Open, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.Summary.HasFailures() {
		fmt.Fprintf(os.Stderr, "completed with %d unreadable document(s)\n", result.Summary.Failed)
	}
	return nil
}

// runListPDFs prints the input documents in the order the pipeline
// would process them, without converting anything.
func runListPDFs(dir string) error {
	names, err := lesson.ListPDFs(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Printf("no PDF files found in %s\n", dir)
		return nil
	}
	for _, name := range names {
		fmt.Printf("%-12s  %s\n", lesson.TagFromFilename(name), name)
	}
	fmt.Printf("\n%d documents\n", len(names))
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vocabdeck.yaml or ~/.config/vocabdeck/config.yaml)")

	rootCmd.Flags().StringP("file", "f", "", "convert a single PDF instead of scanning the input directory")
	rootCmd.Flags().StringP("pdf-dir", "d", types.DefaultInputDir, "directory scanned for lesson PDFs")
	rootCmd.Flags().StringP("output-dir", "o", types.DefaultOutputDir, "directory the .apkg package is written to")
	rootCmd.Flags().String("deck-name", types.DefaultDeckName, "Anki deck name and package basename")
	rootCmd.Flags().Bool("subdecks", false, "group cards into one subdeck per lesson")
	rootCmd.Flags().Int("start-page", types.DefaultStartPage, "first page to parse in each document")
	rootCmd.Flags().String("dump-records", "", "also write extracted records to this YAML or JSON file")
	rootCmd.Flags().Bool("list-pdfs", false, "list the input documents in processing order and exit")

	viper.BindPFlag("single_file", rootCmd.Flags().Lookup("file"))
	viper.BindPFlag("input_dir", rootCmd.Flags().Lookup("pdf-dir"))
	viper.BindPFlag("export.output_dir", rootCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("export.deck_name", rootCmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("export.subdecks", rootCmd.Flags().Lookup("subdecks"))
	viper.BindPFlag("parser.start_page", rootCmd.Flags().Lookup("start-page"))
	viper.BindPFlag("dump_path", rootCmd.Flags().Lookup("dump-records"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vocabdeck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vocabdeck"))
		}
	}

	viper.SetEnvPrefix("VOCABDECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
