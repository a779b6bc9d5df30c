// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leixing/vocabdeck/internal/extract"
	"github.com/leixing/vocabdeck/internal/pdfio"
	"github.com/leixing/vocabdeck/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf>",
	Short: "Inspect a PDF's page text and what the parser extracts from it",
	Long: `Analyze prints per-page statistics for one document: the raw line
count, a preview of the page text, and the vocabulary records the
parser finds. Useful for tuning header patterns when a lesson PDF
yields fewer entries than expected.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	previewLines, _ := cmd.Flags().GetInt("preview")
	savePath, _ := cmd.Flags().GetString("save")

	src, err := pdfio.Open(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	var dump strings.Builder

	opts := extract.OptionsFrom(types.ParserConfig{
		MaxLineRunes:   viper.GetInt("parser.max_line_runes"),
		HeaderPatterns: viper.GetStringSlice("parser.header_patterns"),
	})

	totalRecords := 0
	for page := 1; page <= src.NumPages(); page++ {
		text, err := src.PageText(page)
		if err != nil {
			fmt.Fprintf(os.Stderr, "page %d: unreadable (%v)\n", page, err)
			continue
		}

		lines := splitLines(text)
		records := extract.Records(text, opts)
		totalRecords += len(records)

		if savePath != "" {
			fmt.Fprintf(&dump, "=== page %d ===\n%s\n", page, text)
		}

		fmt.Printf("--- page %d: %d lines, %d records ---\n", page, len(lines), len(records))
		for i, line := range lines {
			if i >= previewLines {
				fmt.Printf("  ... %d more lines\n", len(lines)-previewLines)
				break
			}
			fmt.Printf("  | %s\n", line)
		}
		for _, rec := range records {
			fmt.Printf("  => %s | %s | %s\n", rec.Source, rec.Target, rec.Pronunciation)
		}
	}

	fmt.Printf("\n%d pages, %d records total\n", src.NumPages(), totalRecords)

	if savePath != "" {
		if err := os.WriteFile(savePath, []byte(dump.String()), 0o644); err != nil {
			return fmt.Errorf("saving page dump: %w", err)
		}
		fmt.Printf("saved page text to %s\n", savePath)
	}
	return nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func init() {
	analyzeCmd.Flags().Int("preview", 10, "maximum raw lines to print per page")
	analyzeCmd.Flags().String("save", "", "also write the full page text dump to this file")

	rootCmd.AddCommand(analyzeCmd)
}
