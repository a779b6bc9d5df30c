// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lesson

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leixing/vocabdeck/internal/extract"
	"github.com/leixing/vocabdeck/internal/pdfio"
	"github.com/leixing/vocabdeck/pkg/types"
)

// Summary holds per-document counts from an aggregation run.
type Summary struct {
	Parsed int // documents that yielded at least one record
	Empty  int // documents that opened but yielded no records
	Failed int // documents that could not be opened or read
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Parsed + s.Empty + s.Failed
}

// HasFailures reports whether any document could not be read.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// AllFailed reports whether every processed document failed.
func (s Summary) AllFailed() bool {
	return s.Total() > 0 && s.Failed == s.Total()
}

// ListPDFs returns the *.pdf files in dir, sorted by lesson number and
// then by name so the pipeline output is reproducible across runs.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Slice(names, func(i, j int) bool {
		ki, kj := SortKey(names[i]), SortKey(names[j])
		if ki != kj {
			return ki < kj
		}
		return names[i] < names[j]
	})
	return names, nil
}

// AggregateDir extracts tagged records from every PDF in dir, in sorted
// order. Unreadable documents are warned about and skipped; one corrupt
// file must not abort the batch.
func AggregateDir(open pdfio.Opener, dir string, cfg types.ParserConfig, w io.Writer) ([]types.DocumentResult, Summary, error) {
	names, err := ListPDFs(dir)
	if err != nil {
		return nil, Summary{}, err
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	results, summary := AggregateFiles(open, paths, cfg, w)
	return results, summary, nil
}

// AggregateFiles extracts tagged records from the given documents in
// order. It returns one DocumentResult per readable document.
func AggregateFiles(open pdfio.Opener, paths []string, cfg types.ParserConfig, w io.Writer) ([]types.DocumentResult, Summary) {
	var results []types.DocumentResult
	var summary Summary

	for _, path := range paths {
		result, err := aggregateOne(open, path, cfg)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping %s: %v\n", filepath.Base(path), err)
			summary.Failed++
			continue
		}
		if len(result.Records) == 0 {
			fmt.Fprintf(w, "warning: no records extracted from %s\n", result.File)
			summary.Empty++
		} else {
			fmt.Fprintf(w, "parsed %s: %d records (tag %s)\n", result.File, len(result.Records), result.Tag)
			summary.Parsed++
		}
		results = append(results, result)
	}

	return results, summary
}

// aggregateOne runs the extractor over every page of one document from
// the configured start page, attaching the lesson tag and provenance to
// each record.
func aggregateOne(open pdfio.Opener, path string, cfg types.ParserConfig) (types.DocumentResult, error) {
	src, err := open(path)
	if err != nil {
		return types.DocumentResult{}, err
	}
	defer src.Close()

	file := filepath.Base(path)
	result := types.DocumentResult{
		File: file,
		Tag:  TagFromFilename(file),
	}

	startPage := cfg.StartPage
	if startPage <= 0 {
		startPage = types.DefaultStartPage
	}
	opts := extract.OptionsFrom(cfg)

	for page := startPage; page <= src.NumPages(); page++ {
		text, err := src.PageText(page)
		if err != nil {
			// A single unreadable page degrades to no records from it.
			continue
		}
		for _, rec := range extract.Records(text, opts) {
			rec.Tags = []string{result.Tag}
			rec.SourceFile = file
			rec.Page = page
			result.Records = append(result.Records, rec)
		}
	}

	return result, nil
}
