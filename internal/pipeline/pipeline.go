// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the conversion stages together: aggregate
// records from lesson PDFs, deduplicate them, build decks, and write
// the .apkg artifact.
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/leixing/vocabdeck/internal/anki"
	"github.com/leixing/vocabdeck/internal/lesson"
	"github.com/leixing/vocabdeck/internal/pdfio"
	"github.com/leixing/vocabdeck/pkg/types"
)

// Result summarizes one conversion run.
type Result struct {
	Summary    lesson.Summary
	Unique     int
	Decks      int
	OutputPath string
}

// Run executes the full conversion described by cfg, printing per-file
// status to w. It returns an error only when nothing could be produced;
// individual unreadable documents are warned about and skipped.
func Run(open pdfio.Opener, cfg types.PipelineConfig, w io.Writer) (Result, error) {
	applyDefaults(&cfg)

	var docs []types.DocumentResult
	var summary lesson.Summary
	var err error

	if cfg.SingleFile != "" {
		docs, summary = lesson.AggregateFiles(open, []string{cfg.SingleFile}, cfg.Parser, w)
	} else {
		docs, summary, err = lesson.AggregateDir(open, cfg.InputDir, cfg.Parser, w)
		if err != nil {
			return Result{}, err
		}
	}

	if summary.Total() == 0 {
		return Result{}, fmt.Errorf("no PDF files found in %s", cfg.InputDir)
	}
	if summary.AllFailed() {
		return Result{}, fmt.Errorf("all %d documents failed to parse", summary.Failed)
	}

	records := lesson.Deduplicate(docs)
	result := Result{Summary: summary, Unique: len(records)}

	total := 0
	for _, d := range docs {
		total += len(d.Records)
	}
	fmt.Fprintf(w, "\nBatch summary: %d parsed, %d empty, %d failed (total %d documents)\n",
		summary.Parsed, summary.Empty, summary.Failed, summary.Total())
	fmt.Fprintf(w, "deduplicated %d records into %d unique cards\n", total, len(records))

	if len(records) == 0 {
		fmt.Fprintf(w, "warning: no vocabulary extracted, nothing to export\n")
		return result, nil
	}

	if cfg.DumpPath != "" {
		if err := dumpRecords(cfg.DumpPath, records); err != nil {
			return result, err
		}
		fmt.Fprintf(w, "dumped %d records to %s\n", len(records), cfg.DumpPath)
	}

	decks := BuildDecks(records, cfg.Export)
	result.Decks = len(decks)

	if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(cfg.Export.OutputDir, cfg.Export.DeckName+".apkg")
	if err := anki.WritePackage(outPath, decks); err != nil {
		return result, err
	}
	result.OutputPath = outPath

	fmt.Fprintf(w, "wrote %s (%d decks, %d cards)\n", outPath, len(decks), len(records))
	return result, nil
}

// BuildDecks turns deduplicated records into Anki decks. The flat layout
// produces one deck holding every card; the subdeck layout adds one
// child deck per lesson under an empty parent, ordered by lesson number.
func BuildDecks(records []types.VocabRecord, cfg types.ExportConfig) []*anki.Deck {
	if !cfg.Subdecks {
		deck := anki.NewDeck(cfg.DeckName)
		for _, rec := range records {
			deck.AddNote(noteFor(rec, cfg.FixedTags))
		}
		return []*anki.Deck{deck}
	}

	parent := anki.NewDeck(cfg.DeckName)
	subdecks := make(map[string]*anki.Deck)
	order := make(map[string]float64)

	for _, rec := range records {
		label := lesson.SubdeckLabel(rec.SourceFile)
		sub, ok := subdecks[label]
		if !ok {
			sub = anki.NewDeck(cfg.DeckName + "::" + label)
			subdecks[label] = sub
			order[label] = lesson.SortKey(rec.SourceFile)
		}
		sub.AddNote(noteFor(rec, cfg.FixedTags))
	}

	labels := make([]string, 0, len(subdecks))
	for label := range subdecks {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if order[labels[i]] != order[labels[j]] {
			return order[labels[i]] < order[labels[j]]
		}
		return labels[i] < labels[j]
	})

	decks := []*anki.Deck{parent}
	for _, label := range labels {
		decks = append(decks, subdecks[label])
	}
	return decks
}

// noteFor maps a vocabulary record onto the note model fields. The tag
// field shown on the card back lists the lesson tags; the note's own
// tags additionally carry the fixed deck-family tags.
func noteFor(rec types.VocabRecord, fixed []string) anki.Note {
	var n anki.Note
	n.Fields[0] = rec.Source
	n.Fields[1] = rec.Target
	n.Fields[2] = rec.Pronunciation
	n.Fields[3] = strings.Join(rec.Tags, " ")
	n.Tags = append(append([]string{}, rec.Tags...), fixed...)
	return n
}

// dumpRecords writes the deduplicated records to path, as JSON when the
// extension is .json and YAML otherwise.
func dumpRecords(path string, records []types.VocabRecord) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = yaml.Marshal(records)
	}
	if err != nil {
		return fmt.Errorf("encoding record dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record dump: %w", err)
	}
	return nil
}

func applyDefaults(cfg *types.PipelineConfig) {
	if cfg.InputDir == "" {
		cfg.InputDir = types.DefaultInputDir
	}
	if cfg.Export.DeckName == "" {
		cfg.Export.DeckName = types.DefaultDeckName
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = types.DefaultOutputDir
	}
	if len(cfg.Export.FixedTags) == 0 {
		cfg.Export.FixedTags = types.DefaultFixedTags
	}
}
