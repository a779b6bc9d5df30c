// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// VocabRecord holds one flashcard's worth of vocabulary content extracted
// from a lesson PDF: a Chinese prompt, its English translation, and an
// optional K.K. phonetic annotation.
type VocabRecord struct {
	// Source is the prompt-side text (Chinese term, phrase, or sentence).
	Source string `json:"source" yaml:"source"`

	// Target is the answer-side text (English translation).
	Target string `json:"target" yaml:"target"`

	// Pronunciation is the phonetic annotation, empty when the source
	// material carries none.
	Pronunciation string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`

	// Tags lists the lesson tags this record belongs to, in first-seen
	// order. A record that recurs across lessons accumulates one tag per
	// lesson after deduplication.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// SourceFile is the basename of the PDF the record was extracted from.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`

	// Page is the one-based page number the record was extracted from.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`
}

// Valid reports whether the record carries both a source and a target
// after trimming whitespace. Invalid records are discarded during
// extraction and never reach the deck.
func (r VocabRecord) Valid() bool {
	return strings.TrimSpace(r.Source) != "" && strings.TrimSpace(r.Target) != ""
}

// LessonTag returns the record's originating lesson tag, or the empty
// string for an untagged record.
func (r VocabRecord) LessonTag() string {
	if len(r.Tags) == 0 {
		return ""
	}
	return r.Tags[0]
}

// DocumentResult holds the ordered records extracted from a single PDF.
type DocumentResult struct {
	// File is the basename of the source PDF.
	File string `json:"file" yaml:"file"`

	// Tag is the lesson tag derived from the filename.
	Tag string `json:"tag" yaml:"tag"`

	// Records are the extracted records in page order, then within-page
	// extraction order.
	Records []VocabRecord `json:"records" yaml:"records"`
}
