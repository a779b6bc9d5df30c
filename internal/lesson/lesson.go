// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lesson turns lesson PDFs into tagged vocabulary records and
// merges them across documents. Lesson identity is a pure function of
// the document filename so the pipeline stays reproducible run to run.
package lesson

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// lessonNumPattern matches the lesson number token in filenames such as
// 零基础学英语第10.5课-星荣英语笔记.pdf.
var lessonNumPattern = regexp.MustCompile(`第(\d+(?:\.\d+)?)课`)

// nonWordPattern matches runs of characters stripped from fallback tags.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s-]+`)

// TagFromFilename derives the lesson tag for a document. 第N课 becomes
// Lesson_N and 第N.M课 becomes Lesson_N_M; filenames without a lesson
// token fall back to a sanitized basename so distinct documents still
// get distinct tags.
func TagFromFilename(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if m := lessonNumPattern.FindStringSubmatch(base); m != nil {
		return "Lesson_" + strings.ReplaceAll(m[1], ".", "_")
	}
	cleaned := nonWordPattern.ReplaceAllString(base, "")
	return strings.ReplaceAll(strings.TrimSpace(cleaned), " ", "_")
}

// SortKey extracts the numeric lesson value used to order documents.
// Filenames without a lesson token sort after all numbered lessons.
func SortKey(name string) float64 {
	base := filepath.Base(name)
	if m := lessonNumPattern.FindStringSubmatch(base); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	return math.Inf(1)
}

// CleanName returns the short lesson name (第N课 or 第N.M课) for display
// and subdeck naming, falling back to the basename stripped of series
// boilerplate.
func CleanName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if m := lessonNumPattern.FindString(base); m != "" {
		return m
	}
	cleaned := strings.ReplaceAll(base, "零基础学英语", "")
	cleaned = strings.ReplaceAll(cleaned, "-星荣英语笔记", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return base
	}
	return cleaned
}

// SubdeckLabel formats the subdeck segment for a lesson: the lesson
// number zero-padded for lexical ordering, joined with the clean name,
// e.g. 01_第1课 or 10_5_第10.5课.
func SubdeckLabel(name string) string {
	clean := CleanName(name)
	v := SortKey(name)
	if math.IsInf(v, 1) {
		return clean
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%02d_%s", int(v), clean)
	}
	num := strconv.FormatFloat(v, 'f', -1, 64)
	if v < 10 {
		num = "0" + num
	}
	return strings.ReplaceAll(num, ".", "_") + "_" + clean
}
