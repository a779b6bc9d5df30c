// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lesson

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leixing/vocabdeck/internal/pdfio"
	"github.com/leixing/vocabdeck/pkg/types"
)

// fakeSource serves pages from memory.
type fakeSource struct {
	pages []string
}

func (f *fakeSource) NumPages() int { return len(f.pages) }

func (f *fakeSource) PageText(n int) (string, error) {
	if n < 1 || n > len(f.pages) {
		return "", fmt.Errorf("page %d out of range", n)
	}
	return f.pages[n-1], nil
}

func (f *fakeSource) Close() error { return nil }

// fakeOpener serves documents by basename; paths not in the map fail to open.
func fakeOpener(docs map[string][]string) pdfio.Opener {
	return func(path string) (pdfio.PageSource, error) {
		pages, ok := docs[filepath.Base(path)]
		if !ok {
			return nil, fmt.Errorf("cannot open %s", path)
		}
		return &fakeSource{pages: pages}, nil
	}
}

const (
	lesson1File = "零基础学英语第1课-星荣英语笔记.pdf"
	lesson2File = "零基础学英语第2课-星荣英语笔记.pdf"
	lesson3File = "零基础学英语第3课-星荣英语笔记.pdf"
)

func TestAggregateFiles_TagsAndProvenance(t *testing.T) {
	open := fakeOpener(map[string][]string{
		lesson1File: {
			"cover page, ignored",
			"苹果 apple /ˈæp.əl/\n香蕉 banana",
		},
	})

	var w strings.Builder
	results, summary := AggregateFiles(open, []string{lesson1File}, types.ParserConfig{}, &w)

	if summary.Parsed != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(results) != 1 || len(results[0].Records) != 2 {
		t.Fatalf("results = %+v", results)
	}

	rec := results[0].Records[0]
	if rec.LessonTag() != "Lesson_1" {
		t.Errorf("tag = %q, want Lesson_1", rec.LessonTag())
	}
	if rec.SourceFile != lesson1File || rec.Page != 2 {
		t.Errorf("provenance = %q page %d", rec.SourceFile, rec.Page)
	}
}

func TestAggregateFiles_PagesBeforeStartSkipped(t *testing.T) {
	// Vocabulary-like text on page 1 only: front matter never yields records.
	open := fakeOpener(map[string][]string{
		lesson1File: {"苹果 apple /ˈæp.əl/"},
	})

	var w strings.Builder
	results, summary := AggregateFiles(open, []string{lesson1File}, types.ParserConfig{}, &w)

	if summary.Empty != 1 {
		t.Fatalf("summary = %+v, want one empty document", summary)
	}
	if len(results[0].Records) != 0 {
		t.Fatalf("got %d records from front matter, want 0", len(results[0].Records))
	}
	if !strings.Contains(w.String(), "no records extracted") {
		t.Errorf("missing zero-record warning, output: %q", w.String())
	}
}

func TestAggregateFiles_StartPageOverride(t *testing.T) {
	open := fakeOpener(map[string][]string{
		lesson1File: {"苹果 apple", "香蕉 banana", "猫 cat"},
	})

	var w strings.Builder
	cfg := types.ParserConfig{StartPage: 3}
	results, _ := AggregateFiles(open, []string{lesson1File}, cfg, &w)

	if len(results[0].Records) != 1 {
		t.Fatalf("got %d records, want 1 (page 3 only)", len(results[0].Records))
	}
	if results[0].Records[0].Source != "猫" {
		t.Errorf("record = %+v", results[0].Records[0])
	}
}

func TestAggregateFiles_UnreadableDocumentSkipped(t *testing.T) {
	open := fakeOpener(map[string][]string{
		lesson1File: {"", "苹果 apple"},
		lesson3File: {"", "香蕉 banana"},
	})

	var w strings.Builder
	paths := []string{lesson1File, lesson2File, lesson3File}
	results, summary := AggregateFiles(open, paths, types.ParserConfig{}, &w)

	if summary.Failed != 1 || summary.Parsed != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !strings.Contains(w.String(), lesson2File) {
		t.Errorf("warning does not identify the unreadable document: %q", w.String())
	}
	if summary.AllFailed() {
		t.Error("AllFailed should be false with two readable documents")
	}
}

func TestAggregateDir_SortedByLessonNumber(t *testing.T) {
	dir := t.TempDir()
	// Lexical order would put 第10.5课 before 第2课; lesson order must not.
	files := []string{
		"零基础学英语第10.5课-星荣英语笔记.pdf",
		lesson2File,
		lesson1File,
		"notes.txt", // ignored: not a PDF
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	open := fakeOpener(map[string][]string{
		lesson1File: {"", "苹果 apple"},
		lesson2File: {"", "香蕉 banana"},
		"零基础学英语第10.5课-星荣英语笔记.pdf": {"", "猫 cat"},
	})

	var w strings.Builder
	results, summary, err := AggregateDir(open, dir, types.ParserConfig{}, &w)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total() != 3 {
		t.Fatalf("summary = %+v", summary)
	}

	var order []string
	for _, r := range results {
		order = append(order, r.Tag)
	}
	want := []string{"Lesson_1", "Lesson_2", "Lesson_10_5"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("document order = %v, want %v", order, want)
		}
	}
}

func TestAggregateDir_MissingDirectory(t *testing.T) {
	open := fakeOpener(nil)
	var w strings.Builder
	_, _, err := AggregateDir(open, filepath.Join(t.TempDir(), "absent"), types.ParserConfig{}, &w)
	if err == nil {
		t.Fatal("expected error for missing input directory")
	}
}

func TestListPDFs_Empty(t *testing.T) {
	names, err := ListPDFs(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("got %v, want empty", names)
	}
}
