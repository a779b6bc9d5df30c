// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio abstracts per-page text access to PDF documents.
// Production code reads through github.com/ledongthuc/pdf; tests
// substitute an in-memory source via the Opener type.
package pdfio

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// PageSource is an open document exposing per-page plain text.
// Page numbers are one-based.
type PageSource interface {
	NumPages() int
	PageText(n int) (string, error)
	Close() error
}

// Opener opens a document at path. The lesson aggregator takes an Opener
// so the PDF layer can be swapped out in tests.
type Opener func(path string) (PageSource, error)

// Open opens a PDF file for per-page text extraction.
func Open(path string) (PageSource, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &fileSource{f: f, r: r}, nil
}

type fileSource struct {
	f *os.File
	r *pdf.Reader
}

func (s *fileSource) NumPages() int {
	return s.r.NumPage()
}

// PageText returns the plain text of page n. Null pages and pages whose
// content streams fail to decode yield empty text rather than an error;
// a single bad page must not sink the document.
func (s *fileSource) PageText(n int) (string, error) {
	if n < 1 || n > s.r.NumPage() {
		return "", fmt.Errorf("page %d out of range [1, %d]", n, s.r.NumPage())
	}
	page := s.r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", nil
	}
	return text, nil
}

func (s *fileSource) Close() error {
	return s.f.Close()
}
