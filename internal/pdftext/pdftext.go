// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext renders gazette pages as lines of text. Different backends
// (an in-process content stream reader, poppler's pdftotext in a container)
// implement Source; callers see the same per-page line slices.
package pdftext

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/gazette/internal/container"
	"github.com/pdiddy/gazette/pkg/types"
)

// Source yields the text lines of one PDF, a page at a time.
type Source interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// PageLines returns the text lines of a 1-based page in reading order.
	// Lines are not trimmed and may be blank.
	PageLines(page int) ([]string, error)

	// Close releases the underlying file.
	Close() error
}

// Open checks that path exists and opens it with the requested backend. A
// missing file yields an error wrapping types.ErrMissingInput.
func Open(path string, backend types.Backend) (Source, error) {
	if err := checkExists(path); err != nil {
		return nil, err
	}

	switch backend {
	case types.BackendNative, "":
		return OpenNative(path)
	case types.BackendPdftotext:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPdftotext(rt, path)
	default:
		return nil, fmt.Errorf("unknown text backend %q: use %s or %s",
			backend, types.BackendNative, types.BackendPdftotext)
	}
}

// PageCount returns the number of pages in the PDF at path without
// extracting any text.
func PageCount(path string) (int, error) {
	if err := checkExists(path); err != nil {
		return 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	n, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// SplitLines breaks extracted page text into lines. Form feeds and carriage
// returns are dropped, and each line is NFKC-normalized so ligatures and
// full-width digits compare like their plain forms.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\f", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = norm.NFKC.String(line)
	}
	return lines
}

func checkExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: PDF %s not found", types.ErrMissingInput, path)
		}
		return fmt.Errorf("checking PDF %s: %w", path, err)
	}
	return nil
}
