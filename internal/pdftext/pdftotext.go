// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/pdiddy/gazette/internal/container"
)

const imagePoppler = "poppler:latest"

// countPages is swapped out in tests that feed fake PDFs.
var countPages = PageCount

// Pdftotext renders pages with poppler's pdftotext in layout mode, one
// container run per page. Layout mode keeps table columns on one line,
// which suits gazettes whose content streams interleave columns.
type Pdftotext struct {
	runtime container.Runtime
	path    string
	pages   int
}

// NewPdftotext checks that the poppler image is available in rt and reads
// the page count of path.
func NewPdftotext(rt container.Runtime, path string) (*Pdftotext, error) {
	if err := rt.ImageExists(imagePoppler); err != nil {
		return nil, fmt.Errorf("poppler image not available in %s: %w", rt.Name(), err)
	}
	pages, err := countPages(path)
	if err != nil {
		return nil, err
	}
	return &Pdftotext{runtime: rt, path: path, pages: pages}, nil
}

// NumPages returns the page count read at construction.
func (p *Pdftotext) NumPages() int {
	return p.pages
}

// PageLines pipes the PDF through pdftotext restricted to one page.
func (p *Pdftotext) PageLines(page int) ([]string, error) {
	if page < 1 || page > p.pages {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, p.pages)
	}

	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", p.path, err)
	}
	defer f.Close()

	n := strconv.Itoa(page)
	cmd := []string{"pdftotext", "-layout", "-enc", "UTF-8", "-f", n, "-l", n, "-", "-"}

	var out bytes.Buffer
	if err := p.runtime.Run(imagePoppler, cmd, f, &out); err != nil {
		return nil, fmt.Errorf("extracting page %d of %s: %w", page, p.path, err)
	}
	return SplitLines(out.String()), nil
}

// Close is a no-op; the PDF is opened per page.
func (p *Pdftotext) Close() error {
	return nil
}
