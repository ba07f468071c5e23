// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

const (
	// wordGap is the horizontal gap, as a fraction of the font size, above
	// which two glyphs on a row are separated by a space.
	wordGap = 0.2

	// rowTolerance is the vertical distance, in points, within which
	// glyphs share a baseline.
	rowTolerance = 2.0
)

// Native reads page content streams in-process. Glyphs that share a
// baseline form one line; lines run top to bottom.
type Native struct {
	f *os.File
	r *pdf.Reader
}

// OpenNative opens the PDF at path. The caller must Close it.
func OpenNative(path string) (*Native, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &Native{f: f, r: r}, nil
}

// NumPages returns the page count from the document trailer.
func (n *Native) NumPages() int {
	return n.r.NumPage()
}

// PageLines returns one line per text row of the page. A content stream
// the reader cannot interpret is an error for the page.
func (n *Native) PageLines(page int) ([]string, error) {
	if page < 1 || page > n.NumPages() {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, n.NumPages())
	}
	p := n.r.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	glyphs, err := pageGlyphs(p)
	if err != nil {
		return nil, fmt.Errorf("reading text of page %d: %w", page, err)
	}

	rows := groupRows(glyphs)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, norm.NFKC.String(joinRuns(row.glyphs)))
	}
	return lines, nil
}

// Close closes the PDF file.
func (n *Native) Close() error {
	return n.f.Close()
}

// pageGlyphs interprets the page content stream. The reader panics on
// malformed operators, so the panic is turned into an error here.
func pageGlyphs(p pdf.Page) (glyphs []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			glyphs, err = nil, fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return p.Content().Text, nil
}

type textRow struct {
	y      float64
	glyphs []pdf.Text
}

// groupRows buckets glyphs by baseline and orders the rows top to bottom.
// Glyphs without printable text (the reader's line-break markers, unmapped
// codes) are dropped.
func groupRows(glyphs []pdf.Text) []textRow {
	var rows []textRow
	for _, g := range glyphs {
		if !printable(g.S) {
			continue
		}
		placed := false
		for i := len(rows) - 1; i >= 0; i-- {
			if math.Abs(rows[i].y-g.Y) < rowTolerance {
				rows[i].glyphs = append(rows[i].glyphs, g)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: g.Y, glyphs: []pdf.Text{g}})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	return rows
}

func printable(s string) bool {
	for _, r := range s {
		if r != unicode.ReplacementChar && !unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// joinRuns assembles the glyphs of one row, left to right. A glyph that
// starts within wordGap of the previous glyph's end is glued to it;
// anything further away starts a new word. Runs of whitespace collapse to
// one space.
func joinRuns(runs []pdf.Text) string {
	sorted := make([]pdf.Text, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var b strings.Builder
	var prevEnd float64
	for i, t := range sorted {
		if i > 0 && t.X-prevEnd > wordGap*t.FontSize {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
