// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest writes small PDFs for tests. Every page shares one
// monospaced Type1 font (/F1, 600 units per glyph) and carries the content
// stream it is given verbatim.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Write builds a PDF with one page per content stream and returns its path
// inside t.TempDir().
func Write(t testing.TB, contents ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gazette.pdf")
	if err := os.WriteFile(path, Build(contents...), 0o644); err != nil {
		t.Fatalf("writing test PDF: %v", err)
	}
	return path
}

// Build returns the bytes of a PDF with one page per content stream.
func Build(contents ...string) []byte {
	var widths strings.Builder
	for c := 32; c <= 126; c++ {
		widths.WriteString(" 600")
	}

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled once the page objects are numbered
		"<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding" +
			" /FirstChar 32 /LastChar 126 /Widths [" + widths.String() + " ] >>",
	}
	kids := make([]string, 0, len(contents))
	for _, c := range contents {
		pageObj := len(objs) + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj))
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792]"+
				" /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageObj+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c), c),
		)
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(contents))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}
