// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results persists extracted records as a CSV table and provides the
// maintenance operations over it: streaming reads, stats, and dedupe.
//
// The table is the only durable artifact. Its header is types.Header; rows
// use standard CSV quoting with CRLF line endings, and absent marks or codes
// are empty fields.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/gazette/pkg/types"
)

// Writer appends records to the results table. It is not safe for
// concurrent use; a parse run is its only writer.
type Writer struct {
	f       *os.File
	csv     *csv.Writer
	path    string
	created bool
	rows    int
}

// Open opens the table at path for a parse run. ModeFresh truncates it and
// writes the header. ModeAppend keeps existing rows and writes the header
// only when the file did not exist. Parent directories are created.
func Open(path string, mode types.WriteMode) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", path, err)
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil

	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	switch mode {
	case types.ModeFresh, "":
	case types.ModeAppend:
		if exists {
			flag = os.O_WRONLY | os.O_APPEND
		}
	default:
		return nil, fmt.Errorf("unknown write mode %q", mode)
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening results table %s: %w", path, err)
	}

	w := &Writer{
		f:       f,
		csv:     newCSVWriter(f),
		path:    path,
		created: flag&os.O_TRUNC != 0,
	}
	if w.created {
		if err := w.csv.Write(types.Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing header to %s: %w", path, err)
		}
	}
	return w, nil
}

// Write buffers one record.
func (w *Writer) Write(rec types.ResultRecord) error {
	if err := w.csv.Write(rec.Row()); err != nil {
		return fmt.Errorf("writing roll %s to %s: %w", rec.RollNo, w.path, err)
	}
	w.rows++
	return nil
}

// Flush writes buffered rows to the file.
func (w *Writer) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", w.path, err)
	}
	return nil
}

// Close flushes and closes the table.
func (w *Writer) Close() error {
	flushErr := w.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", w.path, closeErr)
	}
	return nil
}

// Path returns the table path.
func (w *Writer) Path() string { return w.path }

// Created reports whether Open started a new table (and wrote its header).
func (w *Writer) Created() bool { return w.created }

// Rows returns the number of records written through this Writer.
func (w *Writer) Rows() int { return w.rows }

func newCSVWriter(f *os.File) *csv.Writer {
	w := csv.NewWriter(f)
	w.UseCRLF = true
	return w
}
