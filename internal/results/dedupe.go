// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DedupeResult holds the row counts of a dedupe pass.
type DedupeResult struct {
	Before int
	After  int
}

// Removed returns the number of rows dropped.
func (r DedupeResult) Removed() int {
	return r.Before - r.After
}

// Dedupe drops every row whose RollNo already appeared earlier in the table
// at path and rewrites the table in place. Kept rows are copied unchanged.
// The rewrite goes through a temporary file in the same directory, so an
// interrupted run leaves the original intact.
func Dedupe(path string) (DedupeResult, error) {
	f, err := openTable(path)
	if err != nil {
		return DedupeResult{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, cols, err := readHeader(r, path)
	if err != nil {
		return DedupeResult{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dedupe-*.csv")
	if err != nil {
		return DedupeResult{}, fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return DedupeResult{}, fmt.Errorf("setting mode of %s: %w", tmpPath, err)
	}

	res, err := copyUnique(r, newCSVWriter(tmp), header, cols["RollNo"])
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return DedupeResult{}, fmt.Errorf("deduplicating %s: %w", path, err)
	}

	f.Close()
	if err := os.Rename(tmpPath, path); err != nil {
		return DedupeResult{}, fmt.Errorf("replacing %s: %w", path, err)
	}
	return res, nil
}

func copyUnique(r *csv.Reader, w *csv.Writer, header []string, rollIdx int) (DedupeResult, error) {
	var res DedupeResult
	if err := w.Write(header); err != nil {
		return res, err
	}

	seen := make(map[string]bool)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		res.Before++

		roll := ""
		if rollIdx < len(row) {
			roll = row[rollIdx]
		}
		if seen[roll] {
			continue
		}
		seen[roll] = true
		if err := w.Write(row); err != nil {
			return res, err
		}
		res.After++
	}

	w.Flush()
	return res, w.Error()
}
