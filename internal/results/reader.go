// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/gazette/pkg/types"
)

// columns maps header names to positions in a table.
type columns map[string]int

// Each calls fn for every record in the table at path, in file order. It
// stops at the first error from fn or the first cell that does not decode.
// A missing table yields an error wrapping types.ErrMissingInput.
func Each(path string, fn func(rec types.ResultRecord) error) error {
	return eachRow(path, func(rec types.ResultRecord, line int, decodeErr error) error {
		if decodeErr != nil {
			return fmt.Errorf("%s row %d: %w", path, line, decodeErr)
		}
		return fn(rec)
	})
}

// eachRow streams the table at path to fn. Rows whose numeric cells do not
// decode are still passed on, with those fields left empty and decodeErr
// set; fn decides whether that is fatal.
func eachRow(path string, fn func(rec types.ResultRecord, line int, decodeErr error) error) error {
	f, err := openTable(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	_, cols, err := readHeader(r, path)
	if err != nil {
		return err
	}

	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		rec, decodeErr := decodeRow(row, cols)
		if err := fn(rec, line, decodeErr); err != nil {
			return err
		}
	}
}

// ReadAll loads every record of the table at path.
func ReadAll(path string) ([]types.ResultRecord, error) {
	var recs []types.ResultRecord
	err := Each(path, func(rec types.ResultRecord) error {
		recs = append(recs, rec)
		return nil
	})
	return recs, err
}

func openTable(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s not found, parse the PDF first", types.ErrMissingInput, path)
		}
		return nil, fmt.Errorf("opening results table %s: %w", path, err)
	}
	return f, nil
}

func readHeader(r *csv.Reader, path string) ([]string, columns, error) {
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("results table %s is empty", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}
	if _, ok := cols["RollNo"]; !ok {
		return nil, nil, fmt.Errorf("results table %s has no RollNo column", path)
	}
	return header, cols, nil
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// decodeRow maps a row onto a record. A Marks or PageNo cell that is not an
// integer is left empty in rec and reported in the returned error.
func decodeRow(row []string, cols columns) (types.ResultRecord, error) {
	rec := types.ResultRecord{
		RollNo:     cols.get(row, "RollNo"),
		Name:       cols.get(row, "Name"),
		Status:     cols.get(row, "Status"),
		Grade:      cols.get(row, "Grade"),
		SchoolName: cols.get(row, "SchoolName"),
		SchoolCode: cols.get(row, "SchoolCode"),
	}

	var errs []error
	if s := cols.get(row, "Marks"); s != "" {
		if marks, err := parseInt(s); err != nil {
			errs = append(errs, fmt.Errorf("marks %q: %w", s, err))
		} else {
			rec.Marks = &marks
		}
	}
	if s := cols.get(row, "PageNo"); s != "" {
		if page, err := parseInt(s); err != nil {
			errs = append(errs, fmt.Errorf("page %q: %w", s, err))
		} else {
			rec.PageNo = page
		}
	}
	return rec, errors.Join(errs...)
}

// parseInt accepts plain integers and integral floats such as "450.0",
// which tables rewritten by dataframe tools contain.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errors.New("not an integer")
	}
	return int(f), nil
}
