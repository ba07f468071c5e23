// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gazette/pkg/types"
)

// StatusNone labels rows without a status in Summary.ByStatus.
const StatusNone = "(none)"

// Summary describes a results table.
type Summary struct {
	Path     string               `json:"path" yaml:"path"`
	Total    int                  `json:"total_rows" yaml:"total_rows"`
	ByStatus map[string]int       `json:"by_status" yaml:"by_status"`
	Sample   []types.ResultRecord `json:"sample" yaml:"sample"`

	// Malformed counts rows whose Marks or PageNo cell is not an integer.
	// They are counted and sampled with those fields left empty.
	Malformed int `json:"malformed_rows,omitempty" yaml:"malformed_rows,omitempty"`
}

// Stats counts the rows of the table at path and keeps the first n as a
// sample. n below 1 uses types.DefaultSampleRows. A row with a non-integer
// Marks or PageNo cell is still counted; see Summary.Malformed.
func Stats(path string, n int) (Summary, error) {
	if n < 1 {
		n = types.DefaultSampleRows
	}
	s := Summary{Path: path, ByStatus: map[string]int{}}

	err := eachRow(path, func(rec types.ResultRecord, _ int, decodeErr error) error {
		s.Total++
		if decodeErr != nil {
			s.Malformed++
		}
		status := rec.Status
		if status == "" {
			status = StatusNone
		}
		s.ByStatus[status]++
		if len(s.Sample) < n {
			s.Sample = append(s.Sample, rec)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return s, nil
}

// WriteYAML renders the summary as YAML.
func (s Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}

// WriteTable prints the row count, status breakdown, and sample rows.
func (s Summary) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "Total rows: %d\n", s.Total)
	if s.Malformed > 0 {
		fmt.Fprintf(w, "Rows with unreadable Marks or PageNo: %d\n", s.Malformed)
	}

	statuses := make([]string, 0, len(s.ByStatus))
	for k := range s.ByStatus {
		statuses = append(statuses, k)
	}
	sort.Strings(statuses)
	for _, k := range statuses {
		fmt.Fprintf(w, "  %-8s %d\n", k, s.ByStatus[k])
	}

	if len(s.Sample) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-8s  %-24s  %-6s  %5s  %-5s  %-30s  %-6s  %s\n",
		"RollNo", "Name", "Status", "Marks", "Grade", "SchoolName", "Code", "Page")
	fmt.Fprintln(w, strings.Repeat("-", 104))
	for _, r := range s.Sample {
		marks := ""
		if r.Marks != nil {
			marks = fmt.Sprint(*r.Marks)
		}
		fmt.Fprintf(w, "%-8s  %-24s  %-6s  %5s  %-5s  %-30s  %-6s  %d\n",
			r.RollNo, truncate(r.Name, 24), r.Status, marks, r.Grade,
			truncate(r.SchoolName, 30), r.SchoolCode, r.PageNo)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
