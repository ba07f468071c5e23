// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the gazette pipeline.
package types

import "strconv"

// Result status values printed in the gazette.
const (
	StatusPass  = "PASS"
	StatusCompt = "COMPT"
	StatusFail  = "FAIL"
)

// Header is the column order of the results table. Other tools (stats,
// dedupe, downstream analysis) rely on these names.
var Header = []string{"RollNo", "Name", "Status", "Marks", "Grade", "SchoolName", "SchoolCode", "PageNo"}

// ResultRecord is one candidate row extracted from a gazette page.
type ResultRecord struct {
	// RollNo is the 7-digit candidate identifier, kept as text.
	RollNo string `json:"roll_no" yaml:"roll_no"`

	// Name is the candidate name with surrounding whitespace removed.
	Name string `json:"name" yaml:"name"`

	// Status is PASS, COMPT, FAIL, or empty when the line carries none.
	Status string `json:"status" yaml:"status"`

	// Marks is set only for PASS rows that end in a recognized grade.
	Marks *int `json:"marks,omitempty" yaml:"marks,omitempty"`

	// Grade is a code from the grade vocabulary, or empty.
	Grade string `json:"grade" yaml:"grade"`

	// SchoolName is the institution header in effect when the line was read.
	SchoolName string `json:"school_name" yaml:"school_name"`

	// SchoolCode is the 3-5 digit code from that header; empty when absent.
	SchoolCode string `json:"school_code,omitempty" yaml:"school_code,omitempty"`

	// PageNo is the 1-based source page.
	PageNo int `json:"page_no" yaml:"page_no"`
}

// HasMarks reports whether Marks is populated.
func (r ResultRecord) HasMarks() bool {
	return r.Marks != nil
}

// Row renders the record in Header order. Absent marks become an empty field.
func (r ResultRecord) Row() []string {
	marks := ""
	if r.Marks != nil {
		marks = strconv.Itoa(*r.Marks)
	}
	return []string{
		r.RollNo,
		r.Name,
		r.Status,
		marks,
		r.Grade,
		r.SchoolName,
		r.SchoolCode,
		strconv.Itoa(r.PageNo),
	}
}

// IntPtr returns a pointer to v. Convenient for building records with marks.
func IntPtr(v int) *int {
	return &v
}
