// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Backend identifies the tool that renders PDF pages as text.
type Backend string

const (
	// BackendNative reads page content streams in-process.
	BackendNative Backend = "native"
	// BackendPdftotext runs poppler's pdftotext -layout inside a container.
	BackendPdftotext Backend = "pdftotext"
)

// WriteMode selects how a parse run opens the results table.
type WriteMode string

const (
	// ModeFresh truncates the table and writes the header row.
	ModeFresh WriteMode = "fresh"
	// ModeAppend adds rows to an existing table. The header is written only
	// when the table did not exist yet.
	ModeAppend WriteMode = "append"
)

// Defaults shared by the CLIs and the magefile.
const (
	DefaultPDFPath    = "Result-Gazette-SSC-II-Ist-Annual-2025.pdf"
	DefaultCSVPath    = "data/results.csv"
	DefaultSampleRows = 10
	DefaultChunkSize  = 300
)

// PageRange is an inclusive, 1-based range of PDF pages.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Valid reports whether the range starts at page 1 or later and does not end
// before it starts. A range past the last page is still valid; the driver
// clamps it.
func (r PageRange) Valid() bool {
	return r.Start >= 1 && r.End >= r.Start
}

// ParseConfig holds settings for a parse run.
type ParseConfig struct {
	// PDFPath is the gazette to read.
	PDFPath string `json:"pdf" yaml:"pdf"`

	// CSVPath is the results table written by the run.
	CSVPath string `json:"csv" yaml:"csv"`

	// Backend selects the page text source: native or pdftotext.
	Backend Backend `json:"backend" yaml:"backend"`

	// VocabularyPath optionally points at a YAML file overriding the
	// institution hints, status keywords, and grades.
	VocabularyPath string `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`

	// Pages is the chunk to process.
	Pages PageRange `json:"pages" yaml:"pages"`

	// Mode selects fresh or append output.
	Mode WriteMode `json:"mode" yaml:"mode"`
}

// ResultsConfig holds settings for the stats and dedupe operations.
type ResultsConfig struct {
	// CSVPath is the results table to inspect or rewrite.
	CSVPath string `json:"csv" yaml:"csv"`

	// SampleRows is the number of leading rows shown by stats (default 10).
	SampleRows int `json:"sample_rows" yaml:"sample_rows"`
}
