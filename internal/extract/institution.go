// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/gazette/pkg/types"
)

var (
	parenCodeRe    = regexp.MustCompile(`\((\d{3,5})\)`)
	trailingCodeRe = regexp.MustCompile(`(\d{3,5})\s*$`)
)

// IsInstitutionLine reports whether a trimmed, non-empty line names an
// institution. Header lines never start with a digit and contain at least
// one institution hint, compared case-insensitively.
func (v *Vocabulary) IsInstitutionLine(line string) bool {
	if line == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if unicode.IsDigit(first) {
		return false
	}
	upper := strings.ToUpper(line)
	for _, hint := range v.InstitutionHints {
		if strings.Contains(upper, hint) {
			return true
		}
	}
	return false
}

// InstitutionCode returns the institution code printed on a header line: a
// 3-5 digit run in parentheses, or failing that a 3-5 digit run at the end of
// the line. It returns "" when the header carries no code.
func InstitutionCode(line string) string {
	if m := parenCodeRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := trailingCodeRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// Institution is the header in effect while scanning a document.
type Institution struct {
	Name string
	Code string
}

// Tracker carries the current institution across lines and pages of one
// parse run. A new Tracker starts with no institution.
type Tracker struct {
	vocab   *Vocabulary
	current Institution
	headers int
}

// NewTracker returns a Tracker that classifies lines with v.
func NewTracker(v *Vocabulary) *Tracker {
	if v == nil {
		v = DefaultVocabulary()
	}
	return &Tracker{vocab: v}
}

// Observe checks whether line is an institution header. If it is, the
// header becomes the current institution and Observe returns true; the
// caller must not treat the line as a record.
func (t *Tracker) Observe(line string) bool {
	if !t.vocab.IsInstitutionLine(line) {
		return false
	}
	t.current = Institution{Name: line, Code: InstitutionCode(line)}
	t.headers++
	return true
}

// Current returns the institution in effect.
func (t *Tracker) Current() Institution {
	return t.current
}

// Headers returns how many header lines have been observed.
func (t *Tracker) Headers() int {
	return t.headers
}

// Stamp copies the current institution and the page number onto rec.
func (t *Tracker) Stamp(rec *types.ResultRecord, page int) {
	rec.SchoolName = t.current.Name
	rec.SchoolCode = t.current.Code
	rec.PageNo = page
}
