// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gazette/pkg/types"
)

// Vocabulary holds the closed word lists the heuristics match against. The
// lists are tuned to one gazette family; names or grades outside them are
// treated as noise.
type Vocabulary struct {
	// InstitutionHints are upper-case substrings that mark a header line.
	InstitutionHints []string `yaml:"institution_hints"`

	// StatusKeywords are searched in order; the earliest match wins and
	// ties go to the keyword listed first.
	StatusKeywords []string `yaml:"status_keywords"`

	// Grades lists the grade codes accepted as the last token of a PASS row.
	Grades []string `yaml:"grades"`

	grades map[string]bool
}

// DefaultVocabulary returns the built-in word lists.
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{
		InstitutionHints: []string{"CANTT", "F.G", "F. G", "FG.", "SCHOOL", "COLLEGE"},
		StatusKeywords:   []string{types.StatusPass, types.StatusCompt, types.StatusFail},
		Grades:           []string{"A1", "A", "B", "C", "D", "E", "F", "UF", "R", "M"},
	}
	v.index()
	return v
}

// LoadVocabulary reads a YAML vocabulary file. Lists left out of the file
// keep their defaults. Entries are upper-cased and blank entries dropped.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}

	var file Vocabulary
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing vocabulary %s: %w", path, err)
	}

	v := DefaultVocabulary()
	if hints := normalizeWords(file.InstitutionHints); len(hints) > 0 {
		v.InstitutionHints = hints
	}
	if kws := normalizeWords(file.StatusKeywords); len(kws) > 0 {
		v.StatusKeywords = kws
	}
	if grades := normalizeWords(file.Grades); len(grades) > 0 {
		v.Grades = grades
	}
	v.index()
	return v, nil
}

// IsGrade reports whether token (already upper-cased) is a known grade.
func (v *Vocabulary) IsGrade(token string) bool {
	if v.grades == nil {
		v.index()
	}
	return v.grades[token]
}

func (v *Vocabulary) index() {
	v.grades = make(map[string]bool, len(v.Grades))
	for _, g := range v.Grades {
		v.grades[g] = true
	}
}

func normalizeWords(words []string) []string {
	var out []string
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
