// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	content := `institution_hints:
  - academy
  - " school "
  - ""
grades:
  - a+
  - A
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ACADEMY", "SCHOOL"}, v.InstitutionHints)
	assert.Equal(t, []string{"A+", "A"}, v.Grades)
	assert.Equal(t, DefaultVocabulary().StatusKeywords, v.StatusKeywords, "omitted lists keep defaults")

	assert.True(t, v.IsInstitutionLine("City Academy Block C"))
	assert.False(t, v.IsInstitutionLine("GOVT GIRLS COLLEGE 6789"))
	assert.True(t, v.IsGrade("A+"))
	assert.False(t, v.IsGrade("A1"))
}

func TestLoadVocabulary_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadVocabulary(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading vocabulary")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("grades: [unterminated"), 0o644))
	_, err = LoadVocabulary(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing vocabulary")
}

func TestDefaultVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	for _, g := range []string{"A1", "A", "B", "C", "D", "E", "F", "UF", "R", "M"} {
		assert.True(t, v.IsGrade(g), g)
	}
	assert.False(t, v.IsGrade("a1"), "grades are matched upper-case")
	assert.Equal(t, []string{"PASS", "COMPT", "FAIL"}, v.StatusKeywords)
}
