// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package results

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gazette/pkg/types"
)

const headerLine = "RollNo,Name,Status,Marks,Grade,SchoolName,SchoolCode,PageNo\r\n"

func sampleRecords() []types.ResultRecord {
	return []types.ResultRecord{
		{RollNo: "1234567", Name: "JOHN SMITH", Status: "PASS", Marks: types.IntPtr(450), Grade: "A1",
			SchoolName: "GOVT BOYS HIGH SCHOOL CANTT (12345)", SchoolCode: "12345", PageNo: 1},
		{RollNo: "7654321", Name: "JANE DOE", Status: "COMPT",
			SchoolName: "GOVT BOYS HIGH SCHOOL CANTT (12345)", SchoolCode: "12345", PageNo: 1},
		{RollNo: "0000042", Name: `O"BRIEN, PAT`, PageNo: 2,
			SchoolName: "ARMY PUBLIC SCHOOL CANTT"},
	}
}

// writeTable writes recs to path through a Writer in the given mode.
func writeTable(t *testing.T, path string, mode types.WriteMode, recs []types.ResultRecord) *Writer {
	t.Helper()
	w, err := Open(path, mode)
	require.NoError(t, err)
	for _, r := range recs {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())
	return w
}

func TestWriter_Fresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "results.csv")
	w := writeTable(t, path, types.ModeFresh, sampleRecords())
	assert.True(t, w.Created())
	assert.Equal(t, 3, w.Rows())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := headerLine +
		"1234567,JOHN SMITH,PASS,450,A1,GOVT BOYS HIGH SCHOOL CANTT (12345),12345,1\r\n" +
		"7654321,JANE DOE,COMPT,,,GOVT BOYS HIGH SCHOOL CANTT (12345),12345,1\r\n" +
		"0000042,\"O\"\"BRIEN, PAT\",,,,ARMY PUBLIC SCHOOL CANTT,,2\r\n"
	assert.Equal(t, want, string(data))
}

func TestWriter_FreshTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	writeTable(t, path, types.ModeFresh, sampleRecords())
	writeTable(t, path, types.ModeFresh, sampleRecords()[:1])

	recs, err := ReadAll(path)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestWriter_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	first := writeTable(t, path, types.ModeAppend, sampleRecords()[:2])
	assert.True(t, first.Created(), "append to a missing table starts it with a header")

	second := writeTable(t, path, types.ModeAppend, sampleRecords()[2:])
	assert.False(t, second.Created())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "RollNo,Name"), "header written once")

	recs, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), recs)
}

func TestWriter_UnknownMode(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "results.csv"), types.WriteMode("merge"))
	require.Error(t, err)
}

func TestReadAll_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	writeTable(t, path, types.ModeFresh, sampleRecords())

	recs, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), recs)
}

func TestReadAll_DataframeOutput(t *testing.T) {
	// Tables rewritten by dataframe tools use LF endings and float marks.
	path := filepath.Join(t.TempDir(), "results.csv")
	content := "RollNo,Name,Status,Marks,Grade,SchoolName,SchoolCode,PageNo\n" +
		"1234567,JOHN SMITH,PASS,450.0,A1,F.G. SCHOOL (1234),1234.0,3\n" +
		"7654321,JANE DOE,COMPT,,,F.G. SCHOOL (1234),1234.0,3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	recs, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.NotNil(t, recs[0].Marks)
	assert.Equal(t, 450, *recs[0].Marks)
	assert.Nil(t, recs[1].Marks)
	assert.Equal(t, 3, recs[1].PageNo)
}

func TestReadAll_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadAll(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMissingInput))

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ReadAll(empty)
	assert.ErrorContains(t, err, "is empty")

	noRoll := filepath.Join(dir, "noroll.csv")
	require.NoError(t, os.WriteFile(noRoll, []byte("Name,Status\nALI,PASS\n"), 0o644))
	_, err = ReadAll(noRoll)
	assert.ErrorContains(t, err, "no RollNo column")

	badMarks := filepath.Join(dir, "badmarks.csv")
	require.NoError(t, os.WriteFile(badMarks, []byte(headerLine+"1234567,ALI,PASS,abc,A,,,1\r\n"), 0o644))
	_, err = ReadAll(badMarks)
	assert.ErrorContains(t, err, "row 2")
}

func TestStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	var recs []types.ResultRecord
	for i := 0; i < 4; i++ {
		recs = append(recs, sampleRecords()...)
	}
	writeTable(t, path, types.ModeFresh, recs)

	s, err := Stats(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Total)
	assert.Len(t, s.Sample, types.DefaultSampleRows)
	assert.Equal(t, map[string]int{"PASS": 4, "COMPT": 4, StatusNone: 4}, s.ByStatus)

	s, err = Stats(path, 2)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords()[:2], s.Sample)

	var table bytes.Buffer
	s.WriteTable(&table)
	assert.Contains(t, table.String(), "Total rows: 12")
	assert.Contains(t, table.String(), "JOHN SMITH")

	var out bytes.Buffer
	require.NoError(t, s.WriteYAML(&out))
	var decoded Summary
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 12, decoded.Total)
	assert.Equal(t, "1234567", decoded.Sample[0].RollNo)
}

func TestStats_CountsRowsWithBadNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	table := headerLine +
		"1234567,ALI,PASS,abc,A,,,1\r\n" +
		"1234568,SARA,FAIL,,,,,two\r\n" +
		"1234569,OMAR,PASS,450.0,A1,,,3\r\n"
	require.NoError(t, os.WriteFile(path, []byte(table), 0o644))

	s, err := Stats(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Malformed)
	assert.Equal(t, map[string]int{"PASS": 2, "FAIL": 1}, s.ByStatus)

	require.Len(t, s.Sample, 3)
	assert.Nil(t, s.Sample[0].Marks)
	assert.Equal(t, "A", s.Sample[0].Grade)
	assert.Equal(t, 1, s.Sample[0].PageNo)
	assert.Equal(t, 0, s.Sample[1].PageNo)
	assert.Equal(t, types.IntPtr(450), s.Sample[2].Marks)

	var out bytes.Buffer
	s.WriteTable(&out)
	assert.Contains(t, out.String(), "Total rows: 3\nRows with unreadable Marks or PageNo: 2\n")

	_, err = ReadAll(path)
	assert.ErrorContains(t, err, "row 2")
}

func TestStats_MissingTable(t *testing.T) {
	_, err := Stats(filepath.Join(t.TempDir(), "results.csv"), 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMissingInput))
}

func TestDedupe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	recs := sampleRecords()
	dup := recs[0]
	dup.Name = "JOHN SMITH (REPRINT)"
	dup.PageNo = 9
	writeTable(t, path, types.ModeFresh, append(recs, dup, recs[1]))

	res, err := Dedupe(path)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Before)
	assert.Equal(t, 3, res.After)
	assert.Equal(t, 2, res.Removed())

	got, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, recs, got, "first occurrence kept in file order")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestDedupe_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	recs := sampleRecords()
	writeTable(t, path, types.ModeFresh, append(recs, recs...))

	_, err := Dedupe(path)
	require.NoError(t, err)
	once, err := os.ReadFile(path)
	require.NoError(t, err)

	res, err := Dedupe(path)
	require.NoError(t, err)
	assert.Zero(t, res.Removed())
	twice, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestDedupe_MissingTable(t *testing.T) {
	_, err := Dedupe(filepath.Join(t.TempDir(), "results.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMissingInput))
}
