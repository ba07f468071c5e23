// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns gazette text lines into result records. It holds the
// line heuristics only: header classification, institution code lookup,
// roll-line parsing, and the institution tracker. Nothing here does I/O
// apart from loading a vocabulary file.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/gazette/pkg/types"
)

var rollLineRe = regexp.MustCompile(`^\s*(\d{7})\s+(.+)$`)

// ParseRollLine parses a candidate line of the form "<7-digit roll> <rest>".
// It returns false for anything else. The returned record has no
// institution or page; see Tracker.Stamp.
//
// The rest of the line is cut at the earliest status keyword. Everything
// before the cut is the name. After the cut, periods are dropped and the
// tokens read as: status, [marks], grade. Marks and grade are only read for
// PASS rows, and marks only when the last token is a known grade. Lines with
// no status keyword keep the whole rest as the name.
//
// The keyword search is a plain substring match, so a name containing a
// keyword (e.g. "PASSMORE") is cut inside the name.
func (v *Vocabulary) ParseRollLine(line string) (types.ResultRecord, bool) {
	m := rollLineRe.FindStringSubmatch(line)
	if m == nil {
		return types.ResultRecord{}, false
	}
	rec := types.ResultRecord{RollNo: m[1]}
	body := strings.TrimSpace(m[2])

	cut, status := v.findStatus(body)
	if cut < 0 {
		rec.Name = body
		return rec, true
	}

	rec.Name = strings.TrimSpace(body[:cut])
	tokens := strings.Fields(strings.ReplaceAll(body[cut:], ".", ""))
	if len(tokens) == 0 {
		rec.Status = status
		return rec, true
	}

	rec.Status = strings.ToUpper(tokens[0])
	tail := tokens[1:]
	if rec.Status != types.StatusPass || len(tail) == 0 {
		return rec, true
	}

	last := strings.ToUpper(tail[len(tail)-1])
	if !v.IsGrade(last) {
		return rec, true
	}
	rec.Grade = last
	if len(tail) >= 2 {
		if marks, err := strconv.Atoi(tail[len(tail)-2]); err == nil && marks >= 0 {
			rec.Marks = &marks
		}
	}
	return rec, true
}

// ParseRollLine parses line with the default vocabulary.
func ParseRollLine(line string) (types.ResultRecord, bool) {
	return defaultVocab.ParseRollLine(line)
}

// IsInstitutionLine classifies line with the default vocabulary.
func IsInstitutionLine(line string) bool {
	return defaultVocab.IsInstitutionLine(line)
}

var defaultVocab = DefaultVocabulary()

// findStatus returns the byte offset and keyword of the earliest status
// keyword in body, or -1 when none occurs.
func (v *Vocabulary) findStatus(body string) (int, string) {
	cut, status := -1, ""
	for _, kw := range v.StatusKeywords {
		pos := strings.Index(body, kw)
		if pos != -1 && (cut == -1 || pos < cut) {
			cut, status = pos, kw
		}
	}
	return cut, status
}
