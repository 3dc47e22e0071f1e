package main

import (
	"strings"
	"unicode"
)

// boundaryMarker prefixes every headword line in an EIJIRO-style export.
const boundaryMarker = "■"

const (
	defSeparator   = "  " // double space between the headword segment and the body
	glossSeparator = " : "
	exampleMarker  = boundaryMarker + "・"
	lineBreakToken = "<br>"
)

// rejectReason says why a group produced no record. Rejection is always a
// silent skip externally; the reason exists so tests can tell the cases
// apart.
type rejectReason int

const (
	rejectNone rejectReason = iota
	rejectTooShort
	rejectNoDefinitions
	rejectNoMeta
)

// parseEntries converts a full decoded export into flashcard records.
// Malformed groups are skipped, so the worst case is an empty result, never
// an error. IDs are assigned in acceptance order starting at 1.
func parseEntries(text string) []Record {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	var records []Record
	id := 1
	for _, group := range groupEntries(lines) {
		rec, reason := parseGroup(group)
		if reason != rejectNone {
			continue
		}
		rec.ID = id
		id++
		records = append(records, rec)
	}
	return records
}

// normalizeHeadword strips every boundary marker from the line and cuts it
// at the first whitespace or '{', yielding the line's headword key.
func normalizeHeadword(line string) string {
	s := strings.ReplaceAll(line, boundaryMarker, "")
	if i := strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '{'
	}); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// groupEntries partitions trimmed, blank-filtered lines into maximal runs
// sharing one headword key. Only marker-bearing lines can move the word
// boundary; metadata and continuation lines extend the current group.
func groupEntries(lines []string) [][]string {
	var groups [][]string
	var buf []string
	key := ""
	for _, line := range lines {
		if strings.HasPrefix(line, boundaryMarker) {
			if k := normalizeHeadword(line); k != key {
				if len(buf) > 0 {
					groups = append(groups, buf)
				}
				buf = nil
				key = k
			}
		}
		buf = append(buf, line)
	}
	if len(buf) > 0 {
		groups = append(groups, buf)
	}
	return groups
}

// parseGroup turns one line group into a record, or says why it could not.
func parseGroup(group []string) (Record, rejectReason) {
	if len(group) < 2 {
		return Record{}, rejectTooShort
	}
	headword := normalizeHeadword(group[0])

	// The first line carrying the level tag ends the definition window.
	metaIndex := len(group)
	for i, line := range group {
		if strings.Contains(line, levelMarker) {
			metaIndex = i
			break
		}
	}

	defs := extractDefinitions(group[:metaIndex], headword)
	if len(defs) == 0 {
		return Record{}, rejectNoDefinitions
	}

	if metaIndex == len(group) {
		return Record{}, rejectNoMeta
	}
	meta, ok := extractMeta(group[metaIndex])
	if !ok {
		return Record{}, rejectNoMeta
	}

	return Record{
		Headword:      headword,
		Definitions:   defs,
		Pronunciation: meta.pronunciation,
		Kana:          meta.kana,
		Conjugation:   meta.conjugation,
		Segmentation:  meta.segmentation,
		Level:         meta.level,
	}, rejectNone
}

// extractDefinitions collects "<prefix> : <gloss>" strings from the lines
// before the metadata boundary. Lines that fail any check are skipped, never
// fatal: only lines re-asserting this entry's own headword count, and each
// needs a double-space split plus a " : " separator with non-empty halves.
func extractDefinitions(window []string, headword string) []string {
	var defs []string
	want := boundaryMarker + headword
	for _, line := range window {
		if !strings.HasPrefix(line, want) {
			continue
		}

		parts := strings.Split(line, defSeparator)
		if len(parts) < 2 {
			continue
		}
		// Rejoin in case the gloss itself contains the separator.
		remainder := strings.Join(parts[1:], defSeparator)

		pieces := strings.Split(remainder, glossSeparator)
		if len(pieces) < 2 {
			continue
		}
		prefix := pieces[0]
		gloss := strings.TrimSpace(strings.Join(pieces[1:], glossSeparator))
		gloss = strings.ReplaceAll(gloss, exampleMarker, lineBreakToken+"・")
		if prefix == "" || gloss == "" {
			continue
		}

		defs = append(defs, prefix+glossSeparator+gloss)
	}
	return defs
}
