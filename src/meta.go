package main

import "strings"

// Bracketed tags on the metadata line. Fixed literals of the export format,
// not configurable.
const (
	levelMarker = "【レベル】"
	pronMarker  = "【発音】"
	conjMarker  = "【変化】"
	segMarker   = "【分節】"
	kanaMarker  = "【＠】"
)

const fullWidthComma = "、"

type metaInfo struct {
	level         string
	pronunciation string
	kana          string
	conjugation   string
	segmentation  string
}

// extractMeta scans one metadata line for the bracketed tags. The level
// digits are mandatory; every other field defaults to the empty string when
// its tag is absent.
func extractMeta(line string) (metaInfo, bool) {
	if line == "" || !strings.Contains(line, levelMarker) {
		return metaInfo{}, false
	}

	m := metaInfo{
		level:         digitsAfter(line, levelMarker),
		pronunciation: fieldAfter(line, pronMarker, fullWidthComma),
		conjugation:   fieldAfter(line, conjMarker, fullWidthComma),
		segmentation:  fieldAfter(line, segMarker, fullWidthComma),
		kana:          strings.TrimSuffix(fieldAfter(line, kanaMarker, "【"), fullWidthComma),
	}
	if m.level == "" {
		return metaInfo{}, false
	}
	return m, true
}

// digitsAfter returns the run of decimal digits immediately following
// marker, or "" if the marker is absent or not followed by a digit.
func digitsAfter(line, marker string) string {
	i := strings.Index(line, marker)
	if i < 0 {
		return ""
	}
	rest := line[i+len(marker):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	return rest[:end]
}

// fieldAfter returns the text following marker up to the next occurrence of
// stop, or to the end of the line.
func fieldAfter(line, marker, stop string) string {
	i := strings.Index(line, marker)
	if i < 0 {
		return ""
	}
	rest := line[i+len(marker):]
	if j := strings.Index(rest, stop); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
