package main

import (
	"strconv"
	"strings"
)

// csvHeader is the fixed Anki import layout. The column order is part of
// the format and must not change.
const csvHeader = "ID,見出語,定義,発音,カタカナ発音,変化,レベル,分節"

// toCSV serializes accepted records, rows joined by "\n". ID and level are
// already-validated digit tokens and are written raw; every other field
// goes through escapeField. Definitions are joined with the line-break
// token before escaping.
func toCSV(records []Record) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	for _, r := range records {
		fields := []string{
			strconv.Itoa(r.ID),
			escapeField(r.Headword),
			escapeField(strings.Join(r.Definitions, lineBreakToken)),
			escapeField(r.Pronunciation),
			escapeField(r.Kana),
			escapeField(r.Conjugation),
			r.Level,
			escapeField(r.Segmentation),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ","))
	}
	return b.String()
}

// escapeField wraps a field containing a comma, quote, or line break in
// double quotes, doubling internal quotes. Anything else passes through
// unchanged.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
