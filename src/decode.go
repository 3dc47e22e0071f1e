package main

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText turns raw export bytes into text. EIJIRO exports are
// historically Shift_JIS; tools re-saving them produce UTF-8 or UTF-16, so
// the chain is: UTF-16 by BOM, valid multibyte UTF-8 as-is, then Shift_JIS
// with a raw-UTF-8 fallback.
func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("decode UTF-16: %w", err)
		}
		return string(out), nil
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), nil
	case utf8.Valid(data) && hasHighBytes(data):
		// Real Japanese UTF-8 text essentially never forms valid
		// Shift_JIS, so valid multibyte UTF-8 passes through.
		return string(data), nil
	}

	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		if utf8.Valid(data) {
			return string(data), nil
		}
		return "", fmt.Errorf("decode Shift_JIS: %w", err)
	}
	return string(out), nil
}

func hasHighBytes(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return true
		}
	}
	return false
}
