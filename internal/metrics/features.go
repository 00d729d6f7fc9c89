// Package metrics derives cheap, content-free features from payload text.
package metrics

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Features holds basic local features derived from a payload.
type Features struct {
	Bytes int
	Runes int
	Words int
	Lines int

	// JSONValid is true when the payload parses as JSON.
	JSONValid bool
	// JSONList is true when the payload is a JSON array; Items is its length.
	JSONList bool
	Items    int
}

// CountFeatures computes size counts and the JSON shape of s.
func CountFeatures(s string) Features {
	f := Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: countWords(s),
		Lines: countLines(s),
	}
	f.JSONValid, f.JSONList, f.Items = jsonShape(s)
	return f
}

// countWords counts words split on Unicode whitespace.
func countWords(s string) int {
	return len(strings.Fields(s))
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}

// jsonShape reports whether s is valid JSON and, if it is an array, how many
// elements it holds. Elements are not decoded.
func jsonShape(s string) (valid, list bool, items int) {
	if !json.Valid([]byte(s)) {
		return false, false, 0
	}
	if !strings.HasPrefix(strings.TrimLeft(s, " \t\r\n"), "[") {
		return true, false, 0
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err != nil {
		return true, false, 0
	}
	return true, true, len(elems)
}
