package jsonutil

import (
	"encoding/json"
	"strings"
)

// FirstBlock returns the first balanced bracket region in text, delimiters
// included. Scanning starts at the first '{' or '['; every opener of either
// kind increments the nesting depth and every closer decrements it. Bracket
// kinds are counted together, pairing is not enforced. Returns "" when no
// balanced region exists before the text ends.
func FirstBlock(text string) string {
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return ""
	}
	depth := 1
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// Unmarshal decodes JSON with one retry after unwrapping a layer of string
// quoting, which some models wrap around their output.
func Unmarshal(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var s string
	if err2 := json.Unmarshal(data, &s); err2 == nil {
		if err3 := json.Unmarshal([]byte(s), v); err3 == nil {
			return nil
		}
	}
	return err
}
