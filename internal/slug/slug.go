package slug

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// MaxLen bounds generated slugs.
	MaxLen = 60
	// Fallback is used when the input reduces to nothing.
	Fallback = "generated-tf"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make normalizes free text into a filesystem-safe slug: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, outer hyphens trimmed,
// truncated to maxLen.
func Make(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = MaxLen
	}
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = Fallback
	}
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// FromSpec builds a slug from the first eight words of a spec text.
func FromSpec(specText string) string {
	words := strings.Fields(specText)
	if len(words) > 8 {
		words = words[:8]
	}
	head := strings.Join(words, " ")
	if head == "" {
		head = "generated tf"
	}
	return Make(head, MaxLen)
}

// Allocate returns a path under base, named after text, that does not
// exist yet, appending -2, -3, ... on collision. It only computes the
// name; the caller creates the directory, so concurrent invocations can
// race between allocation and creation.
func Allocate(base, text string) string {
	s := FromSpec(text)
	candidate := filepath.Join(base, s)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate
	}
	for i := 2; ; i++ {
		alt := filepath.Join(base, fmt.Sprintf("%s-%d", s, i))
		if _, err := os.Stat(alt); os.IsNotExist(err) {
			return alt
		}
	}
}
