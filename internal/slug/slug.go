// Package slug derives URL-safe slugs from free text names and titles.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	goslug "github.com/goliatone/go-slug"
)

var (
	disallowed  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
	hyphenRuns  = regexp.MustCompile(`-+`)
	suffixStart = 2
)

// Normalize lowercases input, drops everything outside [a-z0-9], whitespace
// and hyphens, turns whitespace runs into a single hyphen and trims hyphens.
// Unicode whitespace such as NBSP counts as a separator.
// Empty input yields an empty slug; callers fall back to the record identifier.
func Normalize(input string) string {
	if input == "" {
		return ""
	}
	out := strings.Map(asciiSpace, strings.ToLower(input))
	out = disallowed.ReplaceAllString(out, "")
	out = whitespace.ReplaceAllString(out, "-")
	out = hyphenRuns.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// Valid reports whether value is already in canonical slug form.
func Valid(value string) bool {
	if value == "" || Normalize(value) != value {
		return false
	}
	return goslug.IsValid(value)
}

// WithSuffix returns the nth collision candidate for base. Values below two
// return base unchanged, so callers can iterate from 1.
func WithSuffix(base string, n int) string {
	if n < suffixStart {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

func asciiSpace(r rune) rune {
	if r != ' ' && unicode.IsSpace(r) {
		return ' '
	}
	return r
}
