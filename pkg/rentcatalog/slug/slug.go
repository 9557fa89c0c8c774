// Package slug derives stable, URL-safe identifiers from product display
// names. Derivation is pure and deterministic; uniqueness is the caller's
// responsibility (the metadata store enforces it at create time).
package slug

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidChars  = regexp.MustCompile(`[^\w-]+`)
)

// Make lowercases the name, replaces each run of whitespace with a single
// hyphen, and strips every remaining character that is not alphanumeric,
// underscore, or hyphen. A name with no eligible characters yields the
// empty string; callers must treat that as a validation failure, never as
// a valid identifier.
func Make(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return invalidChars.ReplaceAllString(s, "")
}
