package importer

import (
	"strconv"
	"strings"
)

// fields.go holds the row coercion helpers shared by the entity
// importers: comma-separated sub-lists, numeric list filtering and the
// per-row boolean toggles.

// splitList splits a comma-separated cell into trimmed, non-empty
// tokens.
func splitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// splitIntList splits a comma-separated cell into integers. Tokens that
// are not pure digit strings are dropped silently.
func splitIntList(s string) []int32 {
	var out []int32
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if !isDigits(tok) {
			continue
		}
		n, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			continue
		}
		out = append(out, int32(n))
	}
	return out
}

// isDigits reports whether s is non-empty and consists only of ASCII
// digits. Signed or decimal tokens do not qualify.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// boolToggle reports whether an optional toggle column is set to
// "true" (case-insensitive, surrounding whitespace ignored).
func boolToggle(row Row, column string) bool {
	return strings.EqualFold(strings.TrimSpace(row[column]), "true")
}

// trimmed returns the trimmed cell value and whether the column exists
// in the row at all (a missing column and an empty cell produce
// different error messages for some entity types).
func trimmed(row Row, column string) (string, bool) {
	v, ok := row[column]
	return strings.TrimSpace(v), ok
}
