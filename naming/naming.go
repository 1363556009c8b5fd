// Package naming turns user-supplied identifiers into protected names:
// canonical keys that are safe to use as registry keys, file names and
// identifiers.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the words of a protected name.
const Separator = '_'

// Protect returns the protected form of name.
//
// Accents are folded to their base letters, letters are lowercased, every run
// of whitespace or separator punctuation becomes a single underscore, and all
// remaining characters outside [a-z0-9] are dropped. Leading and trailing
// underscores are trimmed. Protect never fails and is idempotent; the result
// may be empty when name has no usable characters.
func Protect(name string) string {
	folded := foldMarks(name)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case isWordRune(r):
			if pendingSep && b.Len() > 0 {
				b.WriteRune(Separator)
			}
			pendingSep = false
			b.WriteRune(r)
		case isSeparator(r):
			pendingSep = true
		}
	}
	return b.String()
}

// IsProtected reports whether name is already in protected form.
func IsProtected(name string) bool {
	return Protect(name) == name
}

func foldMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '_', '-', '.', '/', '\\', ':':
		return true
	}
	return false
}
