// Package expr expands ${env.KEY} references in configuration documents.
package expr

import (
	"os"
	"strings"
)

const envPrefix = "${env."

// LookupFunc resolves an environment key
type LookupFunc func(key string) string

// Expand replaces every ${env.KEY} in text with the value of KEY in the
// process environment, unset keys expand to an empty string.
func Expand(text string) string {
	return ExpandWith(text, os.Getenv)
}

// ExpandWith replaces every ${env.KEY} in text using lookup.
// A reference without closing brace is copied verbatim, a reference whose
// key is not an identifier keeps its prefix and is scanned again after it.
func ExpandWith(text string, lookup LookupFunc) string {
	if !strings.Contains(text, envPrefix) {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	for {
		start := strings.Index(text, envPrefix)
		if start == -1 {
			out.WriteString(text)
			return out.String()
		}
		out.WriteString(text[:start])
		rest := text[start+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end == -1 {
			out.WriteString(text[start:])
			return out.String()
		}
		key := rest[:end]
		if !isKey(key) {
			out.WriteString(envPrefix)
			text = rest
			continue
		}
		out.WriteString(lookup(key))
		text = rest[end+1:]
	}
}

func isKey(key string) bool {
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
