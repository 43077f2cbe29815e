// Package texutil implements the LaTeX metacharacter escaping transform
// shared by the Renderer's variable substitution and the templating engine's
// escape_tex/unescape_tex filters.
package texutil

import "regexp"

var escapable = regexp.MustCompile(`[&%$#_{}]`)

// EscapeString prefixes every occurrence of & % $ # _ { } with a backslash.
// Operates on runes, not bytes, so multibyte UTF-8 sequences are never split.
func EscapeString(s string) string {
	return escapable.ReplaceAllStringFunc(s, func(m string) string {
		return "\\" + m
	})
}

var unescapable = regexp.MustCompile(`\\([&%$#_{}])`)

// UnescapeString is the inverse of EscapeString.
func UnescapeString(s string) string {
	return unescapable.ReplaceAllString(s, "$1")
}

// Escape recursively transforms string leaves of an arbitrary JSON-like
// value (as produced by encoding/json unmarshaling into interface{}),
// leaving the structure and non-string leaves untouched.
func Escape(v any) any {
	return transform(v, EscapeString)
}

// Unescape is the inverse of Escape.
func Unescape(v any) any {
	return transform(v, UnescapeString)
}

func transform(v any, f func(string) string) any {
	switch t := v.(type) {
	case string:
		return f(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			out[k] = transform(elem, f)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = transform(elem, f)
		}
		return out
	default:
		return v
	}
}
