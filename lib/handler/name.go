package handler

import (
	"reflect"
	"strings"
	"unicode"
)

// SnakeCase rewrites a CamelCase identifier to lower-case words joined by
// underscores: every upper-case rune starts a new word. "NewProject"
// becomes "new_project". Leading underscores are dropped.
func SnakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimLeft(b.String(), "_")
}

// SplitKey splits a dispatch key into its verb and noun. ok is false unless
// the key has exactly two non-empty underscore-separated segments.
func SplitKey(key string) (verb, noun string, ok bool) {
	parts := strings.Split(key, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// NameOf returns the type name of v, dereferencing pointers, for use as a
// Definition Name. It returns "" for nil and unnamed types.
func NameOf(v any) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
