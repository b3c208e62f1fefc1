package project

import (
	"strings"
	"unicode"
)

// NormalizeName makes a user-supplied controller name usable as a package
// level identifier by replacing hyphens with underscores.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// ClassName derives a type name from the trailing segment of a module name:
// snake or kebab case becomes CamelCase, so "admin/live_chat" yields
// "LiveChat".
func ClassName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r == '_' || r == '-':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FlattenTestName builds the flattened functional-test stem for a
// controller: the directory and name are joined, forced into absolute form,
// the leading separator stripped and the remaining separators replaced with
// underscores. ("admin", "trackback") yields "admin_trackback".
func FlattenTestName(directory, name string) string {
	full := name
	if directory != "" {
		full = directory + "/" + name
	}
	if !strings.HasPrefix(full, "/") {
		full = "/" + full
	}
	return strings.ReplaceAll(full, "/", "_")[1:]
}
