package statblock

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// join concatenates the non-empty parts with sep.
func join(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// space joins non-empty parts with a single space.
func space(parts ...string) string {
	return join(" ", parts...)
}

// com joins non-empty parts with a comma.
func com(parts ...string) string {
	return join(", ", parts...)
}

// prefix returns "pre val", or "" when val is empty.
func prefix(pre, val string) string {
	if val == "" {
		return ""
	}
	return pre + " " + val
}

// signed renders a modifier as +3 or -1.
func signed(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// titleCase turns "range-increment-60" into "Range Increment 60".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
