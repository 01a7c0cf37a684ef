// Package md converts statblock rich text (HTML with inline roll macros)
// into markdown and renders that markdown as styled terminal lines.
package md

import (
	"strings"
	"unicode"
)

// NormalizeOption configures Normalize.
type NormalizeOption func(*normalizeOptions)

type normalizeOptions struct {
	emphasize func(string) string
}

// WithEmphasis applies fn to every non-empty replacement before it is
// substituted, e.g. to wrap it in <strong>.
func WithEmphasis(fn func(string) string) NormalizeOption {
	return func(o *normalizeOptions) {
		if fn != nil {
			o.emphasize = fn
		}
	}
}

// Strong wraps s in an HTML <strong> element. Use it with WithEmphasis on
// HTML fields before they are converted to markdown.
func Strong(s string) string {
	return "<strong>" + s + "</strong>"
}

// Normalize replaces inline macros in text with plain display text.
// Text between macros is copied unchanged and replacements are not rescanned.
func Normalize(text string, opts ...NormalizeOption) string {
	o := normalizeOptions{emphasize: func(s string) string { return s }}
	for _, opt := range opts {
		opt(&o)
	}

	tokens := ScanMacros(text)
	if len(tokens) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, tok := range tokens {
		sb.WriteString(text[last:tok.Start])
		if rep := Replacement(tok); rep != "" {
			sb.WriteString(o.emphasize(rep))
		}
		last = tok.End
	}
	sb.WriteString(text[last:])

	return sb.String()
}

// Replacement returns the display text for a single macro.
func Replacement(tok MacroToken) string {
	switch tok.Kind {
	case MacroCheck:
		// @Check[fortitude|dc:33|basic|options:area-effect] -> fortitude/dc:33
		fields := strings.Split(tok.Args, "|")
		if len(fields) >= 2 {
			return fields[0] + "/" + fields[1]
		}
		return fields[0]

	case MacroUUID:
		if tok.HasLabel {
			return tok.Label
		}
		if i := strings.LastIndexByte(tok.Args, '.'); i >= 0 {
			return tok.Args[i+1:]
		}
		return tok.Args

	case MacroLocalize:
		return ""

	case MacroDamage:
		return tok.Args

	case MacroTemplate:
		if tok.HasLabel {
			return tok.Label
		}
		fields := strings.Split(tok.Args, "|")
		shape := strings.TrimPrefix(fields[0], "type:")
		if len(fields) >= 2 {
			return shape + "/" + fields[1]
		}
		return shape

	case MacroGmRoll, MacroAct, MacroBreak:
		if tok.HasLabel {
			return tok.Label
		}
		return tok.Args

	case MacroRoll:
		if tok.HasLabel {
			return tok.Label
		}
		return firstRollToken(tok.Args)
	}

	return ""
}

// firstRollToken returns the formula of "1d20+17 #Counteract" without the
// trailing comment.
func firstRollToken(rest string) string {
	fields := strings.FieldsFunc(rest, unicode.IsSpace)
	if len(fields) == 0 {
		return ""
	}
	tok := fields[0]
	if i := strings.IndexByte(tok, '#'); i >= 0 {
		tok = tok[:i]
	}
	return tok
}
