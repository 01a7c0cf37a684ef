// tokenizer_macro.go implements the forward scan for @Kind[args]{label} and
// [[/cmd rest]]{label} macros.
package md

import (
	"fmt"
	"strings"
	"unicode"
)

// ScanMacros scans input once from left to right and returns every recognised
// macro in order. Tokens never overlap. Unknown kinds, unknown commands and
// unterminated brackets are skipped and stay part of the surrounding text.
func ScanMacros(input string) []MacroToken {
	var tokens []MacroToken
	pos := 0

	for pos < len(input) {
		var token MacroToken
		var err error

		switch {
		case input[pos] == '@':
			token, err = parseAtMacro(input, pos)
		case strings.HasPrefix(input[pos:], "[[/"):
			token, err = parseSlashMacro(input, pos)
		default:
			pos++
			continue
		}

		if err != nil {
			// Not a macro - treat the opening character as text
			pos++
			continue
		}

		tokens = append(tokens, token)
		pos = token.End
	}

	return tokens
}

// parseAtMacro attempts to parse @Kind[args]{label} starting at pos.
func parseAtMacro(input string, pos int) (MacroToken, error) {
	startPos := pos
	pos++ // skip '@'

	nameStart := pos
	for pos < len(input) && isMacroNameChar(rune(input[pos])) {
		pos++
	}
	if pos == nameStart {
		return MacroToken{}, fmt.Errorf("empty macro name")
	}
	name := input[nameStart:pos]

	kind, ok := LookupMacro(SyntaxAt, name)
	if !ok {
		return MacroToken{}, fmt.Errorf("unknown macro: %s", name)
	}

	if pos >= len(input) || input[pos] != '[' {
		return MacroToken{}, fmt.Errorf("expected '[' after %s", name)
	}

	args, endPos, err := parseBalanced(input, pos)
	if err != nil {
		return MacroToken{}, err
	}
	if args == "" {
		return MacroToken{}, fmt.Errorf("empty arguments for %s", name)
	}

	token := MacroToken{
		Kind:   kind,
		Syntax: SyntaxAt,
		Args:   args,
		Start:  startPos,
		End:    endPos,
	}
	if label, labelEnd, ok := parseLabel(input, endPos); ok {
		token.Label = label
		token.HasLabel = true
		token.End = labelEnd
	}
	return token, nil
}

// parseSlashMacro attempts to parse [[/cmd rest]]{label} starting at pos.
func parseSlashMacro(input string, pos int) (MacroToken, error) {
	startPos := pos
	pos += len("[[/")

	cmdStart := pos
	for pos < len(input) && !unicode.IsSpace(rune(input[pos])) && input[pos] != ']' {
		pos++
	}
	if pos == cmdStart {
		return MacroToken{}, fmt.Errorf("empty command")
	}
	cmd := input[cmdStart:pos]

	kind, ok := LookupMacro(SyntaxSlash, cmd)
	if !ok {
		return MacroToken{}, fmt.Errorf("unknown command: %s", cmd)
	}

	restStart := pos
	for pos < len(input) && input[pos] != ']' {
		pos++
	}
	if !strings.HasPrefix(input[pos:], "]]") {
		return MacroToken{}, fmt.Errorf("unclosed command: %s", cmd)
	}
	rest := strings.TrimSpace(input[restStart:pos])
	if rest == "" {
		return MacroToken{}, fmt.Errorf("empty command body: %s", cmd)
	}
	pos += len("]]")

	token := MacroToken{
		Kind:   kind,
		Syntax: SyntaxSlash,
		Args:   rest,
		Start:  startPos,
		End:    pos,
	}
	if label, labelEnd, ok := parseLabel(input, pos); ok {
		token.Label = label
		token.HasLabel = true
		token.End = labelEnd
	}
	return token, nil
}

// parseBalanced reads a bracketed argument starting at the '[' at pos,
// allowing nested brackets such as @Damage[2d6[persistent,bleed]].
// Returns the inner text and the position after the closing ']'.
func parseBalanced(input string, pos int) (string, int, error) {
	depth := 0
	start := pos + 1
	for ; pos < len(input); pos++ {
		switch input[pos] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return input[start:pos], pos + 1, nil
			}
		}
	}
	return "", pos, fmt.Errorf("unclosed bracket")
}

// parseLabel reads an optional non-empty {label} at pos.
func parseLabel(input string, pos int) (string, int, bool) {
	if pos >= len(input) || input[pos] != '{' {
		return "", pos, false
	}
	end := strings.IndexByte(input[pos+1:], '}')
	if end <= 0 {
		return "", pos, false
	}
	return input[pos+1 : pos+1+end], pos + end + 2, true
}

// isMacroNameChar returns true if r is valid in an at-macro name.
func isMacroNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
