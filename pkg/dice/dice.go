// Package dice parses and combines dice notation such as "2d6" or "4".
package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedDice is returned (wrapped) when a string is not dice notation.
var ErrMalformedDice = errors.New("malformed dice")

// MalformedDiceError reports the offending input.
type MalformedDiceError struct {
	Input string
}

func (e *MalformedDiceError) Error() string {
	return fmt.Sprintf("malformed dice: %q", e.Input)
}

// Is lets errors.Is match ErrMalformedDice.
func (e *MalformedDiceError) Is(target error) bool {
	return target == ErrMalformedDice
}

// Term is a number of dice with the same side count.
// Sides == 1 is a flat value and renders without a die.
type Term struct {
	Count int
	Sides int
}

// String renders "N" for flat values and "NdS" otherwise.
func (t Term) String() string {
	if t.Sides <= 1 {
		return strconv.Itoa(t.Count)
	}
	return strconv.Itoa(t.Count) + "d" + strconv.Itoa(t.Sides)
}

// Scale multiplies the dice count by k.
func (t Term) Scale(k int) Term {
	return Term{Count: t.Count * k, Sides: t.Sides}
}

// Parse reads an optional count followed by an optional "d" and side count.
// Missing parts default to 1, so "d6" is 1d6 and "" is the flat value 1.
func Parse(s string) (Term, error) {
	pos := 0
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	countText := s[:pos]

	sidesText := ""
	if pos < len(s) {
		if s[pos] != 'd' {
			return Term{}, &MalformedDiceError{Input: s}
		}
		pos++
		start := pos
		for pos < len(s) && isDigit(s[pos]) {
			pos++
		}
		if pos == start || pos != len(s) {
			return Term{}, &MalformedDiceError{Input: s}
		}
		sidesText = s[start:]
	}

	t := Term{Count: 1, Sides: 1}
	var err error
	if countText != "" {
		if t.Count, err = strconv.Atoi(countText); err != nil {
			return Term{}, &MalformedDiceError{Input: s}
		}
	}
	if sidesText != "" {
		if t.Sides, err = strconv.Atoi(sidesText); err != nil {
			return Term{}, &MalformedDiceError{Input: s}
		}
		if t.Sides < 1 {
			return Term{}, &MalformedDiceError{Input: s}
		}
	}
	return t, nil
}

// Combine merges a and b when they share a side count; otherwise both are
// kept in order.
func Combine(a, b Term) Expression {
	if a.Sides == b.Sides {
		return Expression{{Count: a.Count + b.Count, Sides: a.Sides}}
	}
	return Expression{a, b}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Expression is an ordered sum of terms.
type Expression []Term

// ParseExpression parses terms joined by "+", e.g. "2d6+1d4+3".
func ParseExpression(s string) (Expression, error) {
	parts := strings.Split(s, "+")
	expr := make(Expression, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, &MalformedDiceError{Input: s}
		}
		t, err := Parse(part)
		if err != nil {
			return nil, &MalformedDiceError{Input: s}
		}
		expr = append(expr, t)
	}
	return expr, nil
}

// Append adds t after the last term, merging only with that last term.
func (e Expression) Append(t Term) Expression {
	out := make(Expression, 0, len(e)+1)
	out = append(out, e...)
	if len(out) == 0 {
		return append(out, t)
	}
	last := out[len(out)-1]
	return append(out[:len(out)-1], Combine(last, t)...)
}

// Merge appends every term of other in order.
func (e Expression) Merge(other Expression) Expression {
	out := e
	for _, t := range other {
		out = out.Append(t)
	}
	return out
}

// Scale multiplies every term's count by k.
func (e Expression) Scale(k int) Expression {
	out := make(Expression, len(e))
	for i, t := range e {
		out[i] = t.Scale(k)
	}
	return out
}

func (e Expression) String() string {
	parts := make([]string, len(e))
	for i, t := range e {
		parts[i] = t.String()
	}
	return strings.Join(parts, "+")
}
