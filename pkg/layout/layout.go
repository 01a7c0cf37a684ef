// Package layout renders styled text blocks at a fixed column width.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ErrInvalidWidth is returned when the width leaves no room for content.
var ErrInvalidWidth = errors.New("invalid width")

// WrapFunc breaks s into lines no wider than width. Styled (SGR) text must
// be measured by its visible width.
type WrapFunc func(s string, width int) string

// Wordwrap wraps on word boundaries and hard-breaks words that are longer
// than width so that no line overflows.
func Wordwrap(s string, width int) string {
	wrapped := ansi.Wordwrap(s, width, "")
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Hardwrap(line, width, false)
		}
	}
	return strings.Join(lines, "\n")
}

// Option configures RenderItem.
type Option func(*options)

type options struct {
	wrap WrapFunc
}

// WithWrapper replaces the default word-wrap primitive.
func WithWrapper(fn WrapFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.wrap = fn
		}
	}
}

// RenderItem lays out content as a hanging-indent item: the first line is
// prefixed with marker and every following line is indented by the marker's
// visible width. No line is wider than width.
func RenderItem(marker, content string, width int, opts ...Option) ([]string, error) {
	o := options{wrap: Wordwrap}
	for _, opt := range opts {
		opt(&o)
	}

	indent := ansi.StringWidth(marker)
	inner := width - indent
	if inner < 1 {
		return nil, fmt.Errorf("%w: %d columns leaves no room after marker %q", ErrInvalidWidth, width, marker)
	}

	if content == "" {
		return []string{marker}, nil
	}

	wrapped := strings.Split(o.wrap(content, inner), "\n")
	pad := strings.Repeat(" ", indent)

	lines := make([]string, 0, len(wrapped))
	for i, line := range wrapped {
		line = strings.TrimRight(line, " ")
		if i == 0 {
			lines = append(lines, marker+line)
			continue
		}
		lines = append(lines, pad+line)
	}
	return lines, nil
}

// Rule returns a horizontal rule of width columns drawn with ch.
func Rule(ch string, width int) string {
	if width < 1 {
		return ""
	}
	return strings.Repeat(ch, width)
}

// Center pads s on the left so it is centred within width.
func Center(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}
