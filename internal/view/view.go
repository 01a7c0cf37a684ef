// Package view renders command output other than statblocks: listings,
// configuration fields and status messages.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted --output values.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an --output value. Empty means table.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Renderer renders data in a specific format.
type Renderer struct {
	format Format
	writer io.Writer
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format: format,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// RenderTable renders rows under a bold header, columns padded to the
// widest cell.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.renderTableAsJSON(headers, rows)
		return
	case FormatPlain:
		r.renderTableAsPlain(rows)
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) && ansi.StringWidth(val) > widths[i] {
				widths[i] = ansi.StringWidth(val)
			}
		}
	}

	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(r.writer, padRow(headers, widths))
	for _, row := range rows {
		fmt.Fprintln(r.writer, padRow(row, widths))
	}
}

func padRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, val := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(val)
		if i < len(cells)-1 {
			sb.WriteString(strings.Repeat(" ", widths[i]-ansi.StringWidth(val)))
		}
	}
	return sb.String()
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(r.writer, strings.Join(row, "\t"))
	}
}

// RenderField renders "label: value  (source: src)". An empty value is
// shown as "-" and an empty source is omitted.
func (r *Renderer) RenderField(label, value, source string) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	_, _ = bold.Fprintf(r.writer, "%-10s", label+":")
	if value == "" {
		_, _ = dim.Fprintln(r.writer, "-")
		return
	}
	fmt.Fprint(r.writer, value)
	if source != "" {
		_, _ = dim.Fprintf(r.writer, "  (source: %s)", source)
	}
	fmt.Fprintln(r.writer)
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// Note prints a dimmed informational line.
func (r *Renderer) Note(msg string) {
	dim := color.New(color.Faint)
	_, _ = dim.Fprintln(r.writer, msg)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(r.writer, "✓ "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintln(r.writer, "✗ "+msg)
}
