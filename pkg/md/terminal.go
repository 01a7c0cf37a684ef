package md

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/open-cli-collective/statblock-cli/pkg/layout"
)

// termParser is a goldmark parser configured for terminal rendering.
var termParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
)

// BulletMarker prefixes unordered list items.
const BulletMarker = "• "

// Terminal renders markdown as styled terminal lines no wider than width.
// Emphasis becomes SGR italic, strong and headings become SGR bold. Blocks
// are not separated by blank lines, which keeps receipts short.
func Terminal(markdown string, width int) (string, error) {
	if width < 1 {
		return "", fmt.Errorf("%w: %d", layout.ErrInvalidWidth, width)
	}
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	source := []byte(markdown)
	doc := termParser.Parser().Parse(text.NewReader(source))

	r := &termRenderer{source: source}
	lines, err := r.renderBlocks(doc, width)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// termRenderer holds state during AST rendering.
type termRenderer struct {
	source []byte
	styles []string
}

// renderBlocks renders all block children of n.
func (r *termRenderer) renderBlocks(n ast.Node, width int) ([]string, error) {
	var lines []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		block, err := r.renderBlock(child, width)
		if err != nil {
			return nil, err
		}
		lines = append(lines, block...)
	}
	return lines, nil
}

// renderBlock renders a single block node.
func (r *termRenderer) renderBlock(n ast.Node, width int) ([]string, error) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return r.wrap(r.inline(node), width), nil
	case *ast.Heading:
		return r.wrap(r.withStyle(Bold, func() string { return r.inlineChildren(node) }), width), nil
	case *ast.List:
		return r.renderList(node, width)
	case *ast.ListItem:
		return r.renderListItem(node, BulletMarker, width)
	case *ast.ThematicBreak:
		return []string{layout.Rule("─", width)}, nil
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.renderCode(node, width), nil
	case *ast.Blockquote:
		return r.renderIndented(node, "> ", width)
	case *extast.Table:
		return r.renderTable(node, width), nil
	default:
		// HTML blocks and unknown blocks carry nothing printable
		return nil, nil
	}
}

func (r *termRenderer) renderList(n *ast.List, width int) ([]string, error) {
	var lines []string
	index := n.Start
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := BulletMarker
		if n.IsOrdered() {
			marker = strconv.Itoa(index) + ". "
			index++
		}
		itemLines, err := r.renderListItem(item, marker, width)
		if err != nil {
			return nil, err
		}
		lines = append(lines, itemLines...)
	}
	return lines, nil
}

// renderListItem lays out the first text block of an item with a hanging
// indent and indents any further blocks (e.g. nested lists) under it.
func (r *termRenderer) renderListItem(n *ast.ListItem, marker string, width int) ([]string, error) {
	var lines []string
	pad := strings.Repeat(" ", ansi.StringWidth(marker))
	first := true

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if first {
				item, err := layout.RenderItem(marker, r.inline(child), width)
				if err != nil {
					return nil, err
				}
				lines = append(lines, item...)
				first = false
				continue
			}
		}

		block, err := r.renderBlock(child, width-len(pad))
		if err != nil {
			return nil, err
		}
		for _, line := range block {
			if first {
				lines = append(lines, marker+line)
				first = false
				continue
			}
			lines = append(lines, pad+line)
		}
	}

	if first {
		lines = append(lines, strings.TrimRight(marker, " "))
	}
	return lines, nil
}

func (r *termRenderer) renderIndented(n ast.Node, prefix string, width int) ([]string, error) {
	inner, err := r.renderBlocks(n, width-ansi.StringWidth(prefix))
	if err != nil {
		return nil, err
	}
	for i, line := range inner {
		inner[i] = prefix + line
	}
	return inner, nil
}

func (r *termRenderer) renderCode(n ast.Node, width int) []string {
	var lines []string
	segments := n.Lines()
	for i := 0; i < segments.Len(); i++ {
		seg := segments.At(i)
		line := strings.TrimRight(string(seg.Value(r.source)), "\n")
		lines = append(lines, strings.Split(ansi.Hardwrap(line, width, true), "\n")...)
	}
	return lines
}

// renderTable prints rows with cells separated by two spaces; header cells
// are bold.
func (r *termRenderer) renderTable(n *extast.Table, width int) []string {
	var lines []string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		_, isHeader := row.(*extast.TableHeader)
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			content := r.inline(cell)
			if isHeader {
				content = Styled(Bold, ansi.Strip(content))
			}
			cells = append(cells, content)
		}
		lines = append(lines, r.wrap(strings.Join(cells, "  "), width)...)
	}
	return lines
}

func (r *termRenderer) wrap(s string, width int) []string {
	if s == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(layout.Wordwrap(s, width), "\n") {
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}

// inline renders the inline children of a block.
func (r *termRenderer) inline(n ast.Node) string {
	return strings.TrimSpace(r.inlineChildren(n))
}

func (r *termRenderer) inlineChildren(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		sb.WriteString(r.inlineNode(child))
	}
	return sb.String()
}

func (r *termRenderer) inlineNode(n ast.Node) string {
	switch node := n.(type) {
	case *ast.Text:
		s := string(node.Segment.Value(r.source))
		switch {
		case node.HardLineBreak():
			s += "\n"
		case node.SoftLineBreak():
			s += " "
		}
		return s
	case *ast.String:
		return string(node.Value)
	case *ast.Emphasis:
		style := Italic
		if node.Level >= 2 {
			style = Bold
		}
		return r.withStyle(style, func() string { return r.inlineChildren(node) })
	case *ast.CodeSpan:
		return r.inlineChildren(node)
	case *ast.Link:
		return r.inlineChildren(node)
	case *ast.AutoLink:
		return string(node.URL(r.source))
	case *ast.Image:
		return r.inlineChildren(node)
	case *extast.Strikethrough:
		return r.inlineChildren(node)
	case *ast.RawHTML:
		return ""
	default:
		return r.inlineChildren(node)
	}
}

// withStyle renders fn's output in style. Closing a style resets all
// attributes and re-applies the enclosing ones.
func (r *termRenderer) withStyle(style string, fn func() string) string {
	r.styles = append(r.styles, style)
	inner := fn()
	r.styles = r.styles[:len(r.styles)-1]
	if inner == "" {
		return ""
	}
	return style + inner + Reset + strings.Join(r.styles, "")
}
