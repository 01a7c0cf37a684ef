package md

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ConvertOptions configures the HTML to markdown conversion.
type ConvertOptions struct {
	// EmphasizeMacros wraps macro replacements in <strong> so they print bold.
	EmphasizeMacros bool
}

var (
	// horizontal rules are drawn by the formatter, not by field content
	hrPattern = regexp.MustCompile(`(?i)<hr\s*/?>`)
	// paragraphs that only hold whitespace or a line break
	emptyParaPattern = regexp.MustCompile(`(?i)<p>(\s|&nbsp;|<br\s*/?>)*</p>`)
)

// FromHTML converts a rich-text field to markdown after normalizing its
// inline macros. Returns ok=false when the field has no content.
func FromHTML(html string, opts ConvertOptions) (string, bool, error) {
	var normOpts []NormalizeOption
	if opts.EmphasizeMacros {
		normOpts = append(normOpts, WithEmphasis(Strong))
	}
	html = Normalize(html, normOpts...)

	html = strings.ReplaceAll(html, "\n", "")
	html = hrPattern.ReplaceAllString(html, "")
	html = emptyParaPattern.ReplaceAllString(html, "")
	if strings.TrimSpace(html) == "" {
		return "", false, nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", false, err
	}

	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", false, nil
	}
	return markdown, true, nil
}
