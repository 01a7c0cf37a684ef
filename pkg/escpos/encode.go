package escpos

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Font selects one of the printer's built-in fonts.
type Font byte

const (
	FontA Font = 0
	FontB Font = 1
)

// ParseFont maps "a" or "b" to a Font.
func ParseFont(s string) (Font, error) {
	switch s {
	case "a", "A":
		return FontA, nil
	case "b", "B":
		return FontB, nil
	}
	return FontA, fmt.Errorf("unknown font %q (want a or b)", s)
}

func (f Font) String() string {
	if f == FontB {
		return "b"
	}
	return "a"
}

// EncodeOptions configures Encode.
type EncodeOptions struct {
	Font Font
	// Charmap encodes text; code page 437 when nil.
	Charmap *charmap.Charmap
}

var (
	cmdInit      = []byte{0x1b, '@'}
	cmdFont      = []byte{0x1b, 'M'}
	cmdBold      = []byte{0x1b, 'E'}
	cmdUnderline = []byte{0x1b, '-'}
	cmdCut       = []byte{0x1d, 'V', 66, 0}
)

// unsupported is written for runes the code page cannot print.
const unsupported = '?'

// substitutes maps common typographic runes missing from code page 437 to
// printable look-alikes.
var substitutes = map[rune]string{
	'•':      "\u2219", // bullet operator, 0xF9
	'‘':      "'",
	'’':      "'",
	'“':      "\"",
	'”':      "\"",
	'–':      "-",
	'—':      "-",
	'…':      "...",
	'\u00a0': " ",
}

// Encode renders commands as ESC/POS bytes. Output starts with a printer
// reset and font selection. Characters missing from the code page are
// substituted with a look-alike or printed as '?'.
func Encode(cmds []Command, opts EncodeOptions) ([]byte, error) {
	cm := opts.Charmap
	if cm == nil {
		cm = charmap.CodePage437
	}

	var buf bytes.Buffer
	buf.Write(cmdInit)
	buf.Write(cmdFont)
	buf.WriteByte(byte(opts.Font))

	for i, cmd := range cmds {
		switch cmd.Op {
		case OpText:
			encodeText(&buf, cm, cmd.Text)
		case OpSetStyle:
			buf.Write(cmdBold)
			buf.WriteByte(flag(cmd.Bold))
			buf.Write(cmdUnderline)
			buf.WriteByte(flag(cmd.Underline))
		default:
			return nil, fmt.Errorf("unknown command op %d at command %d", cmd.Op, i)
		}
	}

	return buf.Bytes(), nil
}

func encodeText(buf *bytes.Buffer, cm *charmap.Charmap, text string) {
	for _, r := range text {
		if b, ok := cm.EncodeRune(r); ok {
			buf.WriteByte(b)
			continue
		}
		sub, ok := substitutes[r]
		if !ok {
			buf.WriteByte(unsupported)
			continue
		}
		for _, sr := range sub {
			if b, ok := cm.EncodeRune(sr); ok {
				buf.WriteByte(b)
			} else {
				buf.WriteByte(unsupported)
			}
		}
	}
}

// Cut returns the feed-and-cut command.
func Cut() []byte {
	return append([]byte(nil), cmdCut...)
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
