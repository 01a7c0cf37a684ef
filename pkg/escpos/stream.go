// Package escpos translates captured terminal output into ESC/POS receipt
// printer commands.
package escpos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Attribute is an SGR (Select Graphic Rendition) parameter.
type Attribute int

const (
	AttrNormal    Attribute = 0
	AttrBold      Attribute = 1
	AttrFaint     Attribute = 2
	AttrItalic    Attribute = 3
	AttrUnderline Attribute = 4
	AttrBlink     Attribute = 5
	AttrReverse   Attribute = 7
)

var attributeNames = map[Attribute]string{
	AttrNormal:    "normal",
	AttrBold:      "bold",
	AttrFaint:     "faint",
	AttrItalic:    "italic",
	AttrUnderline: "underline",
	AttrBlink:     "blink",
	AttrReverse:   "reverse",
}

func (a Attribute) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return "sgr(" + strconv.Itoa(int(a)) + ")"
}

// RunKind distinguishes the elements of a captured stream.
type RunKind int

const (
	RunText    RunKind = iota // literal text
	RunAttr                   // one SGR attribute change
	RunControl                // any other escape sequence
)

// Run is one element of a captured style+text stream.
type Run struct {
	Kind RunKind
	Text string    // set for RunText, and the raw sequence for RunControl
	Attr Attribute // set for RunAttr
}

// Text returns a literal text run.
func Text(s string) Run {
	return Run{Kind: RunText, Text: s}
}

// Attr returns an attribute change run.
func Attr(a Attribute) Run {
	return Run{Kind: RunAttr, Attr: a}
}

// Scan splits captured terminal output into text runs and style runs.
// "ESC[1;4m" yields two attribute runs and "ESC[m" yields AttrNormal. Escape
// sequences other than SGR are returned as RunControl.
func Scan(captured string) ([]Run, error) {
	var runs []Run
	p := ansi.NewParser()
	pos := 0

	for pos < len(captured) {
		next := strings.IndexByte(captured[pos:], ansi.ESC)
		if next < 0 {
			runs = append(runs, Text(captured[pos:]))
			break
		}
		if next > 0 {
			runs = append(runs, Text(captured[pos:pos+next]))
			pos += next
		}

		seq, _, n, state := ansi.DecodeSequence(captured[pos:], ansi.NormalState, p)
		if state != ansi.NormalState {
			return nil, fmt.Errorf("unterminated escape sequence at offset %d", pos)
		}
		run, err := sequenceRuns(seq, p)
		if err != nil {
			return nil, fmt.Errorf("%w at offset %d", err, pos)
		}
		runs = append(runs, run...)
		pos += n
	}

	return runs, nil
}

// sequenceRuns classifies one decoded escape sequence.
func sequenceRuns(seq string, p *ansi.Parser) ([]Run, error) {
	control := []Run{{Kind: RunControl, Text: seq}}

	if isStringSequence(seq) {
		return control, nil
	}

	cmd := ansi.Cmd(p.Command())
	if cmd.Final() == 0 {
		return nil, fmt.Errorf("invalid escape sequence %q", seq)
	}
	if !ansi.HasCsiPrefix(seq) || cmd.Final() != 'm' || cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return control, nil
	}

	params := p.Params()
	if len(params) == 0 {
		return []Run{Attr(AttrNormal)}, nil
	}

	runs := make([]Run, 0, len(params))
	for _, param := range params {
		// colon sub-parameters (e.g. 4:3) are not plain SGR values
		if param.HasMore() {
			return control, nil
		}
		runs = append(runs, Attr(Attribute(param.Param(int(AttrNormal)))))
	}
	return runs, nil
}

// isStringSequence reports OSC, DCS, APC, SOS and PM sequences.
func isStringSequence(seq string) bool {
	return ansi.HasOscPrefix(seq) || ansi.HasDcsPrefix(seq) || ansi.HasApcPrefix(seq) ||
		ansi.HasSosPrefix(seq) || ansi.HasPmPrefix(seq)
}
