package escpos

import (
	"errors"
	"fmt"
)

// ErrUnrepresentableStyle is returned (wrapped) when a stream element has no
// printer equivalent.
var ErrUnrepresentableStyle = errors.New("unrepresentable style")

// UnrepresentableStyleError reports the element that could not be mapped.
type UnrepresentableStyleError struct {
	Index int
	Run   Run
}

func (e *UnrepresentableStyleError) Error() string {
	switch e.Run.Kind {
	case RunAttr:
		return fmt.Sprintf("unrepresentable style: attribute %s at element %d", e.Run.Attr, e.Index)
	case RunControl:
		return fmt.Sprintf("unrepresentable style: escape sequence %q at element %d", e.Run.Text, e.Index)
	default:
		return fmt.Sprintf("unrepresentable style: element kind %d at element %d", e.Run.Kind, e.Index)
	}
}

// Is lets errors.Is match ErrUnrepresentableStyle.
func (e *UnrepresentableStyleError) Is(target error) bool {
	return target == ErrUnrepresentableStyle
}

// Op is a printer command type.
type Op int

const (
	OpText Op = iota
	OpSetStyle
)

// Command is a single printer instruction.
type Command struct {
	Op        Op
	Text      string // set for OpText
	Bold      bool   // set for OpSetStyle
	Underline bool   // set for OpSetStyle
}

// TextCommand prints s.
func TextCommand(s string) Command {
	return Command{Op: OpText, Text: s}
}

// SetStyle sets both emphasis flags.
func SetStyle(bold, underline bool) Command {
	return Command{Op: OpSetStyle, Bold: bold, Underline: underline}
}

// Translate converts a captured stream into printer commands. The result
// always starts with SetStyle(false, false). Italic is printed as bold since
// receipt printers have no italic font. Any other attribute or escape
// sequence aborts the translation.
func Translate(runs []Run) ([]Command, error) {
	bold, underline := false, false
	cmds := make([]Command, 0, len(runs)+1)
	cmds = append(cmds, SetStyle(bold, underline))

	for i, run := range runs {
		switch run.Kind {
		case RunText:
			cmds = append(cmds, TextCommand(run.Text))
			continue
		case RunAttr:
		default:
			return nil, &UnrepresentableStyleError{Index: i, Run: run}
		}

		switch run.Attr {
		case AttrNormal:
			bold, underline = false, false
		case AttrBold, AttrItalic:
			bold = true
		case AttrUnderline:
			underline = true
		default:
			return nil, &UnrepresentableStyleError{Index: i, Run: run}
		}
		cmds = append(cmds, SetStyle(bold, underline))
	}

	return cmds, nil
}

// TranslateString scans captured terminal output and translates it.
func TranslateString(captured string) ([]Command, error) {
	runs, err := Scan(captured)
	if err != nil {
		return nil, err
	}
	return Translate(runs)
}
