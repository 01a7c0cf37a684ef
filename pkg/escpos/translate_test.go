package escpos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_TextOnly(t *testing.T) {
	input := "Goblin Warrior\nCreature 1\n"
	cmds, err := Translate([]Run{Text(input)})
	require.NoError(t, err)
	assert.Equal(t, []Command{SetStyle(false, false), TextCommand(input)}, cmds)
}

func TestTranslate_Empty(t *testing.T) {
	cmds, err := Translate(nil)
	require.NoError(t, err)
	assert.Equal(t, []Command{SetStyle(false, false)}, cmds)
}

func TestTranslate_Transitions(t *testing.T) {
	tests := []struct {
		name string
		runs []Run
		want []Command
	}{
		{
			name: "bold then normal",
			runs: []Run{Attr(AttrBold), Text("Melee"), Attr(AttrNormal)},
			want: []Command{SetStyle(false, false), SetStyle(true, false), TextCommand("Melee"), SetStyle(false, false)},
		},
		{
			name: "underline keeps bold",
			runs: []Run{Attr(AttrBold), Attr(AttrUnderline), Text("x")},
			want: []Command{SetStyle(false, false), SetStyle(true, false), SetStyle(true, true), TextCommand("x")},
		},
		{
			name: "bold keeps underline",
			runs: []Run{Attr(AttrUnderline), Attr(AttrBold)},
			want: []Command{SetStyle(false, false), SetStyle(false, true), SetStyle(true, true)},
		},
		{
			name: "italic prints bold",
			runs: []Run{Attr(AttrUnderline), Attr(AttrItalic), Text("Trip")},
			want: []Command{SetStyle(false, false), SetStyle(false, true), SetStyle(true, true), TextCommand("Trip")},
		},
		{
			name: "normal clears both",
			runs: []Run{Attr(AttrBold), Attr(AttrUnderline), Attr(AttrNormal)},
			want: []Command{SetStyle(false, false), SetStyle(true, false), SetStyle(true, true), SetStyle(false, false)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.runs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslate_Unrepresentable(t *testing.T) {
	tests := []struct {
		name string
		runs []Run
	}{
		{"blink", []Run{Text("a"), Attr(AttrBlink), Text("b")}},
		{"faint", []Run{Attr(AttrFaint)}},
		{"colour", []Run{Attr(Attribute(31))}},
		{"bold off", []Run{Attr(AttrBold), Attr(Attribute(22))}},
		{"control", []Run{{Kind: RunControl, Text: "\x1b[2K"}}},
		{"unknown kind", []Run{{Kind: RunKind(42)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, err := Translate(tt.runs)
			require.Error(t, err)
			assert.Nil(t, cmds)
			assert.True(t, errors.Is(err, ErrUnrepresentableStyle))

			var use *UnrepresentableStyleError
			require.ErrorAs(t, err, &use)
			assert.Contains(t, err.Error(), "unrepresentable style")
		})
	}
}

func TestTranslate_ErrorNamesElement(t *testing.T) {
	_, err := Translate([]Run{Text("a"), Attr(AttrBlink)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blink")
	assert.Contains(t, err.Error(), "element 1")
}

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Run
	}{
		{"plain", "hello\n", []Run{Text("hello\n")}},
		{"empty", "", nil},
		{"bold", "\x1b[1mStrike\x1b[0m", []Run{Attr(AttrBold), Text("Strike"), Attr(AttrNormal)}},
		{"combined", "\x1b[1;4mX", []Run{Attr(AttrBold), Attr(AttrUnderline), Text("X")}},
		{"bare reset", "a\x1b[mb", []Run{Text("a"), Attr(AttrNormal), Text("b")}},
		{"leading zero", "\x1b[01m", []Run{Attr(AttrBold)}},
		{"erase line", "\x1b[2K", []Run{{Kind: RunControl, Text: "\x1b[2K"}}},
		{"two byte escape", "\x1bc", []Run{{Kind: RunControl, Text: "\x1bc"}}},
		{"colour", "\x1b[31mred", []Run{Attr(Attribute(31)), Text("red")}},
		{"empty parameter", "\x1b[;1m", []Run{Attr(AttrNormal), Attr(AttrBold)}},
		{"sub-parameters", "\x1b[4:3m", []Run{{Kind: RunControl, Text: "\x1b[4:3m"}}},
		{"private prefix", "\x1b[?25l", []Run{{Kind: RunControl, Text: "\x1b[?25l"}}},
		{"charset", "\x1b(Bx", []Run{{Kind: RunControl, Text: "\x1b(B"}, Text("x")}},
		{"title", "\x1b]0;goblin\x07ok", []Run{{Kind: RunControl, Text: "\x1b]0;goblin\x07"}, Text("ok")}},
		{"unicode text", "• \x1b[1mé\x1b[0m", []Run{Text("• "), Attr(AttrBold), Text("é"), Attr(AttrNormal)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scan(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_Malformed(t *testing.T) {
	for _, input := range []string{"abc\x1b", "\x1b[1", "\x1b[1\x07m", "\x1b\x07", "\x1b]0;title"} {
		_, err := Scan(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTranslateString(t *testing.T) {
	cmds, err := TranslateString("\x1b[1mAC\x1b[0m 18")
	require.NoError(t, err)
	assert.Equal(t, []Command{
		SetStyle(false, false),
		SetStyle(true, false),
		TextCommand("AC"),
		SetStyle(false, false),
		TextCommand(" 18"),
	}, cmds)

	_, err = TranslateString("\x1b[5mblink")
	assert.ErrorIs(t, err, ErrUnrepresentableStyle)
}
