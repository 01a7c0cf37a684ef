package statblock

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/statblock-cli/internal/config"
	"github.com/open-cli-collective/statblock-cli/pkg/escpos"
)

func loadGoblin(t *testing.T) *Document {
	t.Helper()
	doc, err := Load("testdata/goblin_warrior.json")
	require.NoError(t, err)
	return doc
}

func format(t *testing.T, doc *Document, width int, details bool) string {
	t.Helper()
	var buf bytes.Buffer
	f := NewFormatter(config.Settings{Width: width, Details: details}, &buf)
	require.NoError(t, f.Format(doc))
	return buf.String()
}

func TestFormat_Sections(t *testing.T) {
	out := ansi.Strip(format(t, loadGoblin(t), 200, false))

	expected := []string{
		"Goblin Warrior",
		"Creature -1",
		"SMALL GOBLIN HUMANOID",
		"Perception +2; darkvision",
		"Languages common, goblin",
		"Skills Acrobatics +5, Athletics +2, Stealth +5",
		"Str +0, Dex +3, Con +1, Int +0, Wis -1, Cha +1",
		"Items leather armor",
		"AC 16; Fort +5, Ref +7, Will +3",
		"HP 6; Weaknesses cold iron 2",
		"Speed 25 feet, climb 10 feet",
		"Melee [1] Dogslicer +8 [+4/+0] (agile, backstabber, finesse), Damage 2d6 slashing",
		"Ranged [1] Shortbow +8 [+3/-2] (deadly d10, range increment 60, reload 0), Damage 1d6 piercing plus (@item.level) persistent fire",
		"Goblin Scuttle [R] Trigger A goblin ally ends a move action adjacent to you.",
		"Effect You Step. Then attempt a reflex/dc:15 save.",
		"Shove [2] (attack)",
		"Shove the target 10d10 feet.",
		"Arcane Innate Spells DC 15, attack +7; 1st grease; Cantrips detect magic",
	}
	for _, want := range expected {
		assert.Contains(t, out, want)
	}

	assert.NotContains(t, out, "Critical")
	assert.NotContains(t, out, "Description")
	assert.NotContains(t, out, "Immunities")
	assert.NotContains(t, out, "@Check")
}

func TestFormat_Details(t *testing.T) {
	out := ansi.Strip(format(t, loadGoblin(t), 200, true))

	assert.Contains(t, out, "Critical 4d6 slashing")
	assert.Contains(t, out, "Critical 2d6+1d10 piercing")
	assert.Contains(t, out, "Description\nGoblin warriors are sneaky scrappers.")
	assert.NotContains(t, out, "Private Notes")
	assert.NotContains(t, out, "Blurb")
}

func TestFormat_HeadingsUnderlined(t *testing.T) {
	out := format(t, loadGoblin(t), 42, true)
	assert.Contains(t, out, "\x1b[1m\x1b[4mDescription\x1b[0m")

	cmds, err := escpos.TranslateString(out)
	require.NoError(t, err)
	assert.Contains(t, cmds, escpos.SetStyle(true, true))
}

func TestFormat_EncodesWithoutSubstituteBytes(t *testing.T) {
	doc, err := Parse([]byte(`{"name": "X", "items": [{"name": "Tactics", "type": "action",
		"system": {"actionType": {"value": "passive"},
		"description": {"value": "<ul><li>Flank</li><li>Retreat \u2014 fast</li></ul>"}}}]}`))
	require.NoError(t, err)

	out := format(t, doc, 32, false)
	require.Contains(t, ansi.Strip(out), "• Flank")

	cmds, err := escpos.TranslateString(out)
	require.NoError(t, err)
	data, err := escpos.Encode(cmds, escpos.EncodeOptions{})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\x1a")
	assert.Contains(t, string(data), "\xf9 Flank")
	assert.Contains(t, string(data), "Retreat - fast")
}

func TestFormat_Emphasis(t *testing.T) {
	out := format(t, loadGoblin(t), 200, false)
	assert.Contains(t, out, "\x1b[1mreflex/dc:15\x1b[0m")
	assert.Contains(t, out, "\x1b[1mAC\x1b[0m 16")
}

func TestFormat_HangingIndent(t *testing.T) {
	out := format(t, loadGoblin(t), 40, true)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Greater(t, len(lines), 20)

	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40, "line %q", ansi.Strip(line))
	}

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Goblin Scuttle [R] Trigger A goblin ally")
	assert.Contains(t, plain, "\n                   ends a move action")
}

func TestFormat_PrintableStyles(t *testing.T) {
	out := format(t, loadGoblin(t), 42, true)

	cmds, err := escpos.TranslateString(out)
	require.NoError(t, err)
	assert.Equal(t, escpos.SetStyle(false, false), cmds[0])
}

func TestFormat_EmptyDocument(t *testing.T) {
	doc, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	out := ansi.Strip(format(t, doc, 30, true))
	assert.Equal(t, "──────────────────────────────\nCreature\n──────────────────────────────\n", out)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestFormat_WriteError(t *testing.T) {
	f := NewFormatter(config.Settings{Width: 40}, failingWriter{})
	err := f.Format(loadGoblin(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFormat_NarrowWidth(t *testing.T) {
	// long action labels move to their own line instead of failing
	doc, err := Parse([]byte(`{"name": "X", "items": [{"name": "An Extremely Long Ability Name", "type": "action",
		"system": {"actionType": {"value": "passive"}, "description": {"value": "<p>Does a thing.</p>"}}}]}`))
	require.NoError(t, err)

	out := ansi.Strip(format(t, doc, 20, false))
	assert.Contains(t, out, "An Extremely Long\nAbility Name\n  Does a thing.")
}

func TestFormat_MinimumWidth(t *testing.T) {
	out := format(t, loadGoblin(t), config.MinWidth, true)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), config.MinWidth, "line %q", ansi.Strip(line))
	}
	assert.Contains(t, ansi.Strip(out), "Arcane\nInnate\nSpells")
}
