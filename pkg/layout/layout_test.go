package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentence = "The goblin slashes twice with its rusty blade" // 45 columns

func TestRenderItem_HangingIndent(t *testing.T) {
	require.Len(t, sentence, 45)

	lines, err := RenderItem("• ", sentence, 20)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(lines), 2)

	assert.True(t, strings.HasPrefix(lines[0], "• "))
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "  "), "continuation %q", line)
	}
	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 20, "line %q", line)
	}

	// every word survives the wrap
	var words []string
	for _, line := range lines {
		words = append(words, strings.Fields(strings.TrimPrefix(line, "• "))...)
	}
	assert.Equal(t, strings.Fields(sentence), words)
}

func TestRenderItem_Empty(t *testing.T) {
	lines, err := RenderItem("• ", "", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"• "}, lines)
}

func TestRenderItem_FitsOnOneLine(t *testing.T) {
	lines, err := RenderItem("- ", "short", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"- short"}, lines)
}

func TestRenderItem_Styled(t *testing.T) {
	content := "\x1b[1mGrab\x1b[0m the target and hold it firmly in place"
	lines, err := RenderItem("Ab ", content, 16)
	require.NoError(t, err)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 16, "line %q", line)
	}
	assert.Contains(t, lines[0], "\x1b[1m")
}

func TestRenderItem_LongWord(t *testing.T) {
	lines, err := RenderItem("* ", "Supercalifragilisticexpialidocious", 12)
	require.NoError(t, err)
	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 12, "line %q", line)
	}
}

func TestRenderItem_InvalidWidth(t *testing.T) {
	_, err := RenderItem("Reactive Strike ", "text", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWidth)
}

func TestRenderItem_CustomWrapper(t *testing.T) {
	var gotWidth int
	wrap := func(s string, width int) string {
		gotWidth = width
		return strings.ReplaceAll(s, " ", "\n")
	}

	lines, err := RenderItem(">> ", "a b c", 30, WithWrapper(wrap))
	require.NoError(t, err)
	assert.Equal(t, 27, gotWidth)
	assert.Equal(t, []string{">> a", "   b", "   c"}, lines)
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "   Goblin", Center("Goblin", 12))
	assert.Equal(t, "Hobgoblin Soldier", Center("Hobgoblin Soldier", 10))
}

func TestRule(t *testing.T) {
	assert.Equal(t, "-----", Rule("-", 5))
	assert.Equal(t, "", Rule("-", 0))
}
