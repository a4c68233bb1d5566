package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessageShort(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitMessage("hello", 10))
}

func TestSplitMessagePrefersNewline(t *testing.T) {
	text := strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8)
	parts := SplitMessage(text, 10)
	assert.Equal(t, []string{strings.Repeat("a", 8) + "\n", strings.Repeat("b", 8)}, parts)
}

func TestSplitMessageHardCut(t *testing.T) {
	parts := SplitMessage(strings.Repeat("x", 25), 10)
	assert.Len(t, parts, 3)
	assert.Equal(t, strings.Repeat("x", 25), strings.Join(parts, ""))
}

func TestSplitMessageCountsRunes(t *testing.T) {
	parts := SplitMessage(strings.Repeat("🎁", 12), 10)
	assert.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("🎁", 10), parts[0])
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `Rose\_Garden \*best\* \[x]`, EscapeMarkdown("Rose_Garden *best* [x]"))
}

func TestFixMarkdown(t *testing.T) {
	assert.Equal(t, "a `code`", FixMarkdown("a `code"))
	assert.Equal(t, "```\nx\n```", FixMarkdown("```\nx"))
	assert.Equal(t, "plain", FixMarkdown("plain"))
}
