package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkEmpty(t *testing.T) {
	assert.Empty(t, Chunk("", 100))
	assert.Empty(t, Chunk("   \n  ", 100))
}

func TestChunkShortTextSinglePiece(t *testing.T) {
	assert.Equal(t, []string{"hello world"}, Chunk("hello world", 100))
}

func TestChunkBreaksAtNewline(t *testing.T) {
	chunks := Chunk("first line\nsecond line", 15)
	assert.Equal(t, []string{"first line", "second line"}, chunks)
}

func TestChunkBreaksAtSpaceWithoutNewline(t *testing.T) {
	chunks := Chunk("alpha beta gamma delta", 12)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 12)
	}
	assert.Equal(t, "alpha beta gamma delta", strings.Join(chunks, " "))
}

func TestChunkHardSplitWithoutWhitespace(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := Chunk(text, 10)
	assert.Equal(t, []string{
		strings.Repeat("x", 10),
		strings.Repeat("x", 10),
		strings.Repeat("x", 5),
	}, chunks)
}

func TestChunkNoContentLost(t *testing.T) {
	text := "para one\n\npara two with more words\n\npara three"
	chunks := Chunk(text, 16)
	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(text) {
		assert.Contains(t, joined, word)
	}
}

func TestChunkDefaultMax(t *testing.T) {
	// maxChars <= 0 falls back to the default size.
	chunks := Chunk("short", 0)
	assert.Equal(t, []string{"short"}, chunks)
}

func TestNormalizeStrategy(t *testing.T) {
	tests := []struct{ in, want string }{
		{"auto", StrategyAuto},
		{"lattice", StrategyLattice},
		{"matrix", StrategyMatrix},
		{" LATTICE ", StrategyLattice},
		{"", StrategyAuto},
		{"bogus", StrategyAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStrategy(tt.in), "strategy %q", tt.in)
	}
}
