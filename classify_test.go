package pdfhtml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBlock_OutlinePositionBeatsFontRatio(t *testing.T) {
	// Font ratio alone (24/12 = 2.0) would give level 1; the outline says
	// level 2 at the matching position, and the outline wins.
	block := Block{Lines: []Line{makeLine(100, 24, "Chapter", "Two")}}
	outline := []OutlineTarget{
		{Level: 2, PageIndex: 0, Y: 110, HasPosition: true},
	}

	classifyBlock(&block, 0, 12, outline, DefaultConfig())
	require.True(t, block.IsHeading)
	assert.Equal(t, 2, block.HeadingLevel)
}

func TestClassifyBlock_PositionMatchIsPageScoped(t *testing.T) {
	block := Block{Lines: []Line{makeLine(100, 24, "Chapter", "Two")}}
	outline := []OutlineTarget{
		{Level: 2, PageIndex: 3, Y: 100, HasPosition: true},
	}

	// Target on another page never matches; with a non-empty outline the
	// size fallback is disabled, so the block stays a paragraph.
	classifyBlock(&block, 0, 12, outline, DefaultConfig())
	assert.False(t, block.IsHeading)
}

func TestClassifyBlock_PositionToleranceBoundary(t *testing.T) {
	outline := []OutlineTarget{
		{Level: 1, PageIndex: 0, Y: 115, HasPosition: true},
	}

	within := Block{Lines: []Line{makeLine(100, 12, "Intro")}}
	classifyBlock(&within, 0, 12, outline, DefaultConfig())
	assert.True(t, within.IsHeading)

	beyond := Block{Lines: []Line{makeLine(99, 12, "Intro")}}
	classifyBlock(&beyond, 0, 12, outline, DefaultConfig())
	assert.False(t, beyond.IsHeading)
}

func TestClassifyBlock_TitleFallbackMatch(t *testing.T) {
	block := Block{Lines: []Line{makeLine(100, 12, "2.", "Methods")}}
	outline := []OutlineTarget{
		{Level: 3, Title: "Methods"},
	}

	classifyBlock(&block, 0, 12, outline, DefaultConfig())
	require.True(t, block.IsHeading)
	assert.Equal(t, 3, block.HeadingLevel)
}

func TestClassifyBlock_TitleContainsBlockText(t *testing.T) {
	block := Block{Lines: []Line{makeLine(100, 12, "Results")}}
	outline := []OutlineTarget{
		{Level: 2, Title: "4. Results and Discussion"},
	}

	classifyBlock(&block, 0, 12, outline, DefaultConfig())
	require.True(t, block.IsHeading)
	assert.Equal(t, 2, block.HeadingLevel)
}

func TestClassifyBlock_FontFallbackLevels(t *testing.T) {
	tests := []struct {
		name      string
		fontSize  float64
		isHeading bool
		level     int
	}{
		{"body", 12, false, 0},
		{"just below min ratio", 13.5, false, 0},
		{"level 4", 14, true, 4},
		{"level 3", 16, true, 3},
		{"level 2", 18.5, true, 2},
		{"level 1", 22, true, 1},
		{"far above level 1", 36, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := Block{Lines: []Line{makeLine(100, tt.fontSize, "Some", "Title")}}
			classifyBlock(&block, 0, 12, nil, DefaultConfig())
			assert.Equal(t, tt.isHeading, block.IsHeading)
			assert.Equal(t, tt.level, block.HeadingLevel)
		})
	}
}

func TestClassifyBlock_FontFallbackDisabledByOutline(t *testing.T) {
	// A document with any outline entries prefers outline-driven
	// classification; an unmatched block stays a paragraph even when its
	// font ratio qualifies.
	block := Block{Lines: []Line{makeLine(100, 28, "Unmatched")}}
	outline := []OutlineTarget{
		{Level: 1, Title: "Completely Different Chapter"},
	}

	classifyBlock(&block, 0, 12, outline, DefaultConfig())
	assert.False(t, block.IsHeading)
}

func TestClassifyBlock_LongTextNeverHeading(t *testing.T) {
	// A 200+ character pull-quote in a large font is still body text.
	block := Block{Lines: []Line{makeLine(100, 24, strings.Repeat("x", 220))}}

	classifyBlock(&block, 0, 12, nil, DefaultConfig())
	assert.False(t, block.IsHeading)
}
