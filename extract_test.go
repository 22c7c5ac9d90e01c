package pdfhtml

import (
	"testing"

	"github.com/klippa-app/go-pdfium/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func charSeq(text string, fontSize float64) []extractedChar {
	chars := make([]extractedChar, 0, len(text))
	x := 10.0
	for _, r := range text {
		chars = append(chars, extractedChar{
			text: r, x0: x, y0: 100, x1: x + 6, y1: 112,
			fontSize: fontSize, fontName: "Helvetica",
		})
		x += 6
	}
	return chars
}

func TestGroupCharsIntoRuns_SplitsOnWhitespace(t *testing.T) {
	chars := charSeq("ab cd", 12)

	runs := groupCharsIntoRuns(chars)
	require.Len(t, runs, 2)
	assert.Equal(t, "ab", runs[0].Text)
	assert.Equal(t, "cd", runs[1].Text)
	assert.False(t, runs[0].HasEOL)
}

func TestGroupCharsIntoRuns_NewlineMarksEOL(t *testing.T) {
	chars := charSeq("ab\ncd", 12)

	runs := groupCharsIntoRuns(chars)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].HasEOL)
	assert.False(t, runs[1].HasEOL)
}

func TestGroupCharsIntoRuns_RunGeometry(t *testing.T) {
	chars := charSeq("abc", 12)

	runs := groupCharsIntoRuns(chars)
	require.Len(t, runs, 1)
	assert.Equal(t, 10.0, runs[0].X)
	assert.Equal(t, 100.0, runs[0].Y)
	assert.Equal(t, 18.0, runs[0].Width)
	assert.Equal(t, 12.0, runs[0].Height)
	assert.Equal(t, 12.0, runs[0].FontSize)
}

func TestStyleFromFontName(t *testing.T) {
	tests := []struct {
		name   string
		bold   bool
		italic bool
	}{
		{"Helvetica", false, false},
		{"Helvetica-Bold", true, false},
		{"Helvetica-Oblique", false, true},
		{"Helvetica-BoldOblique", true, true},
		{"TimesNewRoman-Italic", false, true},
		{"ArialBlack", true, false},
		{"SourceSans-Heavy", true, false},
	}

	for _, tt := range tests {
		bold, italic := styleFromFontName(tt.name)
		assert.Equal(t, tt.bold, bold, tt.name)
		assert.Equal(t, tt.italic, italic, tt.name)
	}
}

func TestBuildRun_Color(t *testing.T) {
	chars := charSeq("red", 12)
	for i := range chars {
		chars[i].r = 255
	}
	assert.Equal(t, "rgb(255, 0, 0)", buildRun(chars).Color)

	// Black is the default and stays unstyled.
	assert.Empty(t, buildRun(charSeq("black", 12)).Color)
}

func TestBitmapToImage_BGRA(t *testing.T) {
	// One row, two pixels: opaque red then half-transparent blue.
	buffer := []byte{
		0, 0, 255, 255,
		255, 0, 0, 128,
	}

	img, err := bitmapToImage(buffer, 2, 1, 8, enums.FPDF_BITMAP_FORMAT_BGRA)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 2, bounds.Dx())
	assert.Equal(t, 1, bounds.Dy())
}

func TestBitmapToImage_ShortBuffer(t *testing.T) {
	_, err := bitmapToImage([]byte{0, 0}, 2, 1, 8, enums.FPDF_BITMAP_FORMAT_BGRA)
	assert.Error(t, err)
}

func TestBitmapToImage_InvalidDimensions(t *testing.T) {
	_, err := bitmapToImage(nil, 0, 0, 0, enums.FPDF_BITMAP_FORMAT_BGRA)
	assert.Error(t, err)
}
