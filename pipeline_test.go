package pdfhtml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// titleAndBodyPage is one page with a 28pt title and a five-run 12pt body
// line, with inter-run gaps wide enough to reconstruct spaces.
func titleAndBodyPage() Page {
	words := []string{"The", "quick", "brown", "fox", "jumps"}
	runs := []TextRun{
		{Text: "Title", X: 50, Y: 50, Width: 70, Height: 28, FontSize: 28},
	}
	x := 50.0
	for _, word := range words {
		width := float64(len(word)) * 6
		runs = append(runs, TextRun{
			Text: word, X: x, Y: 100, Width: width, Height: 12, FontSize: 12,
		})
		x += width + 5
	}
	return Page{Number: 1, Width: 600, Height: 800, Runs: runs}
}

func TestToHTML_EndToEndScenario(t *testing.T) {
	doc := &Document{Pages: []Page{titleAndBodyPage()}}

	out := doc.ToHTML(nil, DefaultConfig())

	// 28/12 = 2.33 meets the 1.8 ratio, selecting level 1.
	require.Equal(t, "<h1>Title</h1><p>The quick brown fox jumps</p>", out)
}

func TestToHTML_Idempotent(t *testing.T) {
	doc := &Document{Pages: []Page{titleAndBodyPage()}}
	config := DefaultConfig()

	first := doc.ToHTML(nil, config)
	second := doc.ToHTML(nil, config)
	assert.Equal(t, first, second)
}

func TestToHTML_EmptyDocument(t *testing.T) {
	doc := &Document{}
	assert.Empty(t, doc.ToHTML(nil, DefaultConfig()))

	doc = &Document{Pages: []Page{{Number: 1, Width: 600, Height: 800}}}
	assert.Empty(t, doc.ToHTML(nil, DefaultConfig()))
}

func TestToHTML_TwoColumnReadingOrder(t *testing.T) {
	// Left column text renders before right column text, regardless of the
	// interleaved vertical positions.
	runs := twoColumnRuns()
	doc := &Document{Pages: []Page{{Number: 1, Width: 800, Height: 600, Runs: runs}}}

	out := doc.ToHTML(nil, DefaultConfig())
	require.Contains(t, out, "l0")
	require.Contains(t, out, "r0")
	assert.Less(t, strings.Index(out, "l3"), strings.Index(out, "r0"))
}

func TestToHTML_OutlineDrivenHeadings(t *testing.T) {
	page := titleAndBodyPage()
	doc := &Document{Pages: []Page{page}}
	outline := []OutlineTarget{
		{Level: 3, PageIndex: 0, Y: 55, HasPosition: true},
	}

	out := doc.ToHTML(outline, DefaultConfig())

	// The outline position match overrides the size-derived level 1.
	assert.Contains(t, out, "<h3>Title</h3>")
	assert.NotContains(t, out, "<h1>")
}
