package pdfhtml

import (
	"strings"
	"unicode/utf8"
)

// TextRun is one atomic run of text as reported by the extractor, in viewport
// coordinates (origin at the page's top-left, Y increasing downward).
type TextRun struct {
	Text     string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	FontSize float64
	FontName string
	IsBold   bool
	IsItalic bool
	HasEOL   bool
	Color    string // CSS color value; empty when unavailable
}

// IsBlank reports whether the run carries no visible text.
func (r TextRun) IsBlank() bool {
	return strings.TrimSpace(r.Text) == ""
}

// weight is the trimmed character count, used for font-size weighting.
func (r TextRun) weight() int {
	return utf8.RuneCountInString(strings.TrimSpace(r.Text))
}

// styleFromFontName derives bold/italic flags from font name substrings.
// PDF font names commonly encode style in the name ("Helvetica-BoldOblique").
func styleFromFontName(name string) (bold, italic bool) {
	n := strings.ToLower(name)
	bold = strings.Contains(n, "bold") || strings.Contains(n, "heavy") || strings.Contains(n, "black")
	italic = strings.Contains(n, "italic") || strings.Contains(n, "oblique")
	return bold, italic
}

// RasterImage is an embedded image that was successfully decoded and
// re-encoded as a self-contained data URL.
type RasterImage struct {
	DataURL string
	Name    string // extractor-assigned identifier, diagnostics only
}

// Page holds all extracted content of a single page.
type Page struct {
	Number int // 1-based page number
	Width  float64
	Height float64
	Runs   []TextRun
	Images []RasterImage
}

// Document is the complete extracted document.
type Document struct {
	Pages []Page
}

// Line is a visually single row of runs, sorted left to right.
type Line struct {
	Runs []TextRun
	Y    float64 // Y of the run that opened the line
}

// LastRunY returns the Y of the rightmost run in the line.
func (l Line) LastRunY() float64 {
	if len(l.Runs) == 0 {
		return l.Y
	}
	return l.Runs[len(l.Runs)-1].Y
}

// MinX returns the left edge of the line.
func (l Line) MinX() float64 {
	if len(l.Runs) == 0 {
		return 0
	}
	minX := l.Runs[0].X
	for _, run := range l.Runs[1:] {
		if run.X < minX {
			minX = run.X
		}
	}
	return minX
}

// FontSize returns the character-weighted mean font size of the line.
func (l Line) FontSize() float64 {
	var total float64
	var count int
	for _, run := range l.Runs {
		w := run.weight()
		total += run.FontSize * float64(w)
		count += w
	}
	if count == 0 {
		return defaultBodyFontSize
	}
	return total / float64(count)
}

// Text returns the concatenated text of the line's runs.
func (l Line) Text() string {
	var sb strings.Builder
	for _, run := range l.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Block is a grouped sequence of lines treated as one paragraph or heading
// candidate. IsHeading and HeadingLevel are assigned by classification,
// after grouping.
type Block struct {
	Lines        []Line
	IsHeading    bool
	HeadingLevel int // 1-4 when IsHeading
}

// Text returns the full concatenated text of the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, line := range b.Lines {
		for _, run := range line.Runs {
			sb.WriteString(run.Text)
		}
	}
	return sb.String()
}

// FirstLineY returns the Y anchor of the block's first line.
func (b Block) FirstLineY() float64 {
	if len(b.Lines) == 0 {
		return 0
	}
	return b.Lines[0].Y
}

// FontSize returns the character-weighted mean font size across all lines.
func (b Block) FontSize() float64 {
	var total float64
	var count int
	for _, line := range b.Lines {
		for _, run := range line.Runs {
			w := run.weight()
			total += run.FontSize * float64(w)
			count += w
		}
	}
	if count == 0 {
		return defaultBodyFontSize
	}
	return total / float64(count)
}

// OutlineTarget is one resolved bookmark entry. When HasPosition is set the
// entry resolved to a concrete page location; otherwise only the trimmed
// title is available for matching.
type OutlineTarget struct {
	Level       int // heading level 1-4, from nesting depth
	PageIndex   int // 0-based, valid only when HasPosition
	Y           float64
	Title       string
	HasPosition bool
}
