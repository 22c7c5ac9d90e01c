package pdfhtml

import (
	"fmt"
	"html"
	"strings"
)

// ToHTML renders the document as a single HTML fragment. The output contains
// only p, h1-h4, br, strong, em, span (color) and img elements; html/body
// wrappers are the caller's responsibility. Rendering is a pure function of
// the document, outline and config.
func (d *Document) ToHTML(outline []OutlineTarget, config Config) string {
	return renderDocument(d, reconstructDocument(d, outline, config), config)
}

// renderDocument writes the already-reconstructed blocks of every page,
// followed by that page's images. blocks is indexed parallel to d.Pages.
func renderDocument(d *Document, blocks [][]Block, config Config) string {
	var sb strings.Builder
	for i, page := range d.Pages {
		for _, block := range blocks[i] {
			renderBlock(&sb, block, config)
		}
		if config.IncludeImages {
			for _, img := range page.Images {
				sb.WriteString(`<p><img src="`)
				sb.WriteString(img.DataURL)
				sb.WriteString(`"/></p>`)
			}
		}
	}
	return sb.String()
}

// renderBlock writes a block as a heading or paragraph element. Heading
// lines are joined with a single space; paragraph lines with <br>.
func renderBlock(sb *strings.Builder, block Block, config Config) {
	if block.IsHeading {
		level := block.HeadingLevel
		if level < 1 {
			level = 1
		} else if level > 4 {
			level = 4
		}
		fmt.Fprintf(sb, "<h%d>", level)
		for i, line := range block.Lines {
			if i > 0 {
				sb.WriteString(" ")
			}
			renderLine(sb, line, config)
		}
		fmt.Fprintf(sb, "</h%d>", level)
		return
	}

	sb.WriteString("<p>")
	for i, line := range block.Lines {
		if i > 0 {
			sb.WriteString("<br>")
		}
		renderLine(sb, line, config)
	}
	sb.WriteString("</p>")
}

// renderLine concatenates a line's run spans, reinserting a space wherever
// the horizontal gap between two runs exceeds the space-gap threshold
// (per-glyph-run extraction loses the original word spacing).
func renderLine(sb *strings.Builder, line Line, config Config) {
	for i, run := range line.Runs {
		if i > 0 {
			prev := line.Runs[i-1]
			gap := run.X - (prev.X + prev.Width)
			if gap > run.FontSize*config.SpaceGapFactor {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(renderRun(run))
	}
}

// renderRun escapes a run's text and applies inline style markup.
func renderRun(run TextRun) string {
	text := html.EscapeString(run.Text)

	if run.IsBold && run.IsItalic {
		text = "<strong><em>" + text + "</em></strong>"
	} else if run.IsBold {
		text = "<strong>" + text + "</strong>"
	} else if run.IsItalic {
		text = "<em>" + text + "</em>"
	}

	if run.Color != "" {
		text = `<span style="color: ` + run.Color + `">` + text + `</span>`
	}
	return text
}
