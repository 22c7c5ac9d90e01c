package pdfhtml

import (
	"math"
	"strings"
	"unicode/utf8"
)

// classifyBlocks assigns a paragraph/heading kind to every block of a page.
// Outline-driven classification always wins over font-size heuristics: the
// size fallback only applies when the document has no outline at all, so an
// outlined document never mixes the two signals.
func classifyBlocks(blocks []Block, pageIndex int, bodyFontSize float64, outline []OutlineTarget, config Config) {
	for i := range blocks {
		classifyBlock(&blocks[i], pageIndex, bodyFontSize, outline, config)
	}
}

// classifyBlock assigns IsHeading/HeadingLevel for a single block.
// pageIndex is 0-based.
func classifyBlock(block *Block, pageIndex int, bodyFontSize float64, outline []OutlineTarget, config Config) {
	text := strings.TrimSpace(block.Text())

	// Outline position match: only same-page destinations are compared.
	for _, target := range outline {
		if !target.HasPosition || target.PageIndex != pageIndex {
			continue
		}
		if math.Abs(target.Y-block.FirstLineY()) <= config.HeadingPositionTolerance {
			block.IsHeading = true
			block.HeadingLevel = target.Level
			return
		}
	}

	// Outline title match: containment in either direction.
	for _, target := range outline {
		if target.HasPosition || target.Title == "" {
			continue
		}
		if strings.Contains(text, target.Title) || strings.Contains(target.Title, text) {
			block.IsHeading = true
			block.HeadingLevel = target.Level
			return
		}
	}

	// Size-based fallback, only for documents without any outline. A block
	// this long is body text regardless of font size (large-font pull-quotes).
	if len(outline) == 0 && utf8.RuneCountInString(text) < config.MaxHeadingTextLen {
		ratio := block.FontSize() / bodyFontSize
		if ratio >= config.HeadingMinRatio {
			block.IsHeading = true
			block.HeadingLevel = len(config.HeadingLevelRatios)
			for level, minRatio := range config.HeadingLevelRatios {
				if ratio >= minRatio {
					block.HeadingLevel = level + 1
					break
				}
			}
			return
		}
	}

	block.IsHeading = false
	block.HeadingLevel = 0
}
