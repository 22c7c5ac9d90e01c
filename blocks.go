package pdfhtml

import "math"

// groupLinesIntoBlocks merges consecutive lines into blocks (candidate
// paragraphs or headings). A new block starts on a large vertical gap or on
// a significant font-size change. The size trigger compares against the
// global body font size rather than the previous line, so a multi-line
// heading does not compound drift line over line.
func groupLinesIntoBlocks(lines []Line, bodyFontSize float64, config Config) []Block {
	if len(lines) == 0 {
		return nil
	}

	var blocks []Block
	current := Block{Lines: []Line{lines[0]}}

	for _, line := range lines[1:] {
		prev := current.Lines[len(current.Lines)-1]
		gap := line.Y - prev.LastRunY()
		prevFontSize := prev.FontSize()
		lineThreshold := prevFontSize * config.LineHeightFactor

		fontJump := math.Abs(line.FontSize()-prevFontSize) > bodyFontSize*config.FontJumpRatio

		if gap > lineThreshold*config.BlockGapFactor || fontJump {
			blocks = append(blocks, current)
			current = Block{Lines: []Line{line}}
		} else {
			current.Lines = append(current.Lines, line)
		}
	}
	blocks = append(blocks, current)

	return blocks
}

// estimateBodyFontSize computes the dominant font size across the whole
// document, weighting each size bucket by trimmed character count rather
// than run count so a few large-font runs cannot outvote the body text.
// Runs must come from every page: classification is size-relative.
func estimateBodyFontSize(pages []Page) float64 {
	buckets := make(map[float64]int)
	for _, page := range pages {
		for _, run := range page.Runs {
			if run.IsBlank() {
				continue
			}
			size := math.Round(run.FontSize*10) / 10
			buckets[size] += run.weight()
		}
	}

	if len(buckets) == 0 {
		return defaultBodyFontSize
	}

	var bodySize float64
	var bestCount int
	for size, count := range buckets {
		if count > bestCount || (count == bestCount && size < bodySize) {
			bodySize = size
			bestCount = count
		}
	}
	return bodySize
}
