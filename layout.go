package pdfhtml

// reconstructPage runs the full per-page pipeline: column splitting, line
// grouping per column, block grouping, and classification. Blocks are
// returned in reading order (top-to-bottom within each column, columns left
// to right). bodyFontSize must already be estimated over the whole document.
func reconstructPage(page Page, bodyFontSize float64, outline []OutlineTarget, config Config) []Block {
	columns := splitColumns(page.Runs, page.Width, config)

	var blocks []Block
	for _, column := range columns {
		lines := groupRunsIntoLines(column, config)
		columnBlocks := groupLinesIntoBlocks(lines, bodyFontSize, config)
		classifyBlocks(columnBlocks, page.Number-1, bodyFontSize, outline, config)
		blocks = append(blocks, columnBlocks...)
	}
	return blocks
}

// reconstructDocument estimates the body font size over all pages, then runs
// the per-page pipeline once for each page. The result is indexed parallel to
// doc.Pages so rendering and statistics can share one reconstruction.
func reconstructDocument(doc *Document, outline []OutlineTarget, config Config) [][]Block {
	bodyFontSize := estimateBodyFontSize(doc.Pages)

	blocks := make([][]Block, len(doc.Pages))
	for i, page := range doc.Pages {
		blocks[i] = reconstructPage(page, bodyFontSize, outline, config)
	}
	return blocks
}
