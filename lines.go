package pdfhtml

import (
	"math"
	"sort"
)

// groupRunsIntoLines clusters a column's runs into ordered lines by vertical
// proximity. Runs are sorted by (Y, X); a run joins the current line when its
// Y is within config.YTolerance of the line anchor, otherwise it opens a new
// line. The anchor is the Y of the run that opened the line, not a running
// average, so heavily slanted baselines can drift across a long line; block
// grouping thresholds are tuned against this exact behaviour.
func groupRunsIntoLines(runs []TextRun, config Config) []Line {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]TextRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []Line
	current := Line{Runs: []TextRun{sorted[0]}, Y: sorted[0].Y}

	for _, run := range sorted[1:] {
		if math.Abs(run.Y-current.Y) <= config.YTolerance {
			current.Runs = append(current.Runs, run)
		} else {
			lines = append(lines, sealLine(current))
			current = Line{Runs: []TextRun{run}, Y: run.Y}
		}
	}
	lines = append(lines, sealLine(current))

	return lines
}

// sealLine re-sorts a finished line's runs left to right.
func sealLine(line Line) Line {
	sort.SliceStable(line.Runs, func(i, j int) bool {
		return line.Runs[i].X < line.Runs[j].X
	})
	return line
}
