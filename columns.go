package pdfhtml

import "sort"

// startCluster accumulates line left-edges during column detection.
type startCluster struct {
	sum      float64
	count    int
	centroid float64
}

func (c *startCluster) add(x float64) {
	c.sum += x
	c.count++
	c.centroid = c.sum / float64(c.count)
}

// splitColumns partitions a page's runs into per-column streams, in
// left-to-right order. Column boundaries are detected from line left-edge
// clusters, then every original run is assigned by comparing its X against
// the boundaries, so cluster support is measured per line (not per run)
// while no run is ever dropped.
func splitColumns(runs []TextRun, pageWidth float64, config Config) [][]TextRun {
	var nonBlank []TextRun
	for _, run := range runs {
		if !run.IsBlank() {
			nonBlank = append(nonBlank, run)
		}
	}

	// Short or sparse pages are never treated as multi-column.
	if len(nonBlank) < config.MinColumnRuns {
		return [][]TextRun{runs}
	}

	lines := groupRunsIntoLines(nonBlank, config)

	leftEdges := make([]float64, 0, len(lines))
	distinct := make(map[float64]struct{})
	for _, line := range lines {
		edge := line.MinX()
		leftEdges = append(leftEdges, edge)
		distinct[edge] = struct{}{}
	}
	if len(distinct) < config.MinDistinctLineStarts {
		return [][]TextRun{runs}
	}

	sort.Float64s(leftEdges)

	// Sequential clustering against each cluster's running centroid.
	maxGap := config.ColumnGapRatio * pageWidth
	var clusters []*startCluster
	for _, edge := range leftEdges {
		if len(clusters) > 0 && edge-clusters[len(clusters)-1].centroid <= maxGap {
			clusters[len(clusters)-1].add(edge)
		} else {
			c := &startCluster{}
			c.add(edge)
			clusters = append(clusters, c)
		}
	}

	var significant []*startCluster
	for _, c := range clusters {
		if c.count >= config.MinClusterLines {
			significant = append(significant, c)
		}
	}
	if len(significant) < 2 {
		return [][]TextRun{runs}
	}

	sort.Slice(significant, func(i, j int) bool {
		return significant[i].centroid < significant[j].centroid
	})

	// Column boundaries are the midpoints between adjacent centroids.
	boundaries := make([]float64, 0, len(significant)-1)
	for i := 1; i < len(significant); i++ {
		boundaries = append(boundaries, (significant[i-1].centroid+significant[i].centroid)/2)
	}

	// Assign every run to the rightmost column whose boundary it has crossed.
	columns := make([][]TextRun, len(significant))
	for _, run := range runs {
		col := 0
		for _, b := range boundaries {
			if run.X >= b {
				col++
			}
		}
		columns[col] = append(columns[col], run)
	}

	var result [][]TextRun
	for _, col := range columns {
		if len(col) > 0 {
			result = append(result, col)
		}
	}
	return result
}
