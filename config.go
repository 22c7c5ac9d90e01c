package pdfhtml

// defaultBodyFontSize is used whenever no text exists to estimate from.
const defaultBodyFontSize = 12.0

// Config controls layout reconstruction behaviour. The defaults match the
// tuned heuristics; overriding individual thresholds is intended for tests
// and for consumers that need per-document tuning.
type Config struct {
	// YTolerance is the maximum vertical distance (viewport units) between a
	// run and the line anchor for the run to join that line.
	YTolerance float64

	// ColumnGapRatio is the column clustering distance as a fraction of the
	// page width.
	ColumnGapRatio float64

	// MinColumnRuns is the minimum number of non-blank runs on a page before
	// column detection is attempted.
	MinColumnRuns int

	// MinDistinctLineStarts is the minimum number of distinct line start-x
	// values before column detection is attempted.
	MinDistinctLineStarts int

	// MinClusterLines is the minimum number of member lines for a start-x
	// cluster to count as a column candidate.
	MinClusterLines int

	// LineHeightFactor estimates line height from font size.
	LineHeightFactor float64

	// BlockGapFactor scales the estimated line height into the vertical gap
	// that starts a new block.
	BlockGapFactor float64

	// FontJumpRatio is the font-size change, as a fraction of the body font
	// size, that starts a new block.
	FontJumpRatio float64

	// SpaceGapFactor scales a run's font size into the horizontal gap that
	// reconstructs a lost inter-word space.
	SpaceGapFactor float64

	// HeadingMinRatio is the minimum block/body font-size ratio for the
	// size-based heading fallback.
	HeadingMinRatio float64

	// HeadingLevelRatios maps descending font-size ratios to heading levels
	// 1..n. A block ratio meeting ratio i (0-based) becomes level i+1.
	HeadingLevelRatios []float64

	// HeadingPositionTolerance is the maximum distance (viewport units)
	// between an outline destination and a block's first line for a
	// position match.
	HeadingPositionTolerance float64

	// MaxHeadingTextLen is the block text length at or above which the
	// size-based fallback never produces a heading.
	MaxHeadingTextLen int

	// MaxOutlineDepth caps the heading level derived from bookmark nesting.
	MaxOutlineDepth int

	// IncludeImages appends embedded page images after the page's text
	// blocks (default: true).
	IncludeImages bool

	// EnableMetricsLogging enables processing time and statistics logging
	// (default: false).
	EnableMetricsLogging bool
}

// DefaultConfig returns the default reconstruction configuration.
func DefaultConfig() Config {
	return Config{
		YTolerance:               2.0,
		ColumnGapRatio:           0.05,
		MinColumnRuns:            6,
		MinDistinctLineStarts:    4,
		MinClusterLines:          2,
		LineHeightFactor:         1.5,
		BlockGapFactor:           1.3,
		FontJumpRatio:            0.15,
		SpaceGapFactor:           0.3,
		HeadingMinRatio:          1.15,
		HeadingLevelRatios:       []float64{1.8, 1.5, 1.3, 1.15},
		HeadingPositionTolerance: 15.0,
		MaxHeadingTextLen:        200,
		MaxOutlineDepth:          4,
		IncludeImages:            true,
	}
}
