package window

import "math"

const (
	DefaultHalfRowThreshold = 0.5
	DefaultBufferRows       = 3
)

// Geometry describes the scroll position and grid layout at one moment.
type Geometry struct {
	ScrollOffset int
	ContainerTop int
	HeaderHeight int
	RowHeight    int
	Columns      int
}

// GeometryFrom samples vp for everything but the grid layout.
func GeometryFrom(vp Viewport, rowHeight, columns int) Geometry {
	return Geometry{
		ScrollOffset: vp.CurrentScrollOffset(),
		ContainerTop: vp.MeasureContainerTop(),
		HeaderHeight: vp.HeaderHeight(),
		RowHeight:    rowHeight,
		Columns:      columns,
	}
}

// Tracker maps scroll offsets to the first visible entry and back.
type Tracker struct {
	HalfRowThreshold float64
	BufferRows       int
}

func NewTracker() Tracker {
	return Tracker{HalfRowThreshold: DefaultHalfRowThreshold, BufferRows: DefaultBufferRows}
}

// Anchor returns the index of the first entry whose row is mostly below the
// header, and the window start that keeps BufferRows rows above it.
func (t Tracker) Anchor(g Geometry) (anchorIndex, windowStart int) {
	rowHeight := max(g.RowHeight, 1)
	columns := max(g.Columns, 1)

	rel := g.ScrollOffset + g.HeaderHeight - g.ContainerTop
	row := floorDiv(rel, rowHeight)
	within := rel - row*rowHeight
	if float64(within) > float64(rowHeight)*t.threshold() {
		row++
	}

	anchorIndex = max(0, row*columns)
	return anchorIndex, t.WindowStartFor(anchorIndex, columns)
}

// WindowStartFor keeps BufferRows rows materialized above anchorIndex.
func (t Tracker) WindowStartFor(anchorIndex, columns int) int {
	return max(0, anchorIndex-max(t.BufferRows, 0)*max(columns, 1))
}

// ScrollOffsetFor is the offset that puts the row holding anchorIndex right
// under the header. Used to re-anchor after the layout changes.
func (t Tracker) ScrollOffsetFor(anchorIndex int, g Geometry) int {
	row := RowOf(anchorIndex, g.Columns)
	return max(0, g.ContainerTop+row*max(g.RowHeight, 1)-g.HeaderHeight)
}

func (t Tracker) threshold() float64 {
	if t.HalfRowThreshold <= 0 || t.HalfRowThreshold >= 1 || math.IsNaN(t.HalfRowThreshold) {
		return DefaultHalfRowThreshold
	}
	return t.HalfRowThreshold
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
