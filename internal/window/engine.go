package window

// DefaultWindowSize is the number of entries materialized at once.
const DefaultWindowSize = 200

// Params are the inputs of one windowing pass.
type Params struct {
	ViewLength int
	Start      int
	WindowSize int
	Columns    int
	RowHeight  int
}

// Window is the materialized slice [Start, End) of the view plus the spacer
// sizes that stand in for the rows above and below it.
type Window struct {
	Start        int
	End          int
	Columns      int
	RowHeight    int
	TopRows      int
	BottomRows   int
	TopSpacer    int
	BottomSpacer int
}

// Len is the number of materialized entries.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether index is materialized.
func (w Window) Contains(index int) bool {
	return index >= w.Start && index < w.End
}

// Compute clamps p and derives the window. It never fails: columns and row
// height below 1 are treated as 1 and Start is pulled into [0, ViewLength].
func Compute(p Params) Window {
	columns := max(p.Columns, 1)
	rowHeight := max(p.RowHeight, 1)
	viewLength := max(p.ViewLength, 0)
	size := p.WindowSize
	if size < 1 {
		size = DefaultWindowSize
	}

	start := clamp(p.Start, 0, viewLength)
	end := min(viewLength, start+size)

	topRows := start / columns
	bottomRows := ceilDiv(viewLength-end, columns)

	return Window{
		Start:        start,
		End:          end,
		Columns:      columns,
		RowHeight:    rowHeight,
		TopRows:      topRows,
		BottomRows:   bottomRows,
		TopSpacer:    topRows * rowHeight,
		BottomSpacer: bottomRows * rowHeight,
	}
}

// TotalRows is the number of grid rows needed for viewLength entries.
func TotalRows(viewLength, columns int) int {
	return ceilDiv(max(viewLength, 0), max(columns, 1))
}

// RowOf returns the grid row holding index.
func RowOf(index, columns int) int {
	if index <= 0 {
		return 0
	}
	return index / max(columns, 1)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
