package render

import statepkg "github.com/kk-code-lab/rgallery/internal/state"

const (
	minCardWidth       = 12
	compactRowHeight   = 2
	minNormalRowHeight = 5
	gridSideMargin     = 1
)

// GridMetrics is the card layout for one screen width.
type GridMetrics struct {
	Columns   int
	RowHeight int
	CardWidth int
	Gap       int
	Margin    int
}

// ComputeGrid fits as many cards as the width allows. Compact mode keeps the
// columns and shrinks every card to a single line.
func ComputeGrid(width int, layout statepkg.Layout, compact bool) GridMetrics {
	gap := max(layout.ColumnGap, 0)
	usable := max(width-2*gridSideMargin, 1)
	cardWidth := min(max(layout.CardWidth, minCardWidth), usable)

	columns := max((usable+gap)/(cardWidth+gap), 1)
	used := columns*cardWidth + (columns-1)*gap

	rowHeight := max(layout.DefaultRowHeight, minNormalRowHeight)
	if compact {
		rowHeight = compactRowHeight
	}

	return GridMetrics{
		Columns:   columns,
		RowHeight: rowHeight,
		CardWidth: cardWidth,
		Gap:       gap,
		Margin:    gridSideMargin + max(usable-used, 0)/2,
	}
}

// cardX is the left edge of the card in column col.
func (g GridMetrics) cardX(col int) int {
	return g.Margin + col*(g.CardWidth+g.Gap)
}

// columnAt maps a screen column to a grid column, or -1 for the gaps.
func (g GridMetrics) columnAt(x int) int {
	rel := x - g.Margin
	if rel < 0 {
		return -1
	}
	col := rel / (g.CardWidth + g.Gap)
	if col >= g.Columns || rel-col*(g.CardWidth+g.Gap) >= g.CardWidth {
		return -1
	}
	return col
}

// CardAt maps a screen cell to the view index of the card drawn there in the
// last frame.
func (r *Renderer) CardAt(state *statepkg.AppState, x, y int) (int, bool) {
	frame := r.lastFrame
	if !frame.Drawn || state == nil {
		return 0, false
	}
	if y < state.Layout.HeaderHeight || y >= state.ViewportHeight() {
		return 0, false
	}
	rel := y + frame.ScrollOffset - state.ContainerTop()
	if rel < 0 {
		return 0, false
	}
	row := rel / frame.RowHeight
	if frame.RowHeight > 1 && rel%frame.RowHeight == frame.RowHeight-1 {
		return 0, false
	}
	placement := frame.Grid
	placement.Columns = frame.Columns
	col := placement.columnAt(x)
	if col < 0 {
		return 0, false
	}
	idx := row*frame.Columns + col
	if !frame.Contains(idx) || idx >= len(state.View) {
		return 0, false
	}
	return idx, true
}
