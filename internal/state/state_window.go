package state

import (
	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/window"
)

// ===== GEOMETRY =====
// Document coordinates: the header overlay covers the first HeaderHeight lines
// of the viewport, the summary block sits under it, then the grid rows.

// ContainerTop is the document line of the first grid row.
func (s *AppState) ContainerTop() int {
	return s.Layout.HeaderHeight + s.Layout.SummaryHeight
}

// ViewportHeight is the scrollable height above the status line.
func (s *AppState) ViewportHeight() int {
	return max(1, s.ScreenHeight-StatusHeight)
}

// DocumentHeight covers every row of the view, materialized or not.
func (s *AppState) DocumentHeight() int {
	return s.ContainerTop() + window.TotalRows(len(s.View), s.Window.Columns)*s.rowHeight()
}

// MaxScroll is the largest valid scroll offset.
func (s *AppState) MaxScroll() int {
	return max(0, s.DocumentHeight()-s.ViewportHeight())
}

// CardTop is the document line of the card at index.
func (s *AppState) CardTop(index int) int {
	return s.ContainerTop() + window.RowOf(index, s.Window.Columns)*s.rowHeight()
}

// Geometry samples the current scroll geometry for the tracker.
func (s *AppState) Geometry() window.Geometry {
	vp := s.viewport()
	return window.GeometryFrom(vp, s.rowHeight(), s.Window.Columns)
}

// WindowEntries returns the materialized slice of the view.
func (s *AppState) WindowEntries() []catalog.Entry {
	if s.Window.Start >= s.Window.End || s.Window.End > len(s.View) {
		return nil
	}
	return s.View[s.Window.Start:s.Window.End]
}

func (s *AppState) rowHeight() int {
	return max(s.Window.RowHeight, 1)
}

func (s *AppState) columns() int {
	return max(s.Window.Columns, 1)
}

// recomputeWindow re-derives the window from Window.Start and the view.
func (s *AppState) recomputeWindow() {
	w := window.Compute(window.Params{
		ViewLength: len(s.View),
		Start:      s.Window.Start,
		WindowSize: s.Layout.WindowSize,
		Columns:    s.Window.Columns,
		RowHeight:  s.Window.RowHeight,
	})
	s.Window.Start = w.Start
	s.Window.End = w.End
	s.Window.Columns = w.Columns
	s.Window.RowHeight = w.RowHeight
	s.Window.TopSpacer = w.TopSpacer
	s.Window.BottomSpacer = w.BottomSpacer
}

// setScroll clamps offset into the document and reports whether it moved.
func (s *AppState) setScroll(offset int) bool {
	offset = min(max(offset, 0), s.MaxScroll())
	if offset == s.ScrollOffset {
		return false
	}
	s.ScrollOffset = offset
	return true
}

// trackAnchor is the live-scroll writer of the anchor.
func (s *AppState) trackAnchor() {
	anchor, start := s.Tracker.Anchor(s.Geometry())
	if n := len(s.View); n == 0 {
		anchor, start = 0, 0
	} else if anchor > n-1 {
		anchor = window.RowOf(n-1, s.Window.Columns) * s.columns()
		start = s.Tracker.WindowStartFor(anchor, s.Window.Columns)
	}
	s.Window.AnchorIndex = anchor
	s.Window.Start = start
	s.recomputeWindow()
}

// reanchor keeps the anchor row under the header after columns or row height
// changed. The anchor index itself is left alone.
func (s *AppState) reanchor() {
	s.Window.Start = s.Tracker.WindowStartFor(s.Window.AnchorIndex, s.Window.Columns)
	s.recomputeWindow()
	offset := s.Tracker.ScrollOffsetFor(s.Window.AnchorIndex, s.Geometry())
	if s.Window.AnchorIndex == 0 {
		// The first row also owns the summary above it.
		offset = min(offset, s.ScrollOffset)
	}
	s.viewport().ScrollTo(offset)
}

// firstVisibleIndex is the first card whose row is below the header.
func (s *AppState) firstVisibleIndex() int {
	rel := s.ScrollOffset + s.Layout.HeaderHeight - s.ContainerTop()
	row := 0
	if rel > 0 {
		row = (rel + s.rowHeight() - 1) / s.rowHeight()
	}
	return row * s.columns()
}

// lastVisibleIndex is the last card whose row fits above the status line.
func (s *AppState) lastVisibleIndex() int {
	bottom := s.ScrollOffset + s.ViewportHeight() - s.ContainerTop()
	rows := bottom / s.rowHeight()
	if rows < 1 {
		return s.firstVisibleIndex()
	}
	last := rows*s.columns() - 1
	return max(last, s.firstVisibleIndex())
}

// ===== VIEWPORT =====

func (s *AppState) viewport() window.Viewport {
	if s.Viewport != nil {
		return s.Viewport
	}
	return stateViewport{s}
}

// stateViewport answers viewport questions from the state alone. Any
// materialized card counts as laid out.
type stateViewport struct {
	s *AppState
}

func (v stateViewport) MeasureContainerTop() int { return v.s.ContainerTop() }
func (v stateViewport) HeaderHeight() int        { return v.s.Layout.HeaderHeight }
func (v stateViewport) CurrentScrollOffset() int { return v.s.ScrollOffset }
func (v stateViewport) ScrollTo(offset int)      { v.s.setScroll(offset) }

func (v stateViewport) LocateElement(index int) (int, bool) {
	if index < v.s.Window.Start || index >= v.s.Window.End {
		return 0, false
	}
	return v.s.CardTop(index), true
}

// ScrollTo is what a Viewport implementation calls to move the document.
func (s *AppState) ScrollTo(offset int) {
	s.setScroll(offset)
}
