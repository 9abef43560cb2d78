package state

import (
	"github.com/kk-code-lab/rgallery/internal/filter"
)

// recomputeView rebuilds the view and facet counts from the store, the
// filter and the sort key, then clamps everything indexed into the view.
func (s *AppState) recomputeView() {
	entries := s.Store.All()
	s.View = filter.ComputeView(entries, s.Filter, s.Sort)
	s.Facets = filter.ComputeFacets(entries, s.Filter)
	s.clampToView()
}

// clampToView pulls the window, scroll and selection back inside a view that
// may have shrunk.
func (s *AppState) clampToView() {
	s.recomputeWindow()
	s.setScroll(s.ScrollOffset)
	if n := len(s.View); n == 0 {
		s.SelectedIndex = 0
	} else if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	} else if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	s.clampPickerCursor()
}

func (s *AppState) clampPickerCursor() {
	if !s.Picker.Active {
		return
	}
	n := len(s.PickerOptions())
	if s.Picker.Cursor >= n {
		s.Picker.Cursor = n - 1
	}
	if s.Picker.Cursor < 0 {
		s.Picker.Cursor = 0
	}
}

// resolvePreview drops a preview id that does not name a loaded entry. It
// reports whether the id was cleared.
func (s *AppState) resolvePreview() bool {
	if s.PreviewID == "" || !s.CatalogLoaded {
		return false
	}
	if _, ok := s.PreviewEntry(); ok {
		return false
	}
	s.Logger.Debug().Str("preview", s.PreviewID).Msg("stale preview cleared")
	s.PreviewID = ""
	return true
}

// ensureSelectionVisible scrolls the minimum needed to show the selected card
// between the header and the status line.
func (s *AppState) ensureSelectionVisible() bool {
	if len(s.View) == 0 {
		return false
	}
	top := s.CardTop(s.SelectedIndex)
	bottom := top + s.rowHeight()
	visibleTop := s.ScrollOffset + s.Layout.HeaderHeight
	visibleBottom := s.ScrollOffset + s.ViewportHeight()

	switch {
	case top < visibleTop:
		return s.setScroll(top - s.Layout.HeaderHeight)
	case bottom > visibleBottom:
		return s.setScroll(bottom - s.ViewportHeight())
	}
	return false
}

// followScrollWithSelection moves the selection into the visible rows after a
// scroll that was not driven by selection.
func (s *AppState) followScrollWithSelection() {
	if len(s.View) == 0 {
		return
	}
	first := s.firstVisibleIndex()
	last := min(s.lastVisibleIndex(), len(s.View)-1)
	if first > len(s.View)-1 {
		first = len(s.View) - 1
	}
	if s.SelectedIndex < first {
		s.SelectedIndex = first
	} else if s.SelectedIndex > last {
		s.SelectedIndex = max(last, first)
	}
}
