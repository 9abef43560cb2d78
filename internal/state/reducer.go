package state

import (
	"time"
	"unicode/utf8"

	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/filter"
	"github.com/kk-code-lab/rgallery/internal/navstate"
)

// WheelLines is how far one wheel notch or Ctrl-E/Ctrl-Y scrolls.
const WheelLines = 3

// StateReducer applies actions to the AppState.
type StateReducer struct {
	now func() time.Time
}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{now: time.Now}
}

// Reduce applies an action to state and returns the new state.
// The state is mutated in place and returned for chaining.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== SELECTION =====

	case SelectNextAction:
		state.selectIndex(state.SelectedIndex + 1)
		return state, nil

	case SelectPrevAction:
		state.selectIndex(state.SelectedIndex - 1)
		return state, nil

	case SelectRowDownAction:
		state.selectIndex(min(state.SelectedIndex+state.columns(), len(state.View)-1))
		return state, nil

	case SelectRowUpAction:
		state.selectIndex(max(state.SelectedIndex-state.columns(), 0))
		return state, nil

	case SelectFirstAction:
		state.selectIndex(0)
		return state, nil

	case SelectLastAction:
		state.selectIndex(len(state.View) - 1)
		return state, nil

	case MouseSelectAction:
		if a.Index < 0 || a.Index >= len(state.View) {
			return state, nil
		}
		state.selectIndex(a.Index)
		return state, nil

	// ===== SCROLL =====

	case ScrollLinesAction:
		state.scrollBy(a.Delta)
		return state, nil

	case ScrollPageDownAction:
		state.scrollBy(state.pageLines())
		return state, nil

	case ScrollPageUpAction:
		state.scrollBy(-state.pageLines())
		return state, nil

	case ScrollSettledAction:
		if a.Token != state.settleToken {
			return state, nil
		}
		state.settleTimer = nil
		state.writeNav(navstate.ModeReplace)
		return state, nil

	case FrameAction:
		if !state.Restorer.Active() {
			return state, nil
		}
		if !state.Restorer.Frame(state.viewport()) {
			return state, nil
		}
		state.Logger.Debug().
			Int("target", state.Restorer.Target()).
			Int("attempts", state.Restorer.Attempts()).
			Str("outcome", state.Restorer.Outcome().String()).
			Msg("restore finished")
		state.followScrollWithSelection()
		state.writeNav(navstate.ModeReplace)
		return state, nil

	case LayoutMeasuredAction:
		state.applyMeasurement(max(a.Columns, 1), max(a.RowHeight, 1))
		return state, nil

	// ===== SEARCH =====

	case SearchStartAction:
		if state.SearchActive {
			return state, nil
		}
		state.flushSettle()
		state.Picker = PickerState{}
		state.SearchActive = true
		state.searchBefore = state.Filter.SearchText
		return state, nil

	case SearchCharAction:
		if !state.SearchActive {
			return state, nil
		}
		fs := state.Filter.Clone()
		fs.SearchText += string(a.Char)
		state.applyFilter(fs, state.Sort)
		return state, nil

	case SearchBackspaceAction:
		if !state.SearchActive || state.Filter.SearchText == "" {
			return state, nil
		}
		fs := state.Filter.Clone()
		_, size := utf8.DecodeLastRuneInString(fs.SearchText)
		fs.SearchText = fs.SearchText[:len(fs.SearchText)-size]
		state.applyFilter(fs, state.Sort)
		return state, nil

	case SearchClearAction:
		if !state.SearchActive || state.Filter.SearchText == "" {
			return state, nil
		}
		fs := state.Filter.Clone()
		fs.SearchText = ""
		state.applyFilter(fs, state.Sort)
		return state, nil

	case SearchCommitAction:
		if !state.SearchActive {
			return state, nil
		}
		state.SearchActive = false
		if state.Filter.SearchText != state.searchBefore {
			state.writeNav(navstate.ModePush)
		}
		state.searchBefore = ""
		return state, nil

	// ===== FILTERS =====

	case CycleSortAction:
		state.applyFilter(state.Filter, state.Sort.Next())
		return state, nil

	case SetSortAction:
		if a.Key == state.Sort {
			return state, nil
		}
		state.applyFilter(state.Filter, a.Key)
		return state, nil

	case ClearFiltersAction:
		if state.Filter.IsZero() {
			return state, nil
		}
		state.applyFilter(filter.FilterState{}, state.Sort)
		return state, nil

	case PickerOpenAction:
		state.SearchActive = false
		state.Picker = PickerState{Active: true, Facet: a.Facet}
		return state, nil

	case PickerCharAction:
		if !state.Picker.Active {
			return state, nil
		}
		state.Picker.Query += string(a.Char)
		state.Picker.Cursor = 0
		return state, nil

	case PickerBackspaceAction:
		if !state.Picker.Active || state.Picker.Query == "" {
			return state, nil
		}
		_, size := utf8.DecodeLastRuneInString(state.Picker.Query)
		state.Picker.Query = state.Picker.Query[:len(state.Picker.Query)-size]
		state.Picker.Cursor = 0
		return state, nil

	case PickerMoveAction:
		if !state.Picker.Active {
			return state, nil
		}
		state.Picker.Cursor += a.Delta
		state.clampPickerCursor()
		return state, nil

	case PickerToggleAction:
		if !state.Picker.Active {
			return state, nil
		}
		options := state.PickerOptions()
		if state.Picker.Cursor < 0 || state.Picker.Cursor >= len(options) {
			return state, nil
		}
		value := options[state.Picker.Cursor].Value
		var fs filter.FilterState
		if a.Exclude {
			fs = state.Filter.ToggleExclude(state.Picker.Facet, value)
		} else {
			fs = state.Filter.ToggleInclude(state.Picker.Facet, value)
		}
		state.applyFilter(fs, state.Sort)
		return state, nil

	case PickerCloseAction:
		state.Picker = PickerState{}
		return state, nil

	// ===== PREVIEW =====

	case OpenPreviewAction:
		entry, ok := state.SelectedEntry()
		if !ok || entry.ID == state.PreviewID {
			return state, nil
		}
		state.flushSettle()
		state.cancelRestore()
		state.PreviewID = entry.ID
		state.writeNav(navstate.ModePush)
		return state, nil

	case ClosePreviewAction:
		if state.PreviewID == "" {
			return state, nil
		}
		state.flushSettle()
		state.cancelRestore()
		state.PreviewID = ""
		state.writeNav(navstate.ModePush)
		return state, nil

	// ===== NAVIGATION =====

	case GoToHistoryAction:
		state.flushSettle()
		var (
			query string
			ok    bool
		)
		switch a.Direction {
		case "back":
			query, ok = state.History.Back()
		case "forward":
			query, ok = state.History.Forward()
		}
		if !ok {
			return state, nil
		}
		state.applyNavState(state.Syncer.Observe(query))
		return state, nil

	case ApplyQueryAction:
		ns := navstate.Decode(a.Query)
		canonical := navstate.Encode(ns).String()
		state.History.Replace(canonical)
		state.applyNavState(state.Syncer.Observe(canonical))
		return state, nil

	// ===== CATALOG =====

	case LoadCatalogAction:
		if state.CatalogLoaded {
			return state, nil
		}
		return state, r.loadCatalog(state)

	case CatalogLoadedAction:
		if a.Token != state.ActiveCatalogLoadToken() {
			return state, nil
		}
		applyCatalogResult(state, a.toResult())
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampToView()
		return state, nil

	case ToggleCompactAction:
		state.CompactMode = !state.CompactMode
		return state, nil

	case ToggleHelpAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case AcknowledgeDisclaimerAction:
		if !state.DisclaimerVisible {
			return state, nil
		}
		if state.Disclaimer != nil {
			if err := state.Disclaimer.Acknowledge(r.now()); err != nil {
				return state, err
			}
		}
		state.DisclaimerVisible = false
		return state, nil
	}

	return state, nil
}

// selectIndex moves the selection and scrolls just enough to keep it visible.
func (s *AppState) selectIndex(idx int) {
	n := len(s.View)
	if n == 0 {
		return
	}
	idx = min(max(idx, 0), n-1)
	if idx == s.SelectedIndex {
		return
	}
	if s.Restorer.Active() {
		s.cancelRestore()
	}
	s.SelectedIndex = idx
	if s.ensureSelectionVisible() {
		s.trackAnchor()
		s.scheduleSettle()
	}
}

// scrollBy is a user scroll. It takes the anchor back from any restoration.
func (s *AppState) scrollBy(delta int) {
	if delta == 0 {
		return
	}
	if s.Restorer.Active() {
		s.cancelRestore()
	}
	if !s.setScroll(s.ScrollOffset + delta) {
		return
	}
	s.trackAnchor()
	s.followScrollWithSelection()
	s.scheduleSettle()
}

func (s *AppState) pageLines() int {
	return max(1, s.ViewportHeight()-s.Layout.HeaderHeight-1)
}

// applyFilter installs a new filter and sort. The scroll position is kept as
// far as the shorter view allows and the anchor is re-read from it.
func (s *AppState) applyFilter(fs filter.FilterState, key filter.SortKey) {
	s.flushSettle()
	s.cancelRestore()
	s.Filter = fs
	s.Sort = key
	s.recomputeView()
	s.trackAnchor()
	s.followScrollWithSelection()
	s.writeNav(navstate.ModePush)
}

// applyMeasurement takes the grid metrics of the last frame. A change keeps
// the anchor row under the header.
func (s *AppState) applyMeasurement(columns, rowHeight int) {
	if s.Window.Measured && columns == s.Window.Columns && rowHeight == s.Window.RowHeight {
		return
	}
	s.Window.Columns = columns
	s.Window.RowHeight = rowHeight
	s.Window.Measured = true

	if s.Restorer.Active() {
		s.Window.Start = s.Tracker.WindowStartFor(s.Restorer.Target(), columns)
		s.recomputeWindow()
		return
	}
	if s.restorePending {
		s.recomputeWindow()
		return
	}
	s.reanchor()
	s.followScrollWithSelection()
}

func (a CatalogLoadedAction) toResult() catalog.LoadResult {
	return catalog.LoadResult(a)
}
