package state

import (
	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/filter"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== SELECTION ACTIONS =====

type SelectNextAction struct{}
type SelectPrevAction struct{}
type SelectRowDownAction struct{}
type SelectRowUpAction struct{}
type SelectFirstAction struct{}
type SelectLastAction struct{}
type MouseSelectAction struct {
	Index int
}

// ===== SCROLL ACTIONS =====

type ScrollLinesAction struct {
	Delta int
}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}

// ScrollSettledAction fires once scrolling has been quiet for
// Layout.ScrollSettle.
type ScrollSettledAction struct {
	Token int
}

// FrameAction drives one restoration attempt after a frame was drawn.
type FrameAction struct{}

// LayoutMeasuredAction reports the grid metrics of the last drawn frame.
type LayoutMeasuredAction struct {
	Columns   int
	RowHeight int
}

// ===== SEARCH ACTIONS =====

type SearchStartAction struct{}
type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchClearAction struct{}

// SearchCommitAction leaves search input and records the search in history.
type SearchCommitAction struct{}

// ===== FILTER ACTIONS =====

type CycleSortAction struct{}
type SetSortAction struct {
	Key filter.SortKey
}
type ClearFiltersAction struct{}

type PickerOpenAction struct {
	Facet filter.Facet
}
type PickerCharAction struct {
	Char rune
}
type PickerBackspaceAction struct{}
type PickerMoveAction struct {
	Delta int
}

// PickerToggleAction flips the highlighted option in the include or exclude
// set.
type PickerToggleAction struct {
	Exclude bool
}
type PickerCloseAction struct{}

// ===== PREVIEW ACTIONS =====

type OpenPreviewAction struct{}
type ClosePreviewAction struct{}

// ===== NAVIGATION ACTIONS =====

type GoToHistoryAction struct {
	Direction string // "back" or "forward"
}

// ApplyQueryAction applies an inbound query as the initial view.
type ApplyQueryAction struct {
	Query string
}

// ===== CATALOG ACTIONS =====

type LoadCatalogAction struct{}

// CatalogLoadedAction carries the loader result back to the app goroutine.
type CatalogLoadedAction catalog.LoadResult

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type ToggleCompactAction struct{}
type ToggleHelpAction struct{}
type AcknowledgeDisclaimerAction struct{}
type YankQueryAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
