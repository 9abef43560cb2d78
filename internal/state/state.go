package state

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/filter"
	"github.com/kk-code-lab/rgallery/internal/navstate"
	"github.com/kk-code-lab/rgallery/internal/window"
)

// StatusHeight is the overlay line at the bottom of the screen.
const StatusHeight = 1

// Layout holds the grid geometry that does not depend on measurement. All
// heights are terminal lines.
type Layout struct {
	WindowSize       int
	HeaderHeight     int
	SummaryHeight    int
	DefaultRowHeight int
	CardWidth        int
	ColumnGap        int
	ScrollSettle     time.Duration
}

// DefaultLayout mirrors the config defaults.
func DefaultLayout() Layout {
	return Layout{
		WindowSize:       window.DefaultWindowSize,
		HeaderHeight:     2,
		SummaryHeight:    2,
		DefaultRowHeight: 8,
		CardWidth:        28,
		ColumnGap:        2,
		ScrollSettle:     150 * time.Millisecond,
	}
}

// WindowState is the materialized slice of the view and the layout it was
// computed for.
type WindowState struct {
	Start        int
	End          int
	AnchorIndex  int
	Columns      int
	RowHeight    int
	Measured     bool
	TopSpacer    int
	BottomSpacer int
}

// PickerState is the facet picker overlay.
type PickerState struct {
	Active bool
	Facet  filter.Facet
	Query  string
	Cursor int
}

// Acknowledger persists the disclaimer acknowledgement.
type Acknowledger interface {
	Acknowledge(now time.Time) error
}

// AppState is the single source of truth
type AppState struct {
	// Catalog
	Store          *catalog.Store
	CatalogSource  catalog.Source
	CatalogPaths   catalog.PathOptions
	CatalogLoader  catalog.Loader
	CatalogLoading bool
	CatalogLoaded  bool
	LoadError      error
	LoadElapsed    time.Duration

	// Filtering and view
	Filter filter.FilterState
	Sort   filter.SortKey
	View   []catalog.Entry
	Facets filter.Facets

	// Window and scrolling
	Layout        Layout
	Window        WindowState
	ScrollOffset  int
	SelectedIndex int
	Tracker       window.Tracker
	Restorer      *window.Restorer
	// Viewport is injected by the UI; nil falls back to pure geometry.
	Viewport window.Viewport

	// Navigation
	History *navstate.History
	Syncer  *navstate.Syncer

	// Preview
	PreviewID string

	// Input modes
	SearchActive      bool
	Picker            PickerState
	HelpVisible       bool
	DisclaimerVisible bool
	CompactMode       bool
	Disclaimer        Acknowledger

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	LastYankTime       time.Time

	// Error state
	LastError error

	Logger zerolog.Logger

	catalogLoadToken int
	restorePending   bool
	restoreTarget    int
	settleTimer      *time.Timer
	settleToken      int
	searchBefore     string
	dispatchAction   func(Action)
}

// NewAppState builds an empty state whose history holds the default view.
func NewAppState(layout Layout, tracker window.Tracker, maxAttempts int, logger zerolog.Logger) *AppState {
	history := navstate.NewHistory(navstate.Encode(navstate.State{}).String())
	s := &AppState{
		Layout:   layout,
		Tracker:  tracker,
		Restorer: window.NewRestorer(maxAttempts, tracker),
		History:  history,
		Syncer:   navstate.NewSyncer(history, logger.With().Str("component", "navstate").Logger()),
		Logger:   logger,
	}
	s.Window = WindowState{Columns: 1, RowHeight: max(layout.DefaultRowHeight, 1)}
	s.recomputeView()
	return s
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

// NavState is the current state as it would be encoded.
func (s *AppState) NavState() navstate.State {
	return navstate.State{
		Filter:      s.Filter,
		Sort:        s.Sort,
		PreviewID:   s.PreviewID,
		AnchorIndex: s.Window.AnchorIndex,
	}
}

// ShareQuery is the canonical query for the current view.
func (s *AppState) ShareQuery() string {
	return navstate.Encode(s.NavState()).String()
}

// RestoreActive reports whether a restoration owns the anchor.
func (s *AppState) RestoreActive() bool {
	return s.Restorer.Active()
}

// RestorePending reports whether a restoration waits for the catalog.
func (s *AppState) RestorePending() bool {
	return s.restorePending
}

// NoResults reports the distinct empty-view state of a loaded catalog.
func (s *AppState) NoResults() bool {
	return s.CatalogLoaded && len(s.View) == 0
}

// SelectedEntry returns the entry under the selection cursor.
func (s *AppState) SelectedEntry() (catalog.Entry, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.View) {
		return catalog.Entry{}, false
	}
	return s.View[s.SelectedIndex], true
}

// PreviewEntry resolves the open preview.
func (s *AppState) PreviewEntry() (catalog.Entry, bool) {
	if s.PreviewID == "" || s.Store == nil {
		return catalog.Entry{}, false
	}
	return s.Store.Lookup(s.PreviewID)
}

// PickerOptions lists the options of the open picker narrowed by its query.
func (s *AppState) PickerOptions() []filter.Option {
	if !s.Picker.Active {
		return nil
	}
	return s.Facets.Of(s.Picker.Facet).Suggest(s.Picker.Query)
}

// CatalogSize is the number of loaded entries.
func (s *AppState) CatalogSize() int {
	return s.Store.Len()
}
