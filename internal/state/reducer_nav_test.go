package state

import (
	"testing"
	"time"

	"github.com/kk-code-lab/rgallery/internal/filter"
	"github.com/kk-code-lab/rgallery/internal/navstate"
	"github.com/kk-code-lab/rgallery/internal/window"
)

func TestSortChangePushesHistory(t *testing.T) {
	state, reducer := newLoadedState(t, 200)

	mustReduce(t, reducer, state, CycleSortAction{})

	if state.Sort != filter.SortOldest {
		t.Fatalf("expected oldest sort, got %v", state.Sort)
	}
	if got := state.History.Len(); got != 2 {
		t.Fatalf("expected 2 history entries, got %d", got)
	}
	if got := state.History.Current(); got != "sort=oldest&idx=0" {
		t.Fatalf("unexpected current entry %q", got)
	}
}

func TestScrollReplacesHistory(t *testing.T) {
	state, reducer := newLoadedState(t, 200)

	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 40})

	if state.Window.AnchorIndex != 20 {
		t.Fatalf("expected anchor 20, got %d", state.Window.AnchorIndex)
	}
	if state.Window.Start != 8 {
		t.Fatalf("expected window start 8, got %d", state.Window.Start)
	}
	if got := state.History.Len(); got != 1 {
		t.Fatalf("scroll must not push, history has %d entries", got)
	}
	if got := state.History.Current(); got != "idx=20" {
		t.Fatalf("unexpected current entry %q", got)
	}

	// A one-line nudge stays on the same anchor and writes nothing new.
	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 1})
	if state.Window.AnchorIndex != 20 || state.History.Current() != "idx=20" {
		t.Fatalf("nudge changed anchor to %d (%q)", state.Window.AnchorIndex, state.History.Current())
	}

	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 16})
	if got := state.History.Len(); got != 1 {
		t.Fatalf("expected history to stay at 1 entry, got %d", got)
	}
	if got := state.History.Current(); got != "idx=28" {
		t.Fatalf("unexpected current entry %q", got)
	}
}

func TestScrollFollowsSelection(t *testing.T) {
	state, reducer := newLoadedState(t, 200)

	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 40})

	if state.SelectedIndex != 20 {
		t.Fatalf("expected selection to follow to 20, got %d", state.SelectedIndex)
	}
}

func TestBackForwardRestoresPosition(t *testing.T) {
	state, reducer := newLoadedState(t, 200)

	mustReduce(t, reducer, state, CycleSortAction{})
	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 40})
	if got := state.History.Current(); got != "sort=oldest&idx=20" {
		t.Fatalf("unexpected current entry %q", got)
	}

	mustReduce(t, reducer, state, GoToHistoryAction{Direction: "back"})
	if state.Sort != filter.SortNewest {
		t.Fatalf("expected newest after back, got %v", state.Sort)
	}
	if state.RestoreActive() {
		t.Fatalf("restoring the top must finish immediately")
	}
	if state.Restorer.Outcome() != window.OutcomeTop {
		t.Fatalf("expected top outcome, got %v", state.Restorer.Outcome())
	}
	if state.ScrollOffset != 0 || state.Window.AnchorIndex != 0 {
		t.Fatalf("expected top, got scroll=%d anchor=%d", state.ScrollOffset, state.Window.AnchorIndex)
	}

	mustReduce(t, reducer, state, GoToHistoryAction{Direction: "forward"})
	if !state.RestoreActive() {
		t.Fatalf("expected restoration to be active")
	}
	if state.Window.AnchorIndex != 20 || state.Window.Start != 8 {
		t.Fatalf("expected anchor 20 start 8, got anchor=%d start=%d", state.Window.AnchorIndex, state.Window.Start)
	}

	mustReduce(t, reducer, state, FrameAction{})
	if state.RestoreActive() {
		t.Fatalf("expected restoration to finish once the card is laid out")
	}
	if state.Restorer.Outcome() != window.OutcomeLocated {
		t.Fatalf("expected located outcome, got %v", state.Restorer.Outcome())
	}
	if want := state.CardTop(20) - state.Layout.HeaderHeight; state.ScrollOffset != want {
		t.Fatalf("expected scroll %d, got %d", want, state.ScrollOffset)
	}
	if got := state.History.Len(); got != 2 {
		t.Fatalf("history navigation must not add entries, got %d", got)
	}
	if got := state.History.Current(); got != "sort=oldest&idx=20" {
		t.Fatalf("restoration rewrote the entry: %q", got)
	}
}

func TestBackAtStartIsNoop(t *testing.T) {
	state, reducer := newLoadedState(t, 20)

	mustReduce(t, reducer, state, GoToHistoryAction{Direction: "back"})

	if state.History.Len() != 1 || state.RestoreActive() {
		t.Fatalf("unexpected change: len=%d active=%v", state.History.Len(), state.RestoreActive())
	}
}

func TestWritesSuppressedWhileRestoring(t *testing.T) {
	state, reducer := newLoadedState(t, 200)

	mustReduce(t, reducer, state, ApplyQueryAction{Query: "?idx=40&sort=az"})

	if got := state.History.Current(); got != "sort=az&idx=40" {
		t.Fatalf("expected canonical entry, got %q", got)
	}
	if !state.RestoreActive() {
		t.Fatalf("expected restoration to be active")
	}
	if state.writeNav(navstate.ModeReplace) {
		t.Fatalf("write went through during restoration")
	}

	// A user scroll takes the anchor back and writes again.
	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 8})
	if state.RestoreActive() {
		t.Fatalf("user scroll must cancel the restoration")
	}
	if got := state.History.Current(); got != "sort=az&idx=4" {
		t.Fatalf("unexpected current entry %q", got)
	}
	if got := state.History.Len(); got != 1 {
		t.Fatalf("expected 1 history entry, got %d", got)
	}
}

func TestRestoreParkedUntilCatalogLoads(t *testing.T) {
	state := newTestState()
	reducer := NewStateReducer()
	src := &staticSource{doc: &catalogDoc200}
	state.CatalogSource = src

	mustReduce(t, reducer, state, ApplyQueryAction{Query: "preview=model_005.schem-5&idx=12"})

	if !state.RestorePending() {
		t.Fatalf("expected restoration to wait for the catalog")
	}
	if state.Window.AnchorIndex != 12 {
		t.Fatalf("expected parked anchor 12, got %d", state.Window.AnchorIndex)
	}
	if state.PreviewID != "model_005.schem-5" {
		t.Fatalf("preview id dropped before load: %q", state.PreviewID)
	}

	mustReduce(t, reducer, state, LoadCatalogAction{})

	if state.RestorePending() {
		t.Fatalf("parked restoration did not start")
	}
	if !state.RestoreActive() || state.Restorer.Target() != 12 {
		t.Fatalf("expected active restoration of 12, got active=%v target=%d", state.RestoreActive(), state.Restorer.Target())
	}
	if _, ok := state.PreviewEntry(); !ok {
		t.Fatalf("expected preview to resolve after load")
	}

	mustReduce(t, reducer, state, FrameAction{})
	if state.RestoreActive() {
		t.Fatalf("expected restoration to finish")
	}
	if got := state.History.Current(); got != "preview=model_005.schem-5&idx=12" {
		t.Fatalf("unexpected current entry %q", got)
	}
}

func TestStalePreviewClearedWithReplace(t *testing.T) {
	state, reducer := newLoadedState(t, 50)

	mustReduce(t, reducer, state, ApplyQueryAction{Query: "preview=missing-9&idx=0"})

	if state.PreviewID != "" {
		t.Fatalf("expected stale preview to be cleared, got %q", state.PreviewID)
	}
	if got := state.History.Current(); got != "idx=0" {
		t.Fatalf("expected replace without preview, got %q", got)
	}
	if got := state.History.Len(); got != 1 {
		t.Fatalf("expected a replace, history has %d entries", got)
	}
}

func TestRestoreTargetClampedToView(t *testing.T) {
	state, reducer := newLoadedState(t, 10)

	mustReduce(t, reducer, state, ApplyQueryAction{Query: "idx=500"})

	if state.Restorer.Target() != 9 {
		t.Fatalf("expected target clamped to 9, got %d", state.Restorer.Target())
	}
	if state.Window.End > len(state.View) || state.Window.Start < 0 {
		t.Fatalf("window out of range: %+v", state.Window)
	}
}

func TestRestoreExhaustsWhenNeverLaidOut(t *testing.T) {
	state, reducer := newLoadedState(t, 200)
	state.Viewport = blindViewport{state}

	mustReduce(t, reducer, state, ApplyQueryAction{Query: "idx=40"})
	for i := 0; i < window.DefaultMaxAttempts; i++ {
		mustReduce(t, reducer, state, FrameAction{})
	}

	if state.RestoreActive() {
		t.Fatalf("restoration must stop after %d attempts", window.DefaultMaxAttempts)
	}
	if state.Restorer.Outcome() != window.OutcomeExhausted {
		t.Fatalf("expected exhausted outcome, got %v", state.Restorer.Outcome())
	}
	if state.Restorer.Attempts() != window.DefaultMaxAttempts {
		t.Fatalf("expected %d attempts, got %d", window.DefaultMaxAttempts, state.Restorer.Attempts())
	}
}

// blindViewport never finds an element.
type blindViewport struct {
	s *AppState
}

func (v blindViewport) MeasureContainerTop() int      { return v.s.ContainerTop() }
func (v blindViewport) HeaderHeight() int             { return v.s.Layout.HeaderHeight }
func (v blindViewport) CurrentScrollOffset() int      { return v.s.ScrollOffset }
func (v blindViewport) ScrollTo(offset int)           { v.s.ScrollTo(offset) }
func (v blindViewport) LocateElement(int) (int, bool) { return 0, false }

func TestLayoutChangeKeepsAnchor(t *testing.T) {
	state, reducer := newLoadedState(t, 200)
	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 40})
	before := state.History.Current()

	mustReduce(t, reducer, state, LayoutMeasuredAction{Columns: 2, RowHeight: 8})

	if state.Window.AnchorIndex != 20 {
		t.Fatalf("expected anchor 20 after relayout, got %d", state.Window.AnchorIndex)
	}
	if state.ScrollOffset != 82 {
		t.Fatalf("expected scroll 82, got %d", state.ScrollOffset)
	}
	if state.Window.Start != 14 {
		t.Fatalf("expected window start 14, got %d", state.Window.Start)
	}
	if state.History.Current() != before {
		t.Fatalf("relayout rewrote history: %q", state.History.Current())
	}
}

func TestFilterKeepsScrollWithinShorterView(t *testing.T) {
	state, reducer := newLoadedState(t, 200)
	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 320})

	mustReduce(t, reducer, state, ApplyQueryAction{Query: "q=model_01"})
	mustReduce(t, reducer, state, FrameAction{})

	if state.ScrollOffset > state.MaxScroll() {
		t.Fatalf("scroll %d beyond max %d", state.ScrollOffset, state.MaxScroll())
	}
	if state.Window.AnchorIndex >= len(state.View) {
		t.Fatalf("anchor %d outside view of %d", state.Window.AnchorIndex, len(state.View))
	}
}

func TestScrollSettleDebouncesReplace(t *testing.T) {
	state, reducer := newLoadedState(t, 200)
	state.Layout.ScrollSettle = 5 * time.Millisecond
	actions := make(chan Action, 4)
	state.SetDispatch(func(a Action) { actions <- a })

	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 8})
	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 32})

	if got := state.History.Current(); got != "idx=0" {
		t.Fatalf("write must wait for the scroll to settle, got %q", got)
	}
	if !state.SettlePending() {
		t.Fatalf("expected a pending settle")
	}

	select {
	case action := <-actions:
		mustReduce(t, reducer, state, action)
	case <-time.After(2 * time.Second):
		t.Fatalf("settle never fired")
	}

	if got := state.History.Current(); got != "idx=20" {
		t.Fatalf("unexpected current entry %q", got)
	}
	if state.SettlePending() {
		t.Fatalf("settle should be cleared")
	}
}

func TestStaleSettleTokenIgnored(t *testing.T) {
	state, reducer := newLoadedState(t, 200)
	state.SetDispatch(func(Action) {})

	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 40})
	stale := state.settleToken
	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 40})

	mustReduce(t, reducer, state, ScrollSettledAction{Token: stale})
	if got := state.History.Current(); got != "idx=0" {
		t.Fatalf("stale settle wrote %q", got)
	}

	mustReduce(t, reducer, state, ScrollSettledAction{Token: state.settleToken})
	if got := state.History.Current(); got == "idx=0" {
		t.Fatalf("current settle did not write")
	}
	state.cancelSettle()
}

func TestPushFlushesPendingScroll(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{name: "sort", action: CycleSortAction{}},
		{name: "preview", action: OpenPreviewAction{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, reducer := newLoadedState(t, 200)
			state.Layout.ScrollSettle = time.Hour
			state.SetDispatch(func(Action) {})

			mustReduce(t, reducer, state, ScrollLinesAction{Delta: 40})
			if !state.SettlePending() {
				t.Fatalf("expected a pending settle")
			}
			mustReduce(t, reducer, state, tt.action)
			if state.SettlePending() {
				t.Fatalf("push must consume the pending settle")
			}
			if got := state.History.Len(); got != 2 {
				t.Fatalf("expected 2 history entries, got %d", got)
			}

			mustReduce(t, reducer, state, GoToHistoryAction{Direction: "back"})
			if got := state.History.Current(); got != "idx=20" {
				t.Fatalf("expected the left entry to keep idx=20, got %q", got)
			}
			if state.Window.AnchorIndex != 20 {
				t.Fatalf("expected anchor 20 after back, got %d", state.Window.AnchorIndex)
			}
		})
	}
}

func TestSearchStartFlushesPendingScroll(t *testing.T) {
	state, reducer := newLoadedState(t, 200)
	state.Layout.ScrollSettle = time.Hour
	state.SetDispatch(func(Action) {})

	mustReduce(t, reducer, state, ScrollLinesAction{Delta: 40})
	mustReduce(t, reducer, state, SearchStartAction{})

	if state.SettlePending() {
		t.Fatalf("expected the settle to be flushed")
	}
	if got := state.History.Current(); got != "idx=20" {
		t.Fatalf("expected idx=20 before search, got %q", got)
	}
}
