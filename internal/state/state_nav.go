package state

import (
	"time"

	"github.com/kk-code-lab/rgallery/internal/navstate"
)

// writeNav records the current state in history. Writes are held back while a
// restoration owns the anchor and while search text is still being typed.
func (s *AppState) writeNav(mode navstate.Mode) bool {
	if s.Restorer.Active() || s.SearchActive {
		return false
	}
	return s.Syncer.Write(s.NavState(), mode)
}

// applyNavState moves the whole view to an inbound state in one step.
func (s *AppState) applyNavState(ns navstate.State) {
	s.Restorer.Cancel()
	s.restorePending = false
	s.cancelSettle()
	s.SearchActive = false
	s.Picker = PickerState{}

	s.Filter = ns.Filter.Clone()
	s.Sort = ns.Sort
	s.PreviewID = ns.PreviewID
	s.recomputeView()

	target := max(ns.AnchorIndex, 0)
	s.Window.AnchorIndex = target
	if !s.CatalogLoaded {
		s.restorePending = true
		s.restoreTarget = target
		return
	}

	if s.resolvePreview() {
		s.Syncer.Write(s.NavState(), navstate.ModeReplace)
	}
	s.beginRestore(target)
}

// beginRestore hands the anchor to the restorer. The target is clamped into
// the view so an out-of-range idx lands on the last card.
func (s *AppState) beginRestore(target int) {
	if n := len(s.View); target > n-1 {
		target = max(n-1, 0)
	}
	anchor, start := s.Restorer.Begin(target, s.Window.Columns, s.viewport())
	s.Window.AnchorIndex = anchor
	s.Window.Start = start
	s.recomputeWindow()
	s.SelectedIndex = anchor
	s.clampToView()

	if !s.Restorer.Active() {
		s.Logger.Debug().Str("outcome", s.Restorer.Outcome().String()).Msg("restore finished")
		return
	}
	s.Logger.Debug().Int("target", target).Int("start", start).Msg("restore started")
}

// resumeParkedRestore starts the restoration parked before the catalog
// arrived.
func (s *AppState) resumeParkedRestore() {
	if !s.restorePending {
		return
	}
	target := s.restoreTarget
	s.restorePending = false
	s.restoreTarget = 0
	s.Window.AnchorIndex = target
	if s.resolvePreview() {
		s.Syncer.Write(s.NavState(), navstate.ModeReplace)
	}
	s.beginRestore(target)
}

// cancelRestore drops both an active and a parked restoration.
func (s *AppState) cancelRestore() {
	if s.Restorer.Active() {
		s.Logger.Debug().Int("target", s.Restorer.Target()).Msg("restore cancelled")
	}
	s.Restorer.Cancel()
	if s.restorePending {
		s.restorePending = false
		s.restoreTarget = 0
		s.Window.AnchorIndex = 0
	}
}

// ===== SCROLL SETTLE =====

// scheduleSettle writes a replace entry once scrolling has been quiet for
// Layout.ScrollSettle. Without a dispatcher the write happens immediately.
func (s *AppState) scheduleSettle() {
	s.cancelSettle()

	dispatch := s.getDispatch()
	delay := s.Layout.ScrollSettle
	if dispatch == nil || delay <= 0 {
		s.writeNav(navstate.ModeReplace)
		return
	}

	token := s.settleToken
	s.settleTimer = time.AfterFunc(delay, func() {
		dispatch(ScrollSettledAction{Token: token})
	})
}

func (s *AppState) cancelSettle() {
	if s.settleTimer != nil {
		s.settleTimer.Stop()
		s.settleTimer = nil
	}
	s.settleToken++
}

// flushSettle writes a pending settled scroll now, so the entry about to be
// left behind keeps its position.
func (s *AppState) flushSettle() {
	if s.settleTimer == nil {
		return
	}
	s.cancelSettle()
	s.writeNav(navstate.ModeReplace)
}

// SettlePending reports whether a settled-scroll write is scheduled.
func (s *AppState) SettlePending() bool {
	return s.settleTimer != nil
}
