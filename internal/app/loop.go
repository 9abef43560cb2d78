package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rgallery/internal/state"
)

const (
	doubleClickThreshold = 300 * time.Millisecond
	animationInterval    = 50 * time.Millisecond
	yankFlashDuration    = 100 * time.Millisecond
)

// Run processes terminal events and dispatched actions until quit.
func (app *Application) Run() {
	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	animation := newLoopTimer(animationInterval)
	frames := newLoopTicker(app.frameInterval)
	defer animation.stop()
	defer frames.stop()

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		if app.shouldAnimate() {
			animation.start()
		} else {
			animation.stop()
		}
		// Restoration advances once per frame until it settles.
		if app.state.RestoreActive() {
			frames.start()
		} else {
			frames.stop()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animation.C():
			renderPending = true
		case <-frames.C():
			app.reduce(statepkg.FrameAction{})
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

// render draws the state and feeds the grid the screen can hold back into
// it. When that differs from what the state was laid out for, the state is
// re-anchored and drawn again.
func (app *Application) render() {
	app.renderer.Render(app.state)
	grid := app.renderer.LastFrame().Grid
	win := app.state.Window
	if win.Measured && grid.Columns == win.Columns && grid.RowHeight == win.RowHeight {
		return
	}
	app.reduce(statepkg.LayoutMeasuredAction{Columns: grid.Columns, RowHeight: grid.RowHeight})
	app.renderer.Render(app.state)
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps wheel notches to scrolling and primary clicks on a card to
// selection. A second click on the same card opens its preview.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.overlayActive() {
		return false
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.ScrollLinesAction{Delta: -statepkg.WheelLines}
		return true
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.ScrollLinesAction{Delta: statepkg.WheelLines}
		return true
	case buttons&tcell.Button1 == 0:
		return false
	}

	x, y := ev.Position()
	idx, ok := app.renderer.CardAt(app.state, x, y)
	if !ok {
		app.lastClickIndex = -1
		return false
	}

	doubleClick := app.lastClickIndex == idx && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickIndex = idx
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.MouseSelectAction{Index: idx}
	if doubleClick {
		app.actionCh <- statepkg.OpenPreviewAction{}
		app.lastClickIndex = -1
	}
	return true
}

// overlayActive reports whether something covers the grid and owns input.
func (app *Application) overlayActive() bool {
	s := app.state
	return s.DisclaimerVisible || s.HelpVisible || s.Picker.Active || s.PreviewID != ""
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) shouldAnimate() bool {
	if app.state == nil || app.state.LastYankTime.IsZero() {
		return false
	}
	return time.Since(app.state.LastYankTime) < yankFlashDuration
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankQueryAction:
		return app.handleClipboard()
	}

	app.reduce(action)
	return true
}

func actionName(action statepkg.Action) string {
	return fmt.Sprintf("%T", action)
}

// loopTimer is a restartable one-shot timer whose channel is nil while
// stopped, so it can sit in a select unconditionally.
type loopTimer struct {
	interval time.Duration
	timer    *time.Timer
	ch       <-chan time.Time
}

func newLoopTimer(interval time.Duration) *loopTimer {
	return &loopTimer{interval: interval}
}

func (t *loopTimer) C() <-chan time.Time {
	return t.ch
}

func (t *loopTimer) start() {
	if t.timer == nil {
		t.timer = time.NewTimer(t.interval)
	} else {
		if !t.timer.Stop() {
			select {
			case <-t.timer.C:
			default:
			}
		}
		t.timer.Reset(t.interval)
	}
	t.ch = t.timer.C
}

func (t *loopTimer) stop() {
	if t.timer == nil {
		return
	}
	if !t.timer.Stop() {
		select {
		case <-t.timer.C:
		default:
		}
	}
	t.ch = nil
}

// loopTicker runs only while started; starting a running ticker is a no-op.
type loopTicker struct {
	interval time.Duration
	ticker   *time.Ticker
}

func newLoopTicker(interval time.Duration) *loopTicker {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &loopTicker{interval: interval}
}

func (t *loopTicker) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

func (t *loopTicker) start() {
	if t.ticker == nil {
		t.ticker = time.NewTicker(t.interval)
	}
}

func (t *loopTicker) stop() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	t.ticker = nil
}
