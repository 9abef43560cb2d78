package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rgallery/internal/ack"
	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/config"
	"github.com/kk-code-lab/rgallery/internal/logging"
	statepkg "github.com/kk-code-lab/rgallery/internal/state"
	"github.com/kk-code-lab/rgallery/internal/window"
)

type staticSource struct {
	doc *catalog.Document
	err error
}

func (s staticSource) Fetch(context.Context) (*catalog.Document, error) { return s.doc, s.err }
func (s staticSource) String() string                                   { return "static" }

func testDocument(n int) *catalog.Document {
	doc := &catalog.Document{}
	for i := 0; i < n; i++ {
		doc.Entries = append(doc.Entries, catalog.RawEntry{
			File:        fmt.Sprintf("build_%03d.schem", i),
			Author:      []string{"alice", "bob"}[i%2],
			Version:     "1.21",
			TimeCreated: json.RawMessage(strconv.Itoa(1700000000 + i)),
		})
	}
	return doc
}

type testAppOptions struct {
	entries      int
	view         string
	acknowledged bool
}

// newTestApp builds an application on a 120x40 simulation screen and waits
// for the catalog to load.
func newTestApp(t *testing.T, opts testAppOptions) (*Application, tcell.SimulationScreen) {
	t.Helper()
	flag := ack.New(t.TempDir())
	if opts.acknowledged {
		if err := flag.Acknowledge(time.Now()); err != nil {
			t.Fatalf("acknowledge: %v", err)
		}
	}

	scr := tcell.NewSimulationScreen("")
	app, err := newApplication(scr, Options{
		Config: config.DefaultConfig(),
		Logger: logging.Nop(),
		Source: staticSource{doc: testDocument(opts.entries)},
		View:   opts.view,
		Ack:    flag,
	})
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	scr.SetSize(120, 40)
	app.reduce(statepkg.ResizeAction{Width: 120, Height: 40})
	waitForCatalog(t, app)
	return app, scr
}

func waitForCatalog(t *testing.T, app *Application) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !app.state.CatalogLoaded && app.state.LoadError == nil {
		select {
		case action := <-app.actionCh:
			app.handleAction(action)
		case <-deadline:
			t.Fatalf("catalog did not load")
		}
	}
}

func TestNewApplicationRequiresSource(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if _, err := newApplication(scr, Options{}); err != catalog.ErrEmptySource {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
}

func TestNewApplicationLoadsCatalog(t *testing.T) {
	app, _ := newTestApp(t, testAppOptions{entries: 30})

	if app.state.LoadError != nil {
		t.Fatalf("unexpected load error: %v", app.state.LoadError)
	}
	if got := app.state.CatalogSize(); got != 30 {
		t.Fatalf("expected 30 entries, got %d", got)
	}
	if !app.state.DisclaimerVisible {
		t.Fatalf("expected disclaimer on first run")
	}
}

func TestNewApplicationSkipsAcknowledgedDisclaimer(t *testing.T) {
	app, _ := newTestApp(t, testAppOptions{entries: 5, acknowledged: true})
	if app.state.DisclaimerVisible {
		t.Fatalf("expected disclaimer hidden once acknowledged")
	}
}

func TestLayoutFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout.HeaderHeight = 3
	cfg.Layout.ScrollSettleMs = 40
	cfg.Layout.HalfRowThreshold = 0.25

	layout := layoutFromConfig(cfg)
	if layout.HeaderHeight != 3 || layout.ScrollSettle != 40*time.Millisecond {
		t.Fatalf("unexpected layout %+v", layout)
	}
	if tracker := trackerFromConfig(cfg); tracker.HalfRowThreshold != 0.25 || tracker.BufferRows != cfg.Layout.BufferRows {
		t.Fatalf("unexpected tracker %+v", tracker)
	}
}

func TestRenderFeedsMeasuredGridBack(t *testing.T) {
	app, _ := newTestApp(t, testAppOptions{entries: 40, acknowledged: true})

	app.render()

	frame := app.renderer.LastFrame()
	if !app.state.Window.Measured {
		t.Fatalf("expected window to be measured after render")
	}
	if app.state.Window.Columns != frame.Grid.Columns || app.state.Window.RowHeight != frame.Grid.RowHeight {
		t.Fatalf("window %dx%d does not match grid %dx%d",
			app.state.Window.Columns, app.state.Window.RowHeight, frame.Grid.Columns, frame.Grid.RowHeight)
	}
	if frame.Columns != frame.Grid.Columns {
		t.Fatalf("expected second pass to draw with measured columns, got %d", frame.Columns)
	}
}

func TestScreenViewportLocatesOnlyDrawnCards(t *testing.T) {
	app, _ := newTestApp(t, testAppOptions{entries: 500, acknowledged: true})
	vp := app.state.Viewport

	if _, ok := vp.LocateElement(0); ok {
		t.Fatalf("expected nothing locatable before the first frame")
	}

	app.render()
	top, ok := vp.LocateElement(0)
	if !ok {
		t.Fatalf("expected first card to be locatable after render")
	}
	if top != app.state.CardTop(0) {
		t.Fatalf("expected top %d, got %d", app.state.CardTop(0), top)
	}
	if _, ok := vp.LocateElement(499); ok {
		t.Fatalf("expected card outside the window to be unlocatable")
	}
}

func TestViewRestoresAcrossFrames(t *testing.T) {
	app, _ := newTestApp(t, testAppOptions{entries: 500, view: "idx=100", acknowledged: true})

	if !app.state.RestoreActive() {
		t.Fatalf("expected restore to start once the catalog loaded")
	}
	for i := 0; i < 20 && app.state.RestoreActive(); i++ {
		app.render()
		app.handleAction(statepkg.FrameAction{})
	}
	if app.state.RestoreActive() {
		t.Fatalf("expected restore to finish")
	}
	if app.state.Restorer.Outcome() != window.OutcomeLocated {
		t.Fatalf("expected located outcome, got %s", app.state.Restorer.Outcome())
	}
	if got := app.ShareQuery(); got != "idx=100" {
		t.Fatalf("expected idx=100, got %q", got)
	}
	if got := app.state.History.Current(); got != "idx=100" {
		t.Fatalf("expected history idx=100, got %q", got)
	}
	want := app.state.CardTop(100) - app.state.Layout.HeaderHeight
	if app.state.ScrollOffset != want {
		t.Fatalf("expected scroll %d, got %d", want, app.state.ScrollOffset)
	}
}

func TestHandleActionQuit(t *testing.T) {
	app, _ := newTestApp(t, testAppOptions{entries: 3, acknowledged: true})
	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("expected quit not to request a render")
	}
	if !app.shouldQuit {
		t.Fatalf("expected shouldQuit")
	}
}

func TestHandleActionRecordsReducerError(t *testing.T) {
	app, _ := newTestApp(t, testAppOptions{entries: 3})
	dir := t.TempDir()
	// A state directory that is a file cannot hold the flag.
	blocker := ack.New(dir)
	if err := blocker.Acknowledge(time.Now()); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	app.state.Disclaimer = ack.New(blocker.Path())

	app.handleAction(statepkg.AcknowledgeDisclaimerAction{})
	if app.state.LastError == nil {
		t.Fatalf("expected acknowledgement failure to be recorded")
	}
	if !app.state.DisclaimerVisible {
		t.Fatalf("expected disclaimer to stay after a failed acknowledgement")
	}
}
