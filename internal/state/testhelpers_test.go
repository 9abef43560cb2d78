package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/window"
)

var (
	testAuthors  = []string{"alice", "bob", ""}
	testVersions = []string{"1.20", "1.21"}
)

func testRawEntries(n int) []catalog.RawEntry {
	raw := make([]catalog.RawEntry, n)
	for i := range raw {
		raw[i] = catalog.RawEntry{
			File:        fmt.Sprintf("model_%03d.schem", i),
			Author:      testAuthors[i%len(testAuthors)],
			Version:     testVersions[i%len(testVersions)],
			TimeCreated: json.RawMessage(strconv.Itoa(1000 + i)),
		}
	}
	return raw
}

type staticSource struct {
	doc   *catalog.Document
	err   error
	calls int
}

func (s *staticSource) Fetch(context.Context) (*catalog.Document, error) {
	s.calls++
	return s.doc, s.err
}

func (s *staticSource) String() string { return "static" }

func newTestState() *AppState {
	s := NewAppState(DefaultLayout(), window.NewTracker(), window.DefaultMaxAttempts, zerolog.Nop())
	s.ScreenWidth = 120
	s.ScreenHeight = 40
	return s
}

// newLoadedState returns a state holding n entries laid out in four columns
// of eight-line rows.
func newLoadedState(t *testing.T, n int) (*AppState, *StateReducer) {
	t.Helper()
	s := newTestState()
	s.CatalogSource = &staticSource{doc: &catalog.Document{Entries: testRawEntries(n)}}
	s.CatalogPaths = catalog.DefaultPathOptions()
	r := NewStateReducer()
	mustReduce(t, r, s, LoadCatalogAction{})
	mustReduce(t, r, s, LayoutMeasuredAction{Columns: 4, RowHeight: 8})
	if !s.CatalogLoaded || len(s.View) != n {
		t.Fatalf("catalog not loaded: loaded=%v view=%d err=%v", s.CatalogLoaded, len(s.View), s.LoadError)
	}
	return s, r
}

func mustReduce(t *testing.T, r *StateReducer, s *AppState, action Action) {
	t.Helper()
	if _, err := r.Reduce(s, action); err != nil {
		t.Fatalf("Reduce(%T) error: %v", action, err)
	}
}

var catalogDoc200 = catalog.Document{Entries: testRawEntries(200)}
