package render

import (
	"slices"
	"strings"
	"testing"

	statepkg "github.com/kk-code-lab/rgallery/internal/state"
)

func TestBuildFooterHelpSegments_DefaultMode(t *testing.T) {
	state := &statepkg.AppState{
		ClipboardAvailable: true,
	}

	got := buildFooterHelpSegments(state)
	want := []string{
		"/: search",
		"v/a: facets",
		"s: sort",
		"[]: history",
		"y: yank",
		"?: help",
	}

	if !slices.Equal(got, want) {
		t.Fatalf("default help mismatch\nwant: %#v\n got: %#v", want, got)
	}
}

func TestBuildFooterHelpSegments_SearchMode(t *testing.T) {
	state := &statepkg.AppState{
		SearchActive:       true,
		ClipboardAvailable: true,
	}

	got := buildFooterHelpSegments(state)
	want := []string{
		"type: search",
		"↵/Esc: done",
		"^U: clear",
	}

	if !slices.Equal(got, want) {
		t.Fatalf("search help should only include contextual hints\nwant: %#v\n got: %#v", want, got)
	}
}

func TestBuildFooterHelpSegments_PickerMode(t *testing.T) {
	state := &statepkg.AppState{
		Picker: statepkg.PickerState{Active: true},
	}

	got := buildFooterHelpSegments(state)
	if len(got) != 4 || got[1] != "↵/+: include" {
		t.Fatalf("unexpected picker help: %#v", got)
	}
}

func TestBuildFooterHelpSegments_PreviewMode(t *testing.T) {
	state := &statepkg.AppState{PreviewID: "a-0"}

	got := buildFooterHelpSegments(state)
	if got[0] != "Esc: close" {
		t.Fatalf("expected preview hints first, got %#v", got)
	}
	if got[len(got)-1] != "?: help" {
		t.Fatalf("expected persistent help hint, got %#v", got)
	}
}

func TestBuildFooterHelpTextPadding(t *testing.T) {
	state := &statepkg.AppState{}

	text := buildFooterHelpText(state)
	if !strings.HasPrefix(text, " ") || !strings.HasSuffix(text, " ") {
		t.Fatalf("expected padded help text, got %q", text)
	}
	if buildFooterHelpText(nil) != "" {
		t.Fatalf("expected empty help for nil state")
	}
}
