package render

import (
	"strings"
	"testing"

	statepkg "github.com/kk-code-lab/rgallery/internal/state"
)

func TestHelpOverlayListsKeys(t *testing.T) {
	lines := buildHelpOverlayLines(&statepkg.AppState{})
	joined := strings.Join(lines, "\n")

	for _, want := range []string{"Browse", "History back/forward", "Pick versions / authors", "Compact cards", "Yank shareable view"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected help to contain %q\n%s", want, joined)
		}
	}
}

func TestHelpOverlayReflectsCompactMode(t *testing.T) {
	lines := buildHelpOverlayLines(&statepkg.AppState{CompactMode: true})
	joined := strings.Join(lines, "\n")

	if !strings.Contains(joined, "Full cards") {
		t.Fatalf("expected compact toggle to offer full cards")
	}
}

func TestFormatHelpOverlayEntryAlignsKeys(t *testing.T) {
	a := formatHelpOverlayEntry(helpOverlayEntry{keys: "q", desc: "Quit"})
	b := formatHelpOverlayEntry(helpOverlayEntry{keys: "PgUp / PgDn", desc: "Page"})

	if strings.Index(a, "Quit") != strings.Index(b, "Page") {
		t.Fatalf("descriptions not aligned: %q vs %q", a, b)
	}
}
