package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rgallery/internal/state"
	"github.com/kk-code-lab/rgallery/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	compactDesc := "Compact cards"
	if state != nil && state.CompactMode {
		compactDesc = "Full cards"
	}

	sections := []helpOverlaySection{
		{
			title: "Browse",
			entries: []helpOverlayEntry{
				{keys: "←↑↓→ / hjkl", desc: "Move selection"},
				{keys: "^E / ^Y", desc: "Scroll one line"},
				{keys: "PgUp / PgDn", desc: "Scroll one page"},
				{keys: "g / G", desc: "First / last entry"},
				{keys: "↵", desc: "Open preview"},
				{keys: "[ / ]", desc: "History back/forward"},
			},
		},
		{
			title: "Filter",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Search names, authors, versions"},
				{keys: "v / a", desc: "Pick versions / authors"},
				{keys: "s", desc: "Cycle sort order"},
				{keys: "x", desc: "Clear all filters"},
			},
		},
		{
			title: "Actions",
			entries: []helpOverlayEntry{
				{keys: "c", desc: compactDesc},
				{keys: "y", desc: "Yank shareable view"},
				{keys: "r", desc: "Retry catalog load"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.Fit(textutil.Label(entry.keys), 14)
	desc := textutil.Label(entry.desc)
	return fmt.Sprintf("  %s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, w, y, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	r.fillRow(0, w, 0, headerStyle)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if h > 1 {
		r.fillRow(0, w, h-1, headerStyle)
		r.drawTextLine(0, h-1, w, r.truncateTextToWidth(footer, w), headerStyle)
	}
}
