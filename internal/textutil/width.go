package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to maxWidth cells, ending with an ellipsis when
// anything was cut.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return ellipsis
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}

// Fit truncates or right-pads text to exactly width cells.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = Truncate(text, width)
	return runewidth.FillRight(text, width)
}

// Center pads text on both sides to width cells.
func Center(text string, width int) string {
	text = Truncate(text, width)
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}

// Wrap breaks text into lines of at most width cells, preferring spaces.
// Words longer than width are split.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range words {
		ww := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+ww <= width {
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + ww
			continue
		}
		if lineWidth > 0 {
			flush()
		}
		for ww > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				break
			}
			lines = append(lines, head)
			word = word[len(head):]
			ww = runewidth.StringWidth(word)
		}
		line.WriteString(word)
		lineWidth = ww
	}
	if lineWidth > 0 {
		flush()
	}
	return lines
}
