package render

import (
	"slices"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += max(r.cachedRuneWidth(ru), 0)
	}
	return width
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}

	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	ellipsisWidth := r.cachedRuneWidth('…')
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	available := maxWidth - ellipsisWidth
	var builder strings.Builder
	currentWidth := 0

	for _, ru := range text {
		runeWidth := max(r.cachedRuneWidth(ru), 0)
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	builder.WriteString(ellipsis)
	return builder.String()
}

func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 && unicode.Is(unicode.Mn, runes[i]) {
			combc = append(combc, runes[i])
			i++
		}

		w := max(r.cachedRuneWidth(mainc), 0)
		if x-startX+w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) drawStyledRune(x, y, maxX int, ru rune, style tcell.Style) int {
	if x >= maxX {
		return x
	}

	width := r.cachedRuneWidth(ru)
	if width <= 0 {
		width = 1
	}

	r.screen.SetContent(x, y, ru, nil, style)
	for w := 1; w < width && x+w < maxX; w++ {
		r.screen.SetContent(x+w, y, ' ', nil, style)
	}
	return x + width
}

// fillRow paints [startX, endX) on row y.
func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

type highlightSpan struct {
	start int
	end   int
}

func (r *Renderer) drawHighlightedText(startX, y, maxX int, text string, spans []highlightSpan, baseStyle, highlightStyle tcell.Style) int {
	if maxX <= startX {
		return startX
	}

	x := startX
	spanIdx := 0

	for idx, ru := range []rune(text) {
		if x >= maxX {
			return x
		}

		for spanIdx < len(spans) && idx >= spans[spanIdx].end {
			spanIdx++
		}

		style := baseStyle
		if spanIdx < len(spans) && idx >= spans[spanIdx].start && idx < spans[spanIdx].end {
			style = highlightStyle
		}

		x = r.drawStyledRune(x, y, maxX, ru, style)
	}

	return x
}

// termHighlightSpans marks every case-insensitive occurrence of each search
// term in text. Spans are rune offsets, sorted and merged.
func termHighlightSpans(terms []string, text string) []highlightSpan {
	if len(terms) == 0 || text == "" {
		return nil
	}
	target := []rune(strings.ToLower(text))
	if len(target) != len([]rune(text)) {
		return nil
	}

	var spans []highlightSpan
	for _, term := range terms {
		pattern := []rune(strings.ToLower(term))
		if len(pattern) == 0 {
			continue
		}
		for i := 0; i+len(pattern) <= len(target); i++ {
			if slices.Equal(target[i:i+len(pattern)], pattern) {
				spans = append(spans, highlightSpan{start: i, end: i + len(pattern)})
			}
		}
	}
	if len(spans) == 0 {
		return nil
	}

	slices.SortFunc(spans, func(a, b highlightSpan) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return a.end - b.end
	})

	merged := spans[:1]
	for _, span := range spans[1:] {
		last := &merged[len(merged)-1]
		if span.start <= last.end {
			last.end = max(last.end, span.end)
			continue
		}
		merged = append(merged, span)
	}
	return merged
}
