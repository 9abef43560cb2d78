package render

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/filter"
	statepkg "github.com/kk-code-lab/rgallery/internal/state"
	"github.com/kk-code-lab/rgallery/internal/textutil"
)

const yankFlashDuration = 100 * time.Millisecond

// Frame records what the last Render call laid out.
type Frame struct {
	Drawn        bool
	Start        int
	End          int
	Columns      int
	RowHeight    int
	ScrollOffset int
	Grid         GridMetrics
}

// Contains reports whether the card at index was materialized in the frame.
func (f Frame) Contains(index int) bool {
	return f.Drawn && index >= f.Start && index < f.End
}

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
	lastFrame        Frame
	now              func() time.Time
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		now:    time.Now,
	}
}

// LastFrame returns the layout of the most recent Render call.
func (r *Renderer) LastFrame() Frame {
	return r.lastFrame
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	grid := ComputeGrid(w, state.Layout, state.CompactMode)
	r.lastFrame = Frame{Grid: grid}

	if state.DisclaimerVisible {
		r.drawDisclaimer(w, h)
		r.screen.Show()
		return
	}
	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	viewportH := max(h-statepkg.StatusHeight, 0)
	r.drawSummary(state, w, viewportH)
	r.drawGrid(state, grid, viewportH)
	r.drawHeader(state, w)

	if entry, ok := state.PreviewEntry(); ok {
		r.drawPreviewOverlay(entry, w, viewportH)
	}
	if state.Picker.Active {
		r.drawPickerOverlay(state, w, viewportH)
	}

	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

// ===== HEADER =====

// drawHeader renders the overlay that covers the top HeaderHeight lines.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	lines := state.Layout.HeaderHeight
	if lines <= 0 {
		return
	}
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	for y := 0; y < lines; y++ {
		r.fillRow(0, w, y, headerStyle)
	}

	x := r.drawTextLine(0, 0, w, " rgallery ", headerStyle.Bold(true))
	segments := []string{
		formatCompactNumber(len(state.View)) + " of " + formatCompactNumber(state.CatalogSize()),
		"sort: " + state.Sort.Label(),
	}
	if state.CompactMode {
		segments = append(segments, "compact")
	}
	x = r.drawTextLine(x, 0, w-x, "│ "+strings.Join(segments, " │ "), headerStyle)

	status, statusStyle := r.headerStatus(state, headerStyle)
	if status != "" {
		status = r.truncateTextToWidth(status, max(w-x-1, 0))
		r.drawTextLine(w-r.measureTextWidth(status)-1, 0, w, status, statusStyle)
	}

	if lines < 2 {
		return
	}
	r.drawSearchLine(state, w, headerStyle)
}

func (r *Renderer) headerStatus(state *statepkg.AppState, base tcell.Style) (string, tcell.Style) {
	switch {
	case state.LoadError != nil:
		return "load failed · r retry", base.Foreground(r.theme.ErrorFg).Bold(true)
	case state.CatalogLoading:
		return "loading catalog…", base
	case state.RestoreActive():
		return "restoring…", base
	}
	return "", base
}

func (r *Renderer) drawSearchLine(state *statepkg.AppState, w int, base tcell.Style) {
	text := state.Filter.SearchText
	switch {
	case state.SearchActive:
		line := " / " + textutil.Label(text) + "▏"
		r.drawTextLine(0, 1, w, r.truncateTextToWidth(line, w), base.Bold(true))
	case text != "":
		line := " search: " + textutil.Label(text)
		r.drawTextLine(0, 1, w, r.truncateTextToWidth(line, w), base)
	default:
		r.drawTextLine(0, 1, w, r.truncateTextToWidth(" / search  v versions  a authors", w), base.Foreground(r.theme.MutedFg))
	}
}

// ===== SUMMARY =====

// drawSummary renders the block between the header and the first grid row.
// It scrolls with the document.
func (r *Renderer) drawSummary(state *statepkg.AppState, w, viewportH int) {
	top := state.Layout.HeaderHeight - state.ScrollOffset
	style := tcell.StyleDefault.Foreground(r.theme.SummaryFg)

	lines := []string{r.summaryCountLine(state), ""}
	for i := 0; i < state.Layout.SummaryHeight && i < len(lines); i++ {
		y := top + i
		if y < 0 || y >= viewportH {
			continue
		}
		if i == 1 {
			r.drawFilterChips(state, y, w)
			continue
		}
		r.drawTextLine(1, y, w-2, r.truncateTextToWidth(lines[i], w-2), style)
	}
}

func (r *Renderer) summaryCountLine(state *statepkg.AppState) string {
	if !state.CatalogLoaded {
		return ""
	}
	line := "window " + formatRange(state.Window.Start, state.Window.End, len(state.View))
	if state.LoadElapsed > 0 {
		line += " · loaded in " + formatDurationShort(state.LoadElapsed)
	}
	return line
}

func (r *Renderer) drawFilterChips(state *statepkg.AppState, y, w int) {
	muted := tcell.StyleDefault.Foreground(r.theme.MutedFg)
	include := tcell.StyleDefault.Foreground(r.theme.IncludeFg)
	exclude := tcell.StyleDefault.Foreground(r.theme.ExcludeFg)

	if state.Filter.IsZero() {
		r.drawTextLine(1, y, w-2, "no filters", muted)
		return
	}

	x := 1
	for _, facet := range []filter.Facet{filter.FacetVersion, filter.FacetAuthor} {
		inc := state.Filter.Includes(facet).Sorted()
		exc := state.Filter.Excludes(facet).Sorted()
		if len(inc) == 0 && len(exc) == 0 {
			continue
		}
		x = r.drawTextLine(x, y, w-x, facet.String()+" ", muted)
		for _, v := range inc {
			x = r.drawTextLine(x, y, w-x, "+"+textutil.Label(v)+" ", include)
		}
		for _, v := range exc {
			x = r.drawTextLine(x, y, w-x, "−"+textutil.Label(v)+" ", exclude)
		}
		x = r.drawTextLine(x, y, w-x, " ", muted)
	}
}

// ===== GRID =====

// drawGrid draws the materialized window. Cards are placed with the columns
// and row height the state was laid out for, which can lag the screen by one
// frame after a resize.
func (r *Renderer) drawGrid(state *statepkg.AppState, grid GridMetrics, viewportH int) {
	cols := max(state.Window.Columns, 1)
	rh := max(state.Window.RowHeight, 1)
	placement := grid
	placement.Columns = cols

	if msg, detail := r.emptyMessage(state); msg != "" {
		r.drawEmptyState(state, msg, detail, viewportH)
	}

	terms := filter.SearchTerms(state.Filter.SearchText)
	for k, entry := range state.WindowEntries() {
		idx := state.Window.Start + k
		top := state.CardTop(idx) - state.ScrollOffset
		if top >= viewportH || top+rh <= 0 {
			continue
		}
		x := placement.cardX(idx % cols)
		card := cardBox{x: x, y: top, width: grid.CardWidth, height: rh - 1, limit: viewportH}
		selected := idx == state.SelectedIndex
		if rh < minNormalRowHeight {
			r.drawCompactCard(entry, card, selected, terms)
		} else {
			r.drawCard(entry, card, selected, terms)
		}
	}

	r.lastFrame = Frame{
		Drawn:        true,
		Start:        state.Window.Start,
		End:          state.Window.End,
		Columns:      cols,
		RowHeight:    rh,
		ScrollOffset: state.ScrollOffset,
		Grid:         grid,
	}
}

func (r *Renderer) emptyMessage(state *statepkg.AppState) (string, string) {
	switch {
	case state.CatalogLoading:
		return "Loading catalog…", ""
	case state.LoadError != nil:
		return "Could not load the catalog.", state.LoadError.Error()
	case state.NoResults():
		return "No entries match the current filters.", "x clears all filters"
	}
	return "", ""
}

func (r *Renderer) drawEmptyState(state *statepkg.AppState, msg, detail string, viewportH int) {
	w, _ := r.screen.Size()
	y := state.ContainerTop() + 1 - state.ScrollOffset
	style := tcell.StyleDefault.Foreground(r.theme.MutedFg)
	if state.LoadError != nil {
		style = tcell.StyleDefault.Foreground(r.theme.ErrorFg)
	}
	if y >= 0 && y < viewportH {
		r.drawTextLine(2, y, w-4, r.truncateTextToWidth(msg, w-4), style.Bold(true))
	}
	if detail == "" {
		return
	}
	for i, line := range textutil.Wrap(textutil.Label(detail), max(w-4, 1)) {
		if y+1+i >= viewportH {
			break
		}
		if y+1+i >= 0 {
			r.drawTextLine(2, y+1+i, w-4, line, tcell.StyleDefault.Foreground(r.theme.MutedFg))
		}
	}
}

type cardBox struct {
	x, y          int
	width, height int
	limit         int // first screen row that must stay untouched
}

func (c cardBox) visible(y int) bool {
	return y >= 0 && y < c.limit
}

func (r *Renderer) drawCard(entry catalog.Entry, card cardBox, selected bool, terms []string) {
	border := tcell.StyleDefault.Foreground(r.theme.CardBorder)
	body := tcell.StyleDefault.Foreground(r.theme.CardFg)
	muted := tcell.StyleDefault.Foreground(r.theme.MutedFg)
	if selected {
		border = border.Foreground(r.theme.SelectionBg).Bold(true)
	}
	inner := card.width - 2
	bottom := card.y + card.height - 1

	for y := card.y; y <= bottom; y++ {
		if !card.visible(y) {
			continue
		}
		left, right, fill := '│', '│', ' '
		switch y {
		case card.y:
			left, right, fill = '┌', '┐', '─'
		case bottom:
			left, right, fill = '└', '┘', '─'
		}
		r.screen.SetContent(card.x, y, left, nil, border)
		for x := card.x + 1; x < card.x+card.width-1; x++ {
			r.screen.SetContent(x, y, fill, nil, border)
		}
		r.screen.SetContent(card.x+card.width-1, y, right, nil, border)
	}

	title := r.truncateTextToWidth(textutil.LabelOr(entry.File, "(unnamed)"), inner)
	titleStyle := body.Bold(true)
	if selected {
		titleStyle = titleStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	lines := cardDetailLines(entry)

	y := card.y + 1
	if card.visible(y) && y < bottom {
		r.fillRow(card.x+1, card.x+1+inner, y, titleStyle)
		r.drawHighlightedText(card.x+1, y, card.x+1+inner, title, termHighlightSpans(terms, title), titleStyle, titleStyle.Foreground(r.theme.MatchFg))
	}
	for _, line := range lines {
		y++
		if y >= bottom {
			break
		}
		if !card.visible(y) {
			continue
		}
		style := body
		if line.muted {
			style = muted
		}
		r.drawTextLine(card.x+1, y, inner, r.truncateTextToWidth(line.text, inner), style)
	}
}

type cardLine struct {
	text  string
	muted bool
}

func cardDetailLines(entry catalog.Entry) []cardLine {
	lines := make([]cardLine, 0, 4)
	if entry.Author != "" {
		lines = append(lines, cardLine{text: "by " + textutil.Label(entry.Author)})
	} else {
		lines = append(lines, cardLine{text: "unknown author", muted: true})
	}

	meta := make([]string, 0, 2)
	if entry.Version != "" {
		meta = append(meta, "v"+textutil.Label(entry.Version))
	}
	if entry.Size != "" {
		meta = append(meta, textutil.Label(entry.Size))
	}
	lines = append(lines, cardLine{text: strings.Join(meta, " · ")})

	dims := formatDimensions(entry.Dimensions)
	if entry.FileSizeBytes > 0 {
		if dims != "" {
			dims += " · "
		}
		dims += formatBytes(entry.FileSizeBytes)
	}
	lines = append(lines, cardLine{text: dims, muted: true})

	created := formatCreated(entry.CreatedAt)
	if entry.HasRender() {
		created += " · render"
	}
	lines = append(lines, cardLine{text: created, muted: true})
	return lines
}

func (r *Renderer) drawCompactCard(entry catalog.Entry, card cardBox, selected bool, terms []string) {
	if !card.visible(card.y) {
		return
	}
	style := tcell.StyleDefault.Foreground(r.theme.CardFg)
	if selected {
		style = style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	r.fillRow(card.x, card.x+card.width, card.y, style)

	title := textutil.LabelOr(entry.File, "(unnamed)")
	if entry.Author != "" {
		title += " · " + textutil.Label(entry.Author)
	}
	title = r.truncateTextToWidth(title, card.width-1)
	r.drawHighlightedText(card.x+1, card.y, card.x+card.width, title, termHighlightSpans(terms, title), style, style.Foreground(r.theme.MatchFg))
}

// ===== STATUS LINE =====

func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	if h <= 0 {
		return
	}
	y := h - 1
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRow(0, w, y, normalStyle)

	leftStyle := normalStyle
	left := "?" + state.ShareQuery()
	if !state.LastYankTime.IsZero() && r.now().Sub(state.LastYankTime) < yankFlashDuration {
		leftStyle = tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
	}
	if state.LastError != nil {
		left = "error: " + textutil.Label(state.LastError.Error())
		leftStyle = normalStyle.Foreground(r.theme.ErrorFg)
	}

	help := buildFooterHelpText(state)
	helpWidth := r.measureTextWidth(help)
	leftWidth := r.measureTextWidth(left)
	if leftWidth+helpWidth+1 > w {
		help = ""
		helpWidth = 0
	}

	left = r.truncateTextToWidth(left, w-helpWidth)
	r.drawTextLine(0, y, w, left, leftStyle)
	if help != "" {
		r.drawTextLine(w-helpWidth, y, helpWidth, help, normalStyle.Foreground(r.theme.MutedFg))
	}
}
