package render

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgallery/internal/catalog"
	statepkg "github.com/kk-code-lab/rgallery/internal/state"
	"github.com/kk-code-lab/rgallery/internal/textutil"
)

const (
	previewMaxWidth  = 72
	pickerMaxWidth   = 48
	pickerMaxHeight  = 18
	overlayMinWidth  = 20
	overlayMinHeight = 5
)

type overlayRect struct {
	x, y, w, h int
}

// centeredRect fits a box of the wanted size into the area between the header
// and the status line.
func centeredRect(wantW, wantH, screenW, top, bottom int) overlayRect {
	w := min(wantW, screenW-4)
	h := min(wantH, bottom-top)
	return overlayRect{
		x: max((screenW-w)/2, 0),
		y: top + max((bottom-top-h)/2, 0),
		w: w,
		h: h,
	}
}

// drawBox clears rect and frames it with a title in the top border.
func (r *Renderer) drawBox(rect overlayRect, title string) tcell.Style {
	style := tcell.StyleDefault.Background(r.theme.OverlayBg).Foreground(r.theme.OverlayFg)
	for y := rect.y; y < rect.y+rect.h; y++ {
		r.fillRow(rect.x, rect.x+rect.w, y, style)
	}
	right := rect.x + rect.w - 1
	bottom := rect.y + rect.h - 1
	for x := rect.x + 1; x < right; x++ {
		r.screen.SetContent(x, rect.y, '─', nil, style)
		r.screen.SetContent(x, bottom, '─', nil, style)
	}
	for y := rect.y + 1; y < bottom; y++ {
		r.screen.SetContent(rect.x, y, '│', nil, style)
		r.screen.SetContent(right, y, '│', nil, style)
	}
	r.screen.SetContent(rect.x, rect.y, '┌', nil, style)
	r.screen.SetContent(right, rect.y, '┐', nil, style)
	r.screen.SetContent(rect.x, bottom, '└', nil, style)
	r.screen.SetContent(right, bottom, '┘', nil, style)

	if title != "" {
		title = r.truncateTextToWidth(" "+title+" ", rect.w-4)
		r.drawTextLine(rect.x+2, rect.y, rect.w-4, title, style.Bold(true))
	}
	return style
}

// ===== PREVIEW =====

func previewFields(entry catalog.Entry) [][2]string {
	fields := [][2]string{
		{"Author", textutil.LabelOr(entry.Author, "unknown")},
		{"Version", textutil.LabelOr(entry.Version, "unknown")},
		{"Size", textutil.LabelOr(entry.Size, "-")},
	}
	if dims := formatDimensions(entry.Dimensions); dims != "" {
		fields = append(fields, [2]string{"Dimensions", dims})
	}
	if entry.FileSizeBytes > 0 {
		fields = append(fields, [2]string{"File size", fmt.Sprintf("%s (%s bytes)", formatBytes(entry.FileSizeBytes), strconv.FormatInt(entry.FileSizeBytes, 10))})
	}
	if entry.DataVersion > 0 {
		fields = append(fields, [2]string{"Data version", strconv.Itoa(entry.DataVersion)})
	}
	fields = append(fields,
		[2]string{"Created", formatCreated(entry.CreatedAt)},
		[2]string{"Download", textutil.Label(entry.FilePath)},
	)
	if entry.HasRender() {
		fields = append(fields, [2]string{"Render", textutil.Label(entry.RenderPath)})
	}
	fields = append(fields, [2]string{"Id", textutil.Label(entry.ID)})
	return fields
}

func (r *Renderer) drawPreviewOverlay(entry catalog.Entry, w, viewportH int) {
	fields := previewFields(entry)
	rect := centeredRect(previewMaxWidth, len(fields)+4, w, 1, viewportH)
	if rect.w < overlayMinWidth || rect.h < overlayMinHeight {
		return
	}
	style := r.drawBox(rect, textutil.LabelOr(entry.File, "(unnamed)"))
	labelStyle := style.Foreground(r.theme.MutedFg)

	inner := rect.w - 4
	labelWidth := 13
	y := rect.y + 2
	for _, field := range fields {
		if y >= rect.y+rect.h-1 {
			break
		}
		r.drawTextLine(rect.x+2, y, labelWidth, textutil.Fit(field[0], labelWidth), labelStyle)
		value := r.truncateTextToWidth(field[1], inner-labelWidth-1)
		r.drawTextLine(rect.x+2+labelWidth+1, y, inner-labelWidth-1, value, style)
		y++
	}
}

// ===== FACET PICKER =====

func (r *Renderer) drawPickerOverlay(state *statepkg.AppState, w, viewportH int) {
	rect := centeredRect(pickerMaxWidth, pickerMaxHeight, w, 1, viewportH)
	if rect.w < overlayMinWidth || rect.h < overlayMinHeight {
		return
	}
	facet := state.Picker.Facet
	style := r.drawBox(rect, "Filter by "+facet.String())
	inner := rect.w - 4

	query := "> " + textutil.Label(state.Picker.Query) + "▏"
	r.drawTextLine(rect.x+2, rect.y+1, inner, r.truncateTextToWidth(query, inner), style.Bold(true))

	options := state.PickerOptions()
	rows := rect.h - 3
	if len(options) == 0 {
		r.drawTextLine(rect.x+2, rect.y+2, inner, "no matching values", style.Foreground(r.theme.MutedFg))
		return
	}

	offset := 0
	if state.Picker.Cursor >= rows {
		offset = state.Picker.Cursor - rows + 1
	}
	includes := state.Filter.Includes(facet)
	excludes := state.Filter.Excludes(facet)

	for i := 0; i < rows && offset+i < len(options); i++ {
		opt := options[offset+i]
		y := rect.y + 2 + i

		lineStyle := style
		marker := "  "
		switch {
		case includes.Has(opt.Value):
			marker = "+ "
			lineStyle = lineStyle.Foreground(r.theme.IncludeFg)
		case excludes.Has(opt.Value):
			marker = "− "
			lineStyle = lineStyle.Foreground(r.theme.ExcludeFg)
		case opt.Count == 0:
			lineStyle = lineStyle.Foreground(r.theme.MutedFg)
		}
		if offset+i == state.Picker.Cursor {
			lineStyle = lineStyle.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		}

		count := strconv.Itoa(opt.Count)
		label := r.truncateTextToWidth(marker+textutil.Label(opt.Value), inner-len(count)-1)
		r.fillRow(rect.x+2, rect.x+2+inner, y, lineStyle)
		r.drawTextLine(rect.x+2, y, inner, label, lineStyle)
		r.drawTextLine(rect.x+2+inner-len(count), y, len(count), count, lineStyle)
	}
}

// ===== DISCLAIMER =====

var disclaimerText = []string{
	"rgallery browses a community catalog of uploaded schematics.",
	"Entries are published by their authors and are not reviewed. Check what you download before using it.",
	"This notice is shown once. Press Enter to continue, q to quit.",
}

func (r *Renderer) drawDisclaimer(w, h int) {
	width := min(previewMaxWidth, w-4)
	var lines []string
	for i, paragraph := range disclaimerText {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, textutil.Wrap(paragraph, max(width-4, 1))...)
	}

	rect := centeredRect(width, len(lines)+4, w, 0, h)
	if rect.w < 4 || rect.h < 3 {
		return
	}
	style := r.drawBox(rect, "Before you start")
	for i, line := range lines {
		y := rect.y + 2 + i
		if y >= rect.y+rect.h-1 {
			break
		}
		r.drawTextLine(rect.x+2, y, rect.w-4, line, style)
	}
}
