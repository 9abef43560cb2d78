package app

import (
	statepkg "github.com/kk-code-lab/rgallery/internal/state"
	renderui "github.com/kk-code-lab/rgallery/internal/ui/render"
)

// screenViewport answers viewport questions from what the renderer actually
// drew. A card is only locatable once a frame has materialized it, which is
// what makes restoration wait for layout after a window move.
type screenViewport struct {
	state    *statepkg.AppState
	renderer *renderui.Renderer
}

func (v *screenViewport) MeasureContainerTop() int { return v.state.ContainerTop() }
func (v *screenViewport) HeaderHeight() int        { return v.state.Layout.HeaderHeight }
func (v *screenViewport) CurrentScrollOffset() int { return v.state.ScrollOffset }
func (v *screenViewport) ScrollTo(offset int)      { v.state.ScrollTo(offset) }

func (v *screenViewport) LocateElement(index int) (int, bool) {
	frame := v.renderer.LastFrame()
	if !frame.Contains(index) {
		return 0, false
	}
	// A frame drawn for another layout places the card elsewhere.
	if frame.Columns != v.state.Window.Columns || frame.RowHeight != v.state.Window.RowHeight {
		return 0, false
	}
	return v.state.CardTop(index), true
}
