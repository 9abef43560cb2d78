package window

// Viewport is what the tracker and restorer need from whatever is displaying
// the grid. All values are in document lines.
type Viewport interface {
	// MeasureContainerTop is the document offset of the first grid row.
	MeasureContainerTop() int
	// HeaderHeight is the height of the overlay covering the top of the
	// viewport.
	HeaderHeight() int
	CurrentScrollOffset() int
	ScrollTo(offset int)
	// LocateElement reports the document top of the card for index if it is
	// currently laid out.
	LocateElement(index int) (top int, ok bool)
}
