package catalog

import "strconv"

// Dimensions is the bounding size of a catalog entry.
type Dimensions struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Entry is a single normalized catalog item. Entries are values; nothing in
// the program mutates one after Normalize returns it.
type Entry struct {
	ID            string
	File          string
	Author        string
	Version       string
	Size          string
	FileSizeBytes int64
	Dimensions    Dimensions
	DataVersion   int
	CreatedAt     int64 // Unix seconds, 0 when the source timestamp is unparseable
	RenderPath    string
	FilePath      string
}

// HasRender reports whether the entry carries a preview image reference.
func (e Entry) HasRender() bool {
	return e.RenderPath != ""
}

// entryID derives the identity used in shared links. It depends on load
// order, so a reordered upstream catalog can map an old id onto a different
// entry.
func entryID(file string, index int) string {
	return file + "-" + strconv.Itoa(index)
}
