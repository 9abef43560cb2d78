package navstate

// History is a linear stack of query strings with a cursor, like a browser's
// session history.
type History struct {
	Entries []string
	Index   int
}

// NewHistory starts a history at initial.
func NewHistory(initial string) *History {
	return &History{Entries: []string{initial}}
}

// Push adds entry after the cursor and drops everything forward of it.
func (h *History) Push(entry string) {
	if len(h.Entries) == 0 {
		h.Entries = []string{entry}
		h.Index = 0
		return
	}
	if h.Index < len(h.Entries)-1 {
		h.Entries = h.Entries[:h.Index+1]
	}
	h.Entries = append(h.Entries, entry)
	h.Index = len(h.Entries) - 1
}

// Replace overwrites the entry under the cursor.
func (h *History) Replace(entry string) {
	if len(h.Entries) == 0 {
		h.Push(entry)
		return
	}
	h.Entries[h.Index] = entry
}

// Back moves the cursor one entry back.
func (h *History) Back() (string, bool) {
	if !h.CanBack() {
		return "", false
	}
	h.Index--
	return h.Entries[h.Index], true
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() (string, bool) {
	if !h.CanForward() {
		return "", false
	}
	h.Index++
	return h.Entries[h.Index], true
}

func (h *History) CanBack() bool {
	return h.Index > 0
}

func (h *History) CanForward() bool {
	return h.Index < len(h.Entries)-1
}

// Current returns the entry under the cursor.
func (h *History) Current() string {
	if len(h.Entries) == 0 {
		return ""
	}
	return h.Entries[h.Index]
}

func (h *History) Len() int {
	return len(h.Entries)
}
