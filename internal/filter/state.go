package filter

import "sort"

// Set is a set of exact facet values. The zero value is an empty set and is
// safe for reads.
type Set map[string]struct{}

// NewSet builds a set, dropping empty strings.
func NewSet(values ...string) Set {
	if len(values) == 0 {
		return nil
	}
	s := make(Set, len(values))
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	if len(s) == 0 {
		return nil
	}
	return s
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in byte order, which is the canonical order used
// for encoding.
func (s Set) Sorted() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// With returns a copy of s that also contains v.
func (s Set) With(v string) Set {
	if v == "" || s.Has(v) {
		return s.Clone()
	}
	out := make(Set, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	out[v] = struct{}{}
	return out
}

// Without returns a copy of s minus v.
func (s Set) Without(v string) Set {
	if !s.Has(v) {
		return s.Clone()
	}
	if len(s) == 1 {
		return nil
	}
	out := make(Set, len(s)-1)
	for k := range s {
		if k != v {
			out[k] = struct{}{}
		}
	}
	return out
}

func (s Set) Clone() Set {
	if len(s) == 0 {
		return nil
	}
	out := make(Set, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Facet names one of the two filterable attributes.
type Facet int

const (
	FacetVersion Facet = iota
	FacetAuthor
)

func (f Facet) String() string {
	switch f {
	case FacetVersion:
		return "version"
	case FacetAuthor:
		return "author"
	default:
		return "unknown"
	}
}

// FilterState is the user's current filter selection. Include and exclude
// sets of one facet may both be populated; exclusion is checked first.
type FilterState struct {
	SearchText      string
	VersionIncludes Set
	VersionExcludes Set
	AuthorIncludes  Set
	AuthorExcludes  Set
}

// IsZero reports whether no constraint is active.
func (f FilterState) IsZero() bool {
	return f.SearchText == "" &&
		f.VersionIncludes.Len() == 0 && f.VersionExcludes.Len() == 0 &&
		f.AuthorIncludes.Len() == 0 && f.AuthorExcludes.Len() == 0
}

func (f FilterState) Equal(other FilterState) bool {
	return f.SearchText == other.SearchText &&
		f.VersionIncludes.Equal(other.VersionIncludes) &&
		f.VersionExcludes.Equal(other.VersionExcludes) &&
		f.AuthorIncludes.Equal(other.AuthorIncludes) &&
		f.AuthorExcludes.Equal(other.AuthorExcludes)
}

func (f FilterState) Clone() FilterState {
	return FilterState{
		SearchText:      f.SearchText,
		VersionIncludes: f.VersionIncludes.Clone(),
		VersionExcludes: f.VersionExcludes.Clone(),
		AuthorIncludes:  f.AuthorIncludes.Clone(),
		AuthorExcludes:  f.AuthorExcludes.Clone(),
	}
}

// Includes returns the include set of facet.
func (f FilterState) Includes(facet Facet) Set {
	if facet == FacetAuthor {
		return f.AuthorIncludes
	}
	return f.VersionIncludes
}

// Excludes returns the exclude set of facet.
func (f FilterState) Excludes(facet Facet) Set {
	if facet == FacetAuthor {
		return f.AuthorExcludes
	}
	return f.VersionExcludes
}

// ToggleInclude flips value in the facet's include set. A value is never held
// in both sets of a facet, so including it drops a prior exclusion.
func (f FilterState) ToggleInclude(facet Facet, value string) FilterState {
	inc, exc := f.Includes(facet), f.Excludes(facet)
	if inc.Has(value) {
		inc = inc.Without(value)
	} else {
		inc = inc.With(value)
		exc = exc.Without(value)
	}
	return f.withFacet(facet, inc, exc)
}

// ToggleExclude flips value in the facet's exclude set.
func (f FilterState) ToggleExclude(facet Facet, value string) FilterState {
	inc, exc := f.Includes(facet), f.Excludes(facet)
	if exc.Has(value) {
		exc = exc.Without(value)
	} else {
		exc = exc.With(value)
		inc = inc.Without(value)
	}
	return f.withFacet(facet, inc, exc)
}

func (f FilterState) withFacet(facet Facet, inc, exc Set) FilterState {
	out := f.Clone()
	if facet == FacetAuthor {
		out.AuthorIncludes, out.AuthorExcludes = inc, exc
	} else {
		out.VersionIncludes, out.VersionExcludes = inc, exc
	}
	return out
}

// SortKey selects the view ordering.
type SortKey int

const (
	SortNewest SortKey = iota
	SortOldest
	SortAlphabetical
)

// DefaultSort is omitted from encoded navigation state.
const DefaultSort = SortNewest

// String returns the wire name of the key.
func (k SortKey) String() string {
	switch k {
	case SortOldest:
		return "oldest"
	case SortAlphabetical:
		return "az"
	default:
		return "newest"
	}
}

// Label is the human-facing name shown in the header.
func (k SortKey) Label() string {
	switch k {
	case SortOldest:
		return "oldest first"
	case SortAlphabetical:
		return "A→Z"
	default:
		return "newest first"
	}
}

// Next cycles newest → oldest → az → newest.
func (k SortKey) Next() SortKey {
	switch k {
	case SortNewest:
		return SortOldest
	case SortOldest:
		return SortAlphabetical
	default:
		return SortNewest
	}
}

// ParseSortKey maps a wire name to a key; unknown names fall back to the
// default.
func ParseSortKey(s string) (SortKey, bool) {
	switch s {
	case "newest":
		return SortNewest, true
	case "oldest":
		return SortOldest, true
	case "az":
		return SortAlphabetical, true
	default:
		return DefaultSort, false
	}
}
