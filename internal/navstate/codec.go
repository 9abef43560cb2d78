package navstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kk-code-lab/rgallery/internal/filter"
)

// Query keys, in canonical order.
const (
	KeySearch         = "q"
	KeySort           = "sort"
	KeyVersionInclude = "vInc"
	KeyVersionExclude = "vExc"
	KeyAuthorInclude  = "aInc"
	KeyAuthorExclude  = "aExc"
	KeyPreview        = "preview"
	KeyIndex          = "idx"
)

// State is everything a shared link reproduces.
type State struct {
	Filter      filter.FilterState
	Sort        filter.SortKey
	PreviewID   string
	AnchorIndex int
}

func (s State) Equal(other State) bool {
	return s.Sort == other.Sort &&
		s.PreviewID == other.PreviewID &&
		s.AnchorIndex == other.AnchorIndex &&
		s.Filter.Equal(other.Filter)
}

// Pair is one encoded key/value. Value is already escaped.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered query.
type Pairs []Pair

// String joins the pairs into a query string without the leading '?'.
func (p Pairs) String() string {
	var b strings.Builder
	for i, pair := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(pair.Key)
		b.WriteByte('=')
		b.WriteString(pair.Value)
	}
	return b.String()
}

// Get returns the encoded value of key.
func (p Pairs) Get(key string) (string, bool) {
	for _, pair := range p {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}

// Encode writes s in canonical form. Defaults are omitted except idx, which
// is always present.
func Encode(s State) Pairs {
	pairs := make(Pairs, 0, 8)
	if s.Filter.SearchText != "" {
		pairs = append(pairs, Pair{KeySearch, url.QueryEscape(s.Filter.SearchText)})
	}
	if s.Sort != filter.DefaultSort {
		pairs = append(pairs, Pair{KeySort, s.Sort.String()})
	}
	pairs = appendSet(pairs, KeyVersionInclude, s.Filter.VersionIncludes)
	pairs = appendSet(pairs, KeyVersionExclude, s.Filter.VersionExcludes)
	pairs = appendSet(pairs, KeyAuthorInclude, s.Filter.AuthorIncludes)
	pairs = appendSet(pairs, KeyAuthorExclude, s.Filter.AuthorExcludes)
	if s.PreviewID != "" {
		pairs = append(pairs, Pair{KeyPreview, url.QueryEscape(s.PreviewID)})
	}
	pairs = append(pairs, Pair{KeyIndex, strconv.Itoa(max(s.AnchorIndex, 0))})
	return pairs
}

func appendSet(pairs Pairs, key string, set filter.Set) Pairs {
	values := set.Sorted()
	if len(values) == 0 {
		return pairs
	}
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.QueryEscape(v)
	}
	return append(pairs, Pair{key, strings.Join(escaped, ",")})
}

// Decode parses a query string. It never fails: anything it cannot read falls
// back to the default for that key.
func Decode(query string) State {
	raw := firstValues(strings.TrimPrefix(query, "?"))

	var s State
	if v, ok := raw[KeySearch]; ok {
		if text, err := url.QueryUnescape(v); err == nil {
			s.Filter.SearchText = text
		}
	}
	if v, ok := raw[KeySort]; ok {
		s.Sort, _ = filter.ParseSortKey(v)
	}
	s.Filter.VersionIncludes = decodeSet(raw[KeyVersionInclude])
	s.Filter.VersionExcludes = decodeSet(raw[KeyVersionExclude])
	s.Filter.AuthorIncludes = decodeSet(raw[KeyAuthorInclude])
	s.Filter.AuthorExcludes = decodeSet(raw[KeyAuthorExclude])
	if v, ok := raw[KeyPreview]; ok {
		if id, err := url.QueryUnescape(v); err == nil {
			s.PreviewID = id
		}
	}
	if v, ok := raw[KeyIndex]; ok {
		if idx, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && idx > 0 {
			s.AnchorIndex = idx
		}
	}
	return s
}

// firstValues splits query on '&' and keeps the first raw value of each key.
func firstValues(query string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = value
	}
	return out
}

func decodeSet(raw string) filter.Set {
	if raw == "" {
		return nil
	}
	var values []string
	for _, item := range strings.Split(raw, ",") {
		v, err := url.QueryUnescape(item)
		if err != nil {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return filter.NewSet(values...)
}
