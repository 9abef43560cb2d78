package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kk-code-lab/rgallery/internal/catalog"
)

// SearchTerms splits free text on whitespace and lower-cases each token.
func SearchTerms(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		terms = append(terms, strings.ToLower(f))
	}
	return terms
}

func haystack(e catalog.Entry) string {
	return strings.ToLower(e.File + " " + e.Author + " " + e.Version + " " + e.Size)
}

func matchesTerms(e catalog.Entry, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	hay := haystack(e)
	for _, term := range terms {
		if !strings.Contains(hay, term) {
			return false
		}
	}
	return true
}

func passesFacet(value string, include, exclude Set) bool {
	if exclude.Len() > 0 && exclude.Has(value) {
		return false
	}
	if include.Len() > 0 && !include.Has(value) {
		return false
	}
	return true
}

type predicate struct {
	terms        []string
	checkVersion bool
	checkAuthor  bool
	state        FilterState
}

func (p predicate) match(e catalog.Entry) bool {
	if p.checkVersion && !passesFacet(e.Version, p.state.VersionIncludes, p.state.VersionExcludes) {
		return false
	}
	if p.checkAuthor && !passesFacet(e.Author, p.state.AuthorIncludes, p.state.AuthorExcludes) {
		return false
	}
	return matchesTerms(e, p.terms)
}

// ComputeView filters entries and sorts the survivors. It does not modify
// entries and returns a fresh slice; the sort is stable so identical inputs
// always produce identical output.
func ComputeView(entries []catalog.Entry, fs FilterState, key SortKey) []catalog.Entry {
	p := predicate{terms: SearchTerms(fs.SearchText), checkVersion: true, checkAuthor: true, state: fs}

	view := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if p.match(e) {
			view = append(view, e)
		}
	}

	switch key {
	case SortOldest:
		slices.SortStableFunc(view, func(a, b catalog.Entry) int {
			return cmp.Compare(a.CreatedAt, b.CreatedAt)
		})
	case SortAlphabetical:
		slices.SortStableFunc(view, func(a, b catalog.Entry) int {
			return strings.Compare(strings.ToLower(a.File), strings.ToLower(b.File))
		})
	default:
		slices.SortStableFunc(view, func(a, b catalog.Entry) int {
			return cmp.Compare(b.CreatedAt, a.CreatedAt)
		})
	}
	return view
}
