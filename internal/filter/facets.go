package filter

import (
	"slices"
	"strings"

	"github.com/kk-code-lab/rgallery/internal/catalog"
)

// Option is one ranked facet value.
type Option struct {
	Value string
	Count int
}

// FacetCounts holds per-value candidate counts for one facet.
type FacetCounts struct {
	Facet    Facet
	Universe []string
	Counts   map[string]int
}

// Count returns the candidate count for value.
func (fc FacetCounts) Count(value string) int {
	return fc.Counts[value]
}

// Options ranks the universe by descending count, ties alphabetical.
func (fc FacetCounts) Options() []Option {
	opts := make([]Option, 0, len(fc.Universe))
	for _, v := range fc.Universe {
		opts = append(opts, Option{Value: v, Count: fc.Counts[v]})
	}
	slices.SortStableFunc(opts, compareOptions)
	return opts
}

// Suggest narrows Options to values containing text, case-insensitively.
func (fc FacetCounts) Suggest(text string) []Option {
	opts := fc.Options()
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return opts
	}
	out := opts[:0]
	for _, o := range opts {
		if strings.Contains(strings.ToLower(o.Value), needle) {
			out = append(out, o)
		}
	}
	return out
}

func compareOptions(a, b Option) int {
	if a.Count != b.Count {
		if a.Count > b.Count {
			return -1
		}
		return 1
	}
	if c := strings.Compare(strings.ToLower(a.Value), strings.ToLower(b.Value)); c != 0 {
		return c
	}
	return strings.Compare(a.Value, b.Value)
}

// Facets bundles both facet counters.
type Facets struct {
	Versions FacetCounts
	Authors  FacetCounts
}

// Of returns the counts for facet.
func (f Facets) Of(facet Facet) FacetCounts {
	if facet == FacetAuthor {
		return f.Authors
	}
	return f.Versions
}

// ComputeFacets counts candidates per facet value. Each facet's preview set
// applies the search text and the other facet's constraints but ignores its
// own, so selecting a value never collapses its own option list.
func ComputeFacets(entries []catalog.Entry, fs FilterState) Facets {
	terms := SearchTerms(fs.SearchText)
	forVersions := predicate{terms: terms, checkAuthor: true, state: fs}
	forAuthors := predicate{terms: terms, checkVersion: true, state: fs}

	versionCounts := make(map[string]int)
	authorCounts := make(map[string]int)
	versionSeen := make(map[string]struct{})
	authorSeen := make(map[string]struct{})

	for _, e := range entries {
		if e.Version != "" {
			versionSeen[e.Version] = struct{}{}
			if forVersions.match(e) {
				versionCounts[e.Version]++
			}
		}
		if e.Author != "" {
			authorSeen[e.Author] = struct{}{}
			if forAuthors.match(e) {
				authorCounts[e.Author]++
			}
		}
	}

	return Facets{
		Versions: FacetCounts{Facet: FacetVersion, Universe: versionUniverse(versionSeen), Counts: versionCounts},
		Authors:  FacetCounts{Facet: FacetAuthor, Universe: authorUniverse(authorSeen), Counts: authorCounts},
	}
}

func versionUniverse(seen map[string]struct{}) []string {
	out := keys(seen)
	slices.SortFunc(out, func(a, b string) int {
		if c := CompareVersions(b, a); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}

func authorUniverse(seen map[string]struct{}) []string {
	out := keys(seen)
	slices.SortFunc(out, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
