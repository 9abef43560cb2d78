package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.20", "1.20", 0},
		{"1.20", "1.20.0", 0},
		{"1.9", "1.20", -1},
		{"1.21", "1.20.5", 1},
		{"beta", "0", 0},
		{"1.x", "1.0", 0},
		{"2", "1.99", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareVersions(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestSetCopyOnWrite(t *testing.T) {
	base := NewSet("b", "a", "")
	assert.Equal(t, []string{"a", "b"}, base.Sorted())

	added := base.With("c")
	assert.False(t, base.Has("c"))
	assert.True(t, added.Has("c"))

	removed := added.Without("a")
	assert.True(t, added.Has("a"))
	assert.Equal(t, []string{"b", "c"}, removed.Sorted())

	assert.Nil(t, NewSet("x").Without("x"))
	assert.True(t, Set(nil).Equal(NewSet()))
}

func TestToggleMovesValueBetweenSets(t *testing.T) {
	var fs FilterState

	fs = fs.ToggleExclude(FacetVersion, "1.20")
	assert.True(t, fs.VersionExcludes.Has("1.20"))

	fs = fs.ToggleInclude(FacetVersion, "1.20")
	assert.True(t, fs.VersionIncludes.Has("1.20"))
	assert.False(t, fs.VersionExcludes.Has("1.20"))

	fs = fs.ToggleInclude(FacetVersion, "1.20")
	assert.True(t, fs.IsZero())

	fs = fs.ToggleInclude(FacetAuthor, "alice")
	assert.Equal(t, []string{"alice"}, fs.Includes(FacetAuthor).Sorted())
	assert.Zero(t, fs.Includes(FacetVersion).Len())
}

func TestFilterStateEqualAndClone(t *testing.T) {
	a := FilterState{SearchText: "x", AuthorIncludes: NewSet("alice")}
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.AuthorIncludes["bob"] = struct{}{}
	assert.False(t, a.Equal(b))
	assert.False(t, a.AuthorIncludes.Has("bob"))
}

func TestSortKeyWireNames(t *testing.T) {
	for _, key := range []SortKey{SortNewest, SortOldest, SortAlphabetical} {
		parsed, ok := ParseSortKey(key.String())
		assert.True(t, ok)
		assert.Equal(t, key, parsed)
	}

	parsed, ok := ParseSortKey("random")
	assert.False(t, ok)
	assert.Equal(t, SortNewest, parsed)

	assert.Equal(t, SortOldest, SortNewest.Next())
	assert.Equal(t, SortAlphabetical, SortOldest.Next())
	assert.Equal(t, SortNewest, SortAlphabetical.Next())
}
