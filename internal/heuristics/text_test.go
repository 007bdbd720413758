package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips bracketed annotations", "hello [Music] world", "hello world"},
		{"collapses whitespace", "  a   b\t c ", "a b c"},
		{"multiple brackets", "[Applause] welcome [Music] back", "welcome back"},
		{"empty after cleaning", "[Music]", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestKeywords(t *testing.T) {
	r := DefaultRules()

	kws := r.Keywords("Now let's look at sorting the array")
	assert.Equal(t, []string{"sorting", "array"}, kws)

	assert.Empty(t, r.Keywords("it is in the"))
}

func TestJaccardDistance(t *testing.T) {
	r := DefaultRules()

	a := r.KeywordSet("arrays store elements contiguously")
	b := r.KeywordSet("arrays store elements contiguously")
	assert.Equal(t, 0.0, JaccardDistance(a, b))

	c := r.KeywordSet("voltage across the resistor")
	assert.Equal(t, 1.0, JaccardDistance(a, c))

	assert.Equal(t, 0.0, JaccardDistance(nil, nil))

	d := r.KeywordSet("arrays store numbers")
	dist := JaccardDistance(a, d)
	assert.Greater(t, dist, 0.0)
	assert.Less(t, dist, 1.0)
}

func TestHasDiscourseMarker(t *testing.T) {
	r := DefaultRules()

	assert.True(t, r.HasDiscourseMarker("Now let's move to linked lists"))
	assert.True(t, r.HasDiscourseMarker("Moving on, recursion works like this"))
	assert.False(t, r.HasDiscourseMarker("arrays store elements contiguously"))
}

func TestTopicTitle(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		name  string
		text  string
		index int
		want  string
	}{
		{"frequency wins", "sorting means sorting elements", 0, "Sorting & Means"},
		{"first appearance breaks ties", "arrays hold elements", 0, "Arrays & Hold"},
		{"single keyword", "now let's look at sorting", 1, "Sorting"},
		{"fallback numbered", "it is the a an", 2, "Topic 3"},
		{"empty text", "", 0, "Topic 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.TopicTitle(tt.text, tt.index))
		})
	}
}

func TestSimplify(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, "So the current doubles", r.Simplify("therefore the current doubles"))
	assert.Equal(t, "Use about ten samples", r.Simplify("utilize approximately ten samples"))
	assert.Equal(t, "Plain sentence stays put", r.Simplify("plain sentence stays put"))

	// Hindi captions reach here through the language fallback chain; the
	// leading multi-byte rune must survive capitalization intact.
	assert.Equal(t, "आज हम arrays पढ़ेंगे", r.Simplify("आज हम arrays पढ़ेंगे"))
	assert.Equal(t, "École stays readable", r.Simplify("école stays readable"))
}

func TestMergeShortBullets(t *testing.T) {
	r := DefaultRules()

	t.Run("short bullet merges forward", func(t *testing.T) {
		got := r.MergeShortBullets([]string{
			"First up",
			"arrays store their elements in contiguous memory",
			"Indexing into an array is constant time",
		})
		assert.Equal(t, []string{
			"First up arrays store their elements in contiguous memory",
			"Indexing into an array is constant time",
		}, got)
	})

	t.Run("short trailing bullet folds back", func(t *testing.T) {
		got := r.MergeShortBullets([]string{
			"Sorting rearranges elements into a defined order",
			"That's it",
		})
		assert.Equal(t, []string{
			"Sorting rearranges elements into a defined order That's it",
		}, got)
	})

	t.Run("single short bullet survives", func(t *testing.T) {
		got := r.MergeShortBullets([]string{"Arrays"})
		assert.Equal(t, []string{"Arrays"}, got)
	})
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First point. Second point? Third point!\nFourth point")
	assert.Equal(t, []string{"First point", "Second point", "Third point", "Fourth point"}, got)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, NormalizeKey("Binary  Search"), NormalizeKey("binary search"))
}
