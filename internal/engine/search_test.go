package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pybites-search/internal/catalog"
)

func searchCorpus() []catalog.Item {
	return []catalog.Item{
		{ContentType: "article", Title: "Python Decorators Explained", Summary: "wrapping functions", Link: "L1"},
		{ContentType: "bite", Title: "Write a generator", Summary: "practice python iteration", Link: "L2"},
		{ContentType: "video", Title: "Regex in 10 minutes", Summary: "a quick python tour", Link: "L3"},
		{ContentType: "Article", Title: "C++ for Pythonistas", Summary: "templates", Link: "L4"},
		{ContentType: "newsletter", Title: "Weekly python news", Summary: "links", Link: "L5"},
	}
}

func links(items []catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Link)
	}
	return out
}

func TestCompileSearch(t *testing.T) {
	tests := []struct {
		name      string
		terms     []string
		matches   []string
		noMatches []string
	}{
		{
			name:      "case insensitive",
			terms:     []string{"python"},
			matches:   []string{"Python Decorators Explained", "PYTHON"},
			noMatches: []string{"Pyth on"},
		},
		{
			name:      "metacharacters are literal",
			terms:     []string{"c++"},
			matches:   []string{"C++ for Pythonistas"},
			noMatches: []string{"ccc"},
		},
		{
			name:      "dot is literal",
			terms:     []string{"a.b"},
			matches:   []string{"x a.b y"},
			noMatches: []string{"axb"},
		},
		{
			name:      "terms in order with gap",
			terms:     []string{"python", "explained"},
			matches:   []string{"Python Decorators Explained", "pythonexplained"},
			noMatches: []string{"Explained: Python"},
		},
		{
			name:    "blank terms ignored",
			terms:   []string{" ", "regex", ""},
			matches: []string{"Regex in 10 minutes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := CompileSearch(tt.terms)
			require.NoError(t, err)
			for _, s := range tt.matches {
				assert.True(t, re.MatchString(s), "expected %q to match", s)
			}
			for _, s := range tt.noMatches {
				assert.False(t, re.MatchString(s), "expected %q not to match", s)
			}
		})
	}
}

func TestCompileSearchNoTerms(t *testing.T) {
	for _, terms := range [][]string{nil, {}, {"", "  "}} {
		_, err := CompileSearch(terms)
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		assert.ErrorIs(t, err, ErrNoSearchTerm)
	}
}

func TestPredicateFilter(t *testing.T) {
	tests := []struct {
		name        string
		terms       []string
		contentType string
		titleOnly   bool
		want        []string
	}{
		{name: "title or summary", terms: []string{"python"}, want: []string{"L1", "L2", "L3", "L4", "L5"}},
		{name: "title only excludes summary matches", terms: []string{"python"}, titleOnly: true, want: []string{"L1", "L4", "L5"}},
		{name: "content type full name", terms: []string{"python"}, contentType: "article", want: []string{"L1", "L4"}},
		{name: "content type shorthand", terms: []string{"python"}, contentType: "a", want: []string{"L1", "L4"}},
		{name: "content type upper case", terms: []string{"python"}, contentType: "VIDEO", want: []string{"L3"}},
		{name: "type and title only", terms: []string{"python"}, contentType: "b", titleOnly: true, want: []string{}},
		{name: "no matches", terms: []string{"golang"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPredicate(tt.terms, tt.contentType, tt.titleOnly)
			require.NoError(t, err)

			got := p.Filter(searchCorpus())
			require.NotNil(t, got)
			assert.Equal(t, tt.want, links(got))
		})
	}
}

func TestPredicateShorthandEquivalence(t *testing.T) {
	for _, ct := range catalog.ContentTypes() {
		short, err := NewPredicate([]string{"python"}, ct.Shorthand, false)
		require.NoError(t, err)
		full, err := NewPredicate([]string{"python"}, ct.Name, false)
		require.NoError(t, err)

		assert.Equal(t, full.Filter(searchCorpus()), short.Filter(searchCorpus()), ct.Name)
		assert.Equal(t, ct.Name, short.ContentType())
	}
}

func TestPredicateInvalidContentType(t *testing.T) {
	p, err := NewPredicate([]string{"python"}, "xyz", false)
	require.Error(t, err)
	assert.Nil(t, p)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, catalog.ErrUnknownContentType)
	for _, pair := range []string{"a: article", "b: bite", "p: podcast", "v: video", "t: tip"} {
		assert.Contains(t, err.Error(), pair)
	}
}

func TestPredicateInvalidContentTypeCheckedFirst(t *testing.T) {
	_, err := NewPredicate(nil, "xyz", false)
	assert.ErrorIs(t, err, catalog.ErrUnknownContentType)
}

func TestPredicateShowType(t *testing.T) {
	p, err := NewPredicate([]string{"x"}, "", false)
	require.NoError(t, err)
	assert.True(t, p.ShowType())
	assert.Empty(t, p.ContentType())
	assert.False(t, p.TitleOnly())

	p, err = NewPredicate([]string{"x"}, "tip", true)
	require.NoError(t, err)
	assert.False(t, p.ShowType())
	assert.True(t, p.TitleOnly())
	assert.Equal(t, "(?i)x", p.Pattern().String())
}

func TestPredicateEndToEndScenario(t *testing.T) {
	items := []catalog.Item{
		{ContentType: "article", Title: "Intro to Regex", Summary: "basics", Link: "L1"},
		{ContentType: "bite", Title: "Regex Bite", Summary: "practice", Link: "L2"},
	}

	p, err := NewPredicate([]string{"regex"}, "", false)
	require.NoError(t, err)
	assert.Equal(t, items, p.Filter(items))
	assert.True(t, p.ShowType())
}

func TestEqualFold(t *testing.T) {
	assert.True(t, equalFold("article", "ARTICLE"))
	assert.True(t, equalFold("Tip", "tIP"))
	assert.False(t, equalFold("article", "articles"))
}
