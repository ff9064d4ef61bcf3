package fieldmask

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"redpandaUsername": "redpanda_username",
		"chunkSize":        "chunk_size",
		"displayName":      "display_name",
		"dsn":              "dsn",
		"topic2Name":       "topic2_name",
		"already_snake":    "already_snake",
	}
	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), in)
	}
}

func TestNormalize_KeepsSegmentOrder(t *testing.T) {
	assert.Equal(t, Path("embedding_generator.provider.api_key"), Normalize("embeddingGenerator.provider.apiKey"))
	assert.Equal(t, Path(""), Normalize(""))
}

func TestPath_HasPrefixIsSegmentAware(t *testing.T) {
	assert.True(t, Path("indexer.exact_topics").HasPrefix("indexer"))
	assert.True(t, Path("indexer").HasPrefix("indexer"))
	assert.False(t, Path("indexer").HasPrefix("index"))
	assert.False(t, Path("indexer_v2.x").HasPrefix("indexer"))
	assert.False(t, Path("indexer").HasPrefix(""))
}

func TestRules_FirstMatchWins(t *testing.T) {
	rules := Rules{
		PrefixRule("specific", KindSyntheticRedirect, "a.b", "a.z"),
		PrefixRule("broad", KindUnionCollapse, "a", "a"),
	}

	assert.Equal(t, Path("a.z"), rules.Remap("a.b.c"))
	assert.Equal(t, Path("a"), rules.Remap("a.c"))
	assert.Equal(t, Path("other"), rules.Remap("other"))
}

func TestRules_ReplacesWholePath(t *testing.T) {
	rules := Rules{PrefixRule("collapse", KindUnionCollapse, "retriever.reranker.provider", "retriever")}

	assert.Equal(t, Path("retriever"), rules.Remap("retriever.reranker.provider.provider.value"))
	assert.Equal(t, Path("retriever.reranker.enabled"), rules.Remap("retriever.reranker.enabled"))
}

func TestRules_CustomMatcherAndReplacer(t *testing.T) {
	rules := Rules{{
		Name:    "strip-last",
		Match:   func(p Path) bool { return strings.HasSuffix(string(p), ".value") },
		Replace: func(p Path) Path { return Path(strings.TrimSuffix(string(p), ".value")) },
	}}

	assert.Equal(t, Path("a.b"), rules.Remap("a.b.value"))
}

func TestDedupe_Idempotent(t *testing.T) {
	inputs := [][]Path{
		nil,
		{"a"},
		{"a", "b", "a", "c", "b"},
		{"x", "x", "x"},
	}
	for _, in := range inputs {
		once := Dedupe(in)
		assert.ElementsMatch(t, once, Dedupe(once))
	}
	assert.ElementsMatch(t, []Path{"a", "b", "c"}, Dedupe([]Path{"a", "b", "a", "c", "b"}))
}

func TestPipeline_RedirectThenDedupe(t *testing.T) {
	pl := Pipeline{Rules: Rules{
		PrefixRule("exact", KindSyntheticRedirect, "indexer.exact_topics", "indexer.input_topics"),
		PrefixRule("regex", KindSyntheticRedirect, "indexer.regex_patterns", "indexer.input_topics"),
	}}
	tree := Branch{"indexer": Branch{"exactTopics": Leaf(true), "regexPatterns": Leaf(true)}}

	assert.Equal(t, []Path{"indexer.input_topics"}, pl.Compute(tree))
}

func TestPipeline_EmptyTreeHasNoFieldMask(t *testing.T) {
	pl := Pipeline{}
	paths := pl.Compute(FromMap(map[string]any{"a": false}))

	assert.Empty(t, paths)
	assert.Nil(t, ToFieldMask(paths))
}

func TestFieldMaskRoundTrip(t *testing.T) {
	m := ToFieldMask([]Path{"display_name", "indexer.input_topics"})
	require.NotNil(t, m)
	assert.Equal(t, []string{"display_name", "indexer.input_topics"}, m.GetPaths())
	assert.Equal(t, []Path{"display_name", "indexer.input_topics"}, FromFieldMask(m))
	assert.Nil(t, FromFieldMask(nil))
}

func TestLoadRules(t *testing.T) {
	src := `
rules:
  - name: reranker
    kind: union-collapse
    source: retriever.reranker.provider
    target: retriever
  - name: vector-db
    kind: composite-widen
    source: vector_database
    target: vector_database.postgres.dsn
`
	rules, err := LoadRules(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, KindUnionCollapse, rules[0].Kind)
	assert.Equal(t, Path("retriever"), rules.Remap("retriever.reranker.provider.cohere"))
	assert.Equal(t, Path("vector_database.postgres.dsn"), rules.Remap("vector_database"))
}

func TestLoadRules_Invalid(t *testing.T) {
	_, err := LoadRules(strings.NewReader("rules:\n  - name: x\n    kind: merge\n    source: a\n    target: b\n"))
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = LoadRules(strings.NewReader("rules:\n  - name: x\n    kind: union-collapse\n    source: a\n"))
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = LoadRules(strings.NewReader("rulez: []\n"))
	assert.Error(t, err)

	rules, err := LoadRules(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rules)
}
