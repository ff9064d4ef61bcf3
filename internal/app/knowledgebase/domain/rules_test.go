package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

func pipeline() fieldmask.Pipeline {
	return fieldmask.Pipeline{Rules: KnowledgeBaseRules()}
}

func TestRules_RerankerProviderCollapsesToRetriever(t *testing.T) {
	assert.Equal(t, PathRetriever, KnowledgeBaseRules().Remap("retriever.reranker.provider.provider.value"))
	assert.Equal(t, fieldmask.Path("retriever.reranker.enabled"), KnowledgeBaseRules().Remap("retriever.reranker.enabled"))
}

func TestRules_EmbeddingProviderCollapses(t *testing.T) {
	assert.Equal(t, PathEmbeddingGenerator, KnowledgeBaseRules().Remap("embedding_generator.provider.provider.value.api_key"))
	assert.Equal(t, fieldmask.Path("embedding_generator.model"), KnowledgeBaseRules().Remap("embedding_generator.model"))
}

func TestRules_TopicListsRedirectToInputTopics(t *testing.T) {
	rules := KnowledgeBaseRules()
	assert.Equal(t, PathIndexerInputTopics, rules.Remap("indexer.exact_topics"))
	assert.Equal(t, PathIndexerInputTopics, rules.Remap("indexer.regex_patterns"))

	tree := fieldmask.FromMap(map[string]any{
		"indexer": map[string]any{"exactTopics": true, "regexPatterns": true},
	})
	assert.Equal(t, []fieldmask.Path{PathIndexerInputTopics}, pipeline().Compute(tree))
}

func TestRules_VectorDatabaseWidensToDSN(t *testing.T) {
	tree := fieldmask.FromMap(map[string]any{"vectorDatabase": true})

	assert.Equal(t, []fieldmask.Path{PathVectorDatabaseDSN}, pipeline().Compute(tree))
}

// TestPipeline_EndToEnd walks the display name / topics / username scenario
// from dirty tree to final mask.
func TestPipeline_EndToEnd(t *testing.T) {
	tree := fieldmask.FromMap(map[string]any{
		"displayName": true,
		"indexer": map[string]any{
			"exactTopics":      true,
			"redpandaUsername": true,
		},
	})

	collected := fieldmask.Collect(tree)
	assert.ElementsMatch(t, []fieldmask.Path{"displayName", "indexer.exactTopics", "indexer.redpandaUsername"}, collected)

	mask := pipeline().Compute(tree)
	assert.ElementsMatch(t, []fieldmask.Path{"display_name", "indexer.input_topics", "indexer.redpanda_username"}, mask)
}

// TestPipeline_MaskIsAlwaysAddressable checks that every form field, once
// remapped, names a real wire field.
func TestPipeline_MaskIsAlwaysAddressable(t *testing.T) {
	empty, err := fieldmask.Document(Form{})
	require.NoError(t, err)

	f := Form{
		DisplayName: "x",
		Description: "y",
		Tags:        []Tag{{Key: "k", Value: "v"}},
		VectorDatabase: VectorDatabaseForm{Postgres: PostgresForm{
			DSN: "postgres://db", Table: "chunks",
		}},
		EmbeddingGenerator: EmbeddingGeneratorForm{
			Dimensions: 768,
			Model:      "text-embedding-3-small",
			Provider: ProviderField{Provider: ProviderChoice{
				Case: ProviderOpenAI, Value: ProviderSettings{APIKey: "sk", BaseURL: "u", Model: "m"},
			}},
		},
		Indexer: IndexerForm{
			ChunkSize: 512, ChunkOverlap: 64,
			ExactTopics: []string{"a"}, RegexPatterns: []string{"b.*"},
			RedpandaUsername: "u", RedpandaPassword: "p", RedpandaSASLMechanism: "SCRAM-SHA-256",
		},
		Retriever: RetrieverForm{Reranker: RerankerForm{
			Enabled: true,
			Provider: ProviderField{Provider: ProviderChoice{
				Case: ProviderCohere, Value: ProviderSettings{APIKey: "c", Model: "rerank"},
			}},
		}},
	}
	full, err := fieldmask.Document(f)
	require.NoError(t, err)

	mask := pipeline().Compute(fieldmask.Diff(empty, full))
	require.NotEmpty(t, mask)
	assert.NoError(t, AddressablePaths().Validate(mask))
}

func TestAddressablePaths(t *testing.T) {
	set := AddressablePaths()

	for _, p := range []fieldmask.Path{
		"display_name", "tags", "vector_database", "vector_database.postgres.dsn",
		"embedding_generator", "embedding_generator.provider", "indexer.input_topics",
		"indexer.redpanda_username", "retriever", "retriever.reranker.enabled",
	} {
		assert.True(t, set.Has(p), p)
	}
	for _, p := range []fieldmask.Path{
		"id", "indexer.exact_topics", "indexer.regex_patterns",
		"embedding_generator.provider.openai", "retriever.reranker.provider.cohere.api_key",
	} {
		assert.False(t, set.Has(p), p)
	}
}
