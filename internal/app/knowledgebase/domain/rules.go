package domain

import (
	"reflect"

	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

// Mask paths with special handling for knowledge bases.
const (
	PathDisplayName             fieldmask.Path = "display_name"
	PathDescription             fieldmask.Path = "description"
	PathTags                    fieldmask.Path = "tags"
	PathVectorDatabase          fieldmask.Path = "vector_database"
	PathVectorDatabaseDSN       fieldmask.Path = "vector_database.postgres.dsn"
	PathVectorDatabaseTable     fieldmask.Path = "vector_database.postgres.table"
	PathEmbeddingGenerator      fieldmask.Path = "embedding_generator"
	PathEmbeddingProvider       fieldmask.Path = "embedding_generator.provider"
	PathIndexerInputTopics      fieldmask.Path = "indexer.input_topics"
	PathIndexerExactTopics      fieldmask.Path = "indexer.exact_topics"
	PathIndexerRegexPatterns    fieldmask.Path = "indexer.regex_patterns"
	PathRetriever               fieldmask.Path = "retriever"
	PathRetrieverRerankProvider fieldmask.Path = "retriever.reranker.provider"
)

// KnowledgeBaseRules is the remap table for knowledge-base update masks.
//
// The vector database rule narrows any edit below vector_database to the DSN:
// the Postgres table is fixed when the knowledge base is created (see
// Form.CheckImmutable), and the outgoing payload always carries the full
// sub-object.
func KnowledgeBaseRules() fieldmask.Rules {
	return fieldmask.Rules{
		fieldmask.PrefixRule("embedding-provider", fieldmask.KindUnionCollapse, PathEmbeddingProvider, PathEmbeddingGenerator),
		fieldmask.PrefixRule("reranker-provider", fieldmask.KindUnionCollapse, PathRetrieverRerankProvider, PathRetriever),
		fieldmask.PrefixRule("exact-topics", fieldmask.KindSyntheticRedirect, PathIndexerExactTopics, PathIndexerInputTopics),
		fieldmask.PrefixRule("regex-patterns", fieldmask.KindSyntheticRedirect, PathIndexerRegexPatterns, PathIndexerInputTopics),
		fieldmask.PrefixRule("vector-database", fieldmask.KindCompositeWiden, PathVectorDatabase, PathVectorDatabaseDSN),
	}
}

var addressable = fieldmask.Addressable(reflect.TypeOf(KnowledgeBase{}))

// AddressablePaths returns the paths an update mask may name.
func AddressablePaths() fieldmask.PathSet {
	return addressable
}
