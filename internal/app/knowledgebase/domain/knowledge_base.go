package domain

import (
	"strings"
	"unicode/utf8"
)

// KnowledgeBase is the wire representation of a knowledge base. JSON names
// follow the wire naming convention and are the field names an update mask
// may reference.
type KnowledgeBase struct {
	ID          string            `json:"id" mask:"-"`
	DisplayName string            `json:"display_name"`
	Description string            `json:"description"`
	Tags        map[string]string `json:"tags,omitempty"`
	Config
}

// Config holds the pipeline configuration of a knowledge base. It is
// persisted as a single document.
type Config struct {
	VectorDatabase     *VectorDatabase     `json:"vector_database,omitempty"`
	EmbeddingGenerator *EmbeddingGenerator `json:"embedding_generator,omitempty"`
	Indexer            *Indexer            `json:"indexer,omitempty"`
	Retriever          *Retriever          `json:"retriever,omitempty"`
}

type VectorDatabase struct {
	Postgres *PostgresVectorDatabase `json:"postgres,omitempty"`
}

type PostgresVectorDatabase struct {
	DSN   string `json:"dsn"`
	Table string `json:"table"`
}

type EmbeddingGenerator struct {
	Dimensions int32  `json:"dimensions"`
	Model      string `json:"model"`
	// Provider is a oneof; exactly one variant is set.
	Provider *EmbeddingProvider `json:"provider,omitempty" mask:"atomic"`
}

type EmbeddingProvider struct {
	OpenAI *OpenAIEmbeddingProvider `json:"openai,omitempty"`
	Cohere *CohereEmbeddingProvider `json:"cohere,omitempty"`
}

type OpenAIEmbeddingProvider struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
}

type CohereEmbeddingProvider struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
}

type Indexer struct {
	ChunkSize    int32 `json:"chunk_size"`
	ChunkOverlap int32 `json:"chunk_overlap"`
	// InputTopics mixes exact topic names and regular expressions.
	InputTopics           []string `json:"input_topics"`
	RedpandaUsername      string   `json:"redpanda_username"`
	RedpandaPassword      string   `json:"redpanda_password"`
	RedpandaSASLMechanism string   `json:"redpanda_sasl_mechanism"`
}

type Retriever struct {
	Reranker *Reranker `json:"reranker,omitempty"`
}

type Reranker struct {
	Enabled  bool              `json:"enabled"`
	Provider *RerankerProvider `json:"provider,omitempty" mask:"atomic"`
}

// RerankerProvider is a oneof with a single variant today.
type RerankerProvider struct {
	Cohere *CohereRerankerProvider `json:"cohere,omitempty"`
}

type CohereRerankerProvider struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

const (
	maxDisplayNameLength = 255
	maxDescriptionLength = 4096
)

// Validate checks the invariants every stored knowledge base must satisfy.
// Lengths are counted in characters, as the STRING columns do.
func (kb *KnowledgeBase) Validate() error {
	name := strings.TrimSpace(kb.DisplayName)
	if name == "" {
		return ErrEmptyDisplayName
	}
	if utf8.RuneCountInString(name) > maxDisplayNameLength {
		return ErrDisplayNameTooLong
	}
	if utf8.RuneCountInString(kb.Description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if ix := kb.Indexer; ix != nil {
		if ix.ChunkSize < 0 || ix.ChunkOverlap < 0 {
			return ErrInvalidChunking
		}
		if ix.ChunkSize > 0 && ix.ChunkOverlap >= ix.ChunkSize {
			return ErrInvalidChunking
		}
	}

	if eg := kb.EmbeddingGenerator; eg != nil && eg.Provider != nil {
		if countSet(eg.Provider.OpenAI != nil, eg.Provider.Cohere != nil) != 1 {
			return ErrInvalidProvider
		}
	}

	if r := kb.Retriever; r != nil && r.Reranker != nil && r.Reranker.Provider != nil {
		if r.Reranker.Provider.Cohere == nil {
			return ErrInvalidProvider
		}
	}

	return nil
}

// normalize trims the display name to the form that is stored.
func (kb *KnowledgeBase) normalize() {
	kb.DisplayName = strings.TrimSpace(kb.DisplayName)
}

func postgresTable(kb *KnowledgeBase) string {
	if kb.VectorDatabase == nil || kb.VectorDatabase.Postgres == nil {
		return ""
	}
	return kb.VectorDatabase.Postgres.Table
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
