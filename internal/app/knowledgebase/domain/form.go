package domain

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Form is the editable, in-memory shape of a knowledge base. It differs from
// the wire resource in three ways: names are camelCase, oneof containers hold
// a {case, value} pair, and the indexer's input topics are split into exact
// names and regex patterns that are edited as separate lists.
type Form struct {
	DisplayName        string                 `json:"displayName"`
	Description        string                 `json:"description"`
	Tags               []Tag                  `json:"tags"`
	VectorDatabase     VectorDatabaseForm     `json:"vectorDatabase"`
	EmbeddingGenerator EmbeddingGeneratorForm `json:"embeddingGenerator"`
	Indexer            IndexerForm            `json:"indexer"`
	Retriever          RetrieverForm          `json:"retriever"`
}

type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type VectorDatabaseForm struct {
	Postgres PostgresForm `json:"postgres"`
}

type PostgresForm struct {
	DSN   string `json:"dsn"`
	Table string `json:"table"`
}

type EmbeddingGeneratorForm struct {
	Dimensions int32         `json:"dimensions"`
	Model      string        `json:"model"`
	Provider   ProviderField `json:"provider"`
}

// ProviderField is a oneof container as held in form state.
type ProviderField struct {
	Provider ProviderChoice `json:"provider"`
}

// ProviderChoice names the selected variant in Case. An empty Case means no
// provider is configured.
type ProviderChoice struct {
	Case  string           `json:"case"`
	Value ProviderSettings `json:"value"`
}

type ProviderSettings struct {
	APIKey  string `json:"apiKey"`
	BaseURL string `json:"baseUrl"`
	Model   string `json:"model"`
}

// Provider variants.
const (
	ProviderOpenAI = "openai"
	ProviderCohere = "cohere"
)

type IndexerForm struct {
	ChunkSize             int32    `json:"chunkSize"`
	ChunkOverlap          int32    `json:"chunkOverlap"`
	ExactTopics           []string `json:"exactTopics"`
	RegexPatterns         []string `json:"regexPatterns"`
	RedpandaUsername      string   `json:"redpandaUsername"`
	RedpandaPassword      string   `json:"redpandaPassword"`
	RedpandaSASLMechanism string   `json:"redpandaSaslMechanism"`
}

type RetrieverForm struct {
	Reranker RerankerForm `json:"reranker"`
}

type RerankerForm struct {
	Enabled  bool          `json:"enabled"`
	Provider ProviderField `json:"provider"`
}

// Clone returns a copy of f that shares no slices with it.
func (f Form) Clone() Form {
	f.Tags = slices.Clone(f.Tags)
	f.Indexer.ExactTopics = slices.Clone(f.Indexer.ExactTopics)
	f.Indexer.RegexPatterns = slices.Clone(f.Indexer.RegexPatterns)
	return f
}

// CheckImmutable returns ErrImmutableField when f changes a field that is
// fixed once it has been set. baseline is the form as fetched.
func (f Form) CheckImmutable(baseline Form) error {
	if table := baseline.VectorDatabase.Postgres.Table; table != "" && f.VectorDatabase.Postgres.Table != table {
		return fmt.Errorf("%w: %s", ErrImmutableField, PathVectorDatabaseTable)
	}
	return nil
}

// regexMeta excludes '.', which is legal in topic names.
const regexMeta = `*+?()[]{}|^$\`

// IsRegexPattern reports whether an input topic is a pattern rather than an exact name.
func IsRegexPattern(topic string) bool {
	return strings.ContainsAny(topic, regexMeta)
}

// SplitTopics separates exact topic names from regex patterns, preserving order.
func SplitTopics(topics []string) (exact, patterns []string) {
	for _, t := range topics {
		if IsRegexPattern(t) {
			patterns = append(patterns, t)
		} else {
			exact = append(exact, t)
		}
	}
	return exact, patterns
}

// FormFromKnowledgeBase builds the form state for kb. A nil kb yields an empty form.
func FormFromKnowledgeBase(kb *KnowledgeBase) Form {
	var f Form
	if kb == nil {
		return f
	}

	f.DisplayName = kb.DisplayName
	f.Description = kb.Description
	for _, k := range slices.Sorted(maps.Keys(kb.Tags)) {
		f.Tags = append(f.Tags, Tag{Key: k, Value: kb.Tags[k]})
	}

	if vd := kb.VectorDatabase; vd != nil && vd.Postgres != nil {
		f.VectorDatabase.Postgres = PostgresForm{DSN: vd.Postgres.DSN, Table: vd.Postgres.Table}
	}

	if eg := kb.EmbeddingGenerator; eg != nil {
		f.EmbeddingGenerator.Dimensions = eg.Dimensions
		f.EmbeddingGenerator.Model = eg.Model
		if p := eg.Provider; p != nil {
			switch {
			case p.OpenAI != nil:
				f.EmbeddingGenerator.Provider.Provider = ProviderChoice{
					Case:  ProviderOpenAI,
					Value: ProviderSettings{APIKey: p.OpenAI.APIKey, BaseURL: p.OpenAI.BaseURL},
				}
			case p.Cohere != nil:
				f.EmbeddingGenerator.Provider.Provider = ProviderChoice{
					Case:  ProviderCohere,
					Value: ProviderSettings{APIKey: p.Cohere.APIKey, BaseURL: p.Cohere.BaseURL},
				}
			}
		}
	}

	if ix := kb.Indexer; ix != nil {
		exact, patterns := SplitTopics(ix.InputTopics)
		f.Indexer = IndexerForm{
			ChunkSize:             ix.ChunkSize,
			ChunkOverlap:          ix.ChunkOverlap,
			ExactTopics:           exact,
			RegexPatterns:         patterns,
			RedpandaUsername:      ix.RedpandaUsername,
			RedpandaPassword:      ix.RedpandaPassword,
			RedpandaSASLMechanism: ix.RedpandaSASLMechanism,
		}
	}

	if r := kb.Retriever; r != nil && r.Reranker != nil {
		f.Retriever.Reranker.Enabled = r.Reranker.Enabled
		if p := r.Reranker.Provider; p != nil && p.Cohere != nil {
			f.Retriever.Reranker.Provider.Provider = ProviderChoice{
				Case:  ProviderCohere,
				Value: ProviderSettings{APIKey: p.Cohere.APIKey, Model: p.Cohere.Model},
			}
		}
	}

	return f
}

// KnowledgeBase converts the form back into the complete wire resource.
// Sections left entirely empty in the form are omitted.
func (f Form) KnowledgeBase(id string) *KnowledgeBase {
	kb := &KnowledgeBase{
		ID:          id,
		DisplayName: strings.TrimSpace(f.DisplayName),
		Description: f.Description,
	}

	if len(f.Tags) > 0 {
		kb.Tags = make(map[string]string, len(f.Tags))
		for _, t := range f.Tags {
			if t.Key == "" {
				continue
			}
			kb.Tags[t.Key] = t.Value
		}
	}

	if !isZero(f.VectorDatabase) {
		kb.VectorDatabase = &VectorDatabase{Postgres: &PostgresVectorDatabase{
			DSN:   f.VectorDatabase.Postgres.DSN,
			Table: f.VectorDatabase.Postgres.Table,
		}}
	}

	if !isZero(f.EmbeddingGenerator) {
		eg := f.EmbeddingGenerator
		kb.EmbeddingGenerator = &EmbeddingGenerator{Dimensions: eg.Dimensions, Model: eg.Model}
		v := eg.Provider.Provider.Value
		switch eg.Provider.Provider.Case {
		case ProviderOpenAI:
			kb.EmbeddingGenerator.Provider = &EmbeddingProvider{
				OpenAI: &OpenAIEmbeddingProvider{APIKey: v.APIKey, BaseURL: v.BaseURL},
			}
		case ProviderCohere:
			kb.EmbeddingGenerator.Provider = &EmbeddingProvider{
				Cohere: &CohereEmbeddingProvider{APIKey: v.APIKey, BaseURL: v.BaseURL},
			}
		}
	}

	if !isZero(f.Indexer) {
		ix := f.Indexer
		topics := make([]string, 0, len(ix.ExactTopics)+len(ix.RegexPatterns))
		topics = append(topics, ix.ExactTopics...)
		topics = append(topics, ix.RegexPatterns...)
		kb.Indexer = &Indexer{
			ChunkSize:             ix.ChunkSize,
			ChunkOverlap:          ix.ChunkOverlap,
			InputTopics:           topics,
			RedpandaUsername:      ix.RedpandaUsername,
			RedpandaPassword:      ix.RedpandaPassword,
			RedpandaSASLMechanism: ix.RedpandaSASLMechanism,
		}
	}

	if !isZero(f.Retriever) {
		rr := f.Retriever.Reranker
		kb.Retriever = &Retriever{Reranker: &Reranker{Enabled: rr.Enabled}}
		if c := rr.Provider.Provider; c.Case == ProviderCohere {
			kb.Retriever.Reranker.Provider = &RerankerProvider{
				Cohere: &CohereRerankerProvider{APIKey: c.Value.APIKey, Model: c.Value.Model},
			}
		}
	}

	return kb
}

func isZero[T any](v T) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}
