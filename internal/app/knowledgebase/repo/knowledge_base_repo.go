package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"
	json "github.com/goccy/go-json"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/models/m_knowledge_base"
)

// KnowledgeBaseRepo is the Spanner implementation of the write-side repository.
// It returns *spanner.Mutation objects but never applies them.
type KnowledgeBaseRepo struct{}

func NewKnowledgeBaseRepo() *KnowledgeBaseRepo {
	return &KnowledgeBaseRepo{}
}

// buildInsertValues is unexported so tests in this package can inspect the
// map without relying on spanner.Mutation internals.
func buildInsertValues(e *domain.Entity) (map[string]interface{}, error) {
	kb := e.KnowledgeBase()

	tags, err := encodeTags(kb.Tags)
	if err != nil {
		return nil, err
	}
	cfg, err := encodeConfig(kb.Config)
	if err != nil {
		return nil, err
	}

	return m_knowledge_base.BuildInsertMap(kb.ID, kb.DisplayName, kb.Description, tags, cfg,
		e.CreatedAt().UTC(), e.UpdatedAt().UTC()), nil
}

// buildUpdateValues maps the entity's dirty field groups to columns. It
// returns nil when nothing changed.
func buildUpdateValues(e *domain.Entity) (map[string]interface{}, error) {
	if e == nil || !e.Changes().HasChanges() {
		return nil, nil
	}

	kb := e.KnowledgeBase()
	updates := map[string]interface{}{}

	if e.Changes().Dirty(domain.FieldDisplayName) {
		updates[m_knowledge_base.ColDisplayName] = kb.DisplayName
	}
	if e.Changes().Dirty(domain.FieldDescription) {
		updates[m_knowledge_base.ColDescription] = kb.Description
	}
	if e.Changes().Dirty(domain.FieldTags) {
		tags, err := encodeTags(kb.Tags)
		if err != nil {
			return nil, err
		}
		if tags != nil {
			updates[m_knowledge_base.ColTagsJSON] = *tags
		} else {
			updates[m_knowledge_base.ColTagsJSON] = nil
		}
	}
	if e.Changes().Dirty(domain.FieldConfig) {
		cfg, err := encodeConfig(kb.Config)
		if err != nil {
			return nil, err
		}
		updates[m_knowledge_base.ColConfigJSON] = cfg
	}

	if len(updates) == 0 {
		return nil, nil
	}
	updates[m_knowledge_base.ColUpdatedAt] = e.UpdatedAt().UTC()
	return updates, nil
}

func (r *KnowledgeBaseRepo) InsertMut(e *domain.Entity) (*spanner.Mutation, error) {
	values, err := buildInsertValues(e)
	if err != nil {
		return nil, err
	}
	return m_knowledge_base.InsertMutation(values), nil
}

// UpdateMut writes only the columns behind the entity's dirty field groups
// and stamps updated_at. It returns nil when there is nothing to write.
func (r *KnowledgeBaseRepo) UpdateMut(e *domain.Entity) (*spanner.Mutation, error) {
	values, err := buildUpdateValues(e)
	if err != nil || values == nil {
		return nil, err
	}
	return m_knowledge_base.UpdateMutation(e.ID(), values), nil
}

func encodeTags(tags map[string]string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	s := string(b)
	return &s, nil
}

func encodeConfig(cfg domain.Config) (string, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(b), nil
}
