package repo

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/contracts"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/models/m_knowledge_base"
	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

func knowledgeBase() domain.KnowledgeBase {
	return domain.KnowledgeBase{
		DisplayName: "Docs",
		Description: "product docs",
		Config: domain.Config{
			Indexer: &domain.Indexer{ChunkSize: 512, ChunkOverlap: 64, InputTopics: []string{"orders"}},
		},
	}
}

// TestInsertMut_NoTags verifies that a knowledge base without tags stores NULL tags.
func TestInsertMut_NoTags(t *testing.T) {
	now := time.Now().UTC()
	e, err := domain.NewEntity("kb-1", knowledgeBase(), now)
	require.NoError(t, err)

	values, err := buildInsertValues(e)
	require.NoError(t, err)

	assert.Equal(t, "kb-1", values[m_knowledge_base.ColKnowledgeBaseID])
	assert.Equal(t, "Docs", values[m_knowledge_base.ColDisplayName])
	v, ok := values[m_knowledge_base.ColTagsJSON]
	require.True(t, ok, "expected key %s in insert map", m_knowledge_base.ColTagsJSON)
	assert.Nil(t, v)

	var cfg domain.Config
	require.NoError(t, json.Unmarshal([]byte(values[m_knowledge_base.ColConfigJSON].(string)), &cfg))
	assert.Equal(t, []string{"orders"}, cfg.Indexer.InputTopics)

	mut, err := NewKnowledgeBaseRepo().InsertMut(e)
	require.NoError(t, err)
	require.NotNil(t, mut)
}

func TestInsertMut_WithTags(t *testing.T) {
	kb := knowledgeBase()
	kb.Tags = map[string]string{"team": "search"}
	e, err := domain.NewEntity("kb-2", kb, time.Now().UTC())
	require.NoError(t, err)

	values, err := buildInsertValues(e)
	require.NoError(t, err)

	assert.JSONEq(t, `{"team":"search"}`, values[m_knowledge_base.ColTagsJSON].(string))
}

func TestUpdateMut_WritesOnlyDirtyColumns(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	kb := knowledgeBase()
	kb.ID = "kb-3"
	e := domain.ReconstructEntity(kb, created, created)

	incoming := knowledgeBase()
	incoming.DisplayName = "Docs v2"
	incoming.Description = "ignored"
	now := created.Add(time.Minute)
	require.NoError(t, e.ApplyUpdate(incoming, []fieldmask.Path{domain.PathDisplayName}, now))

	values, err := buildUpdateValues(e)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		m_knowledge_base.ColDisplayName: "Docs v2",
		m_knowledge_base.ColUpdatedAt:   now,
	}, values)

	mut, err := NewKnowledgeBaseRepo().UpdateMut(e)
	require.NoError(t, err)
	assert.NotNil(t, mut)
}

func TestUpdateMut_NoChanges(t *testing.T) {
	e := domain.ReconstructEntity(knowledgeBase(), time.Time{}, time.Time{})

	mut, err := NewKnowledgeBaseRepo().UpdateMut(e)
	require.NoError(t, err)
	assert.Nil(t, mut)
}

func TestOutboxRepo_InsertMut(t *testing.T) {
	r := NewOutboxRepo()
	assert.Nil(t, r.InsertMut(nil))
	assert.NotNil(t, r.InsertMut(&contracts.OutboxEvent{EventID: "e-1", EventType: "knowledge_base.updated"}))
}
