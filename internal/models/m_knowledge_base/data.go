package m_knowledge_base

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert from a column -> value map.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update for one knowledge base. values must
// not contain the primary key; it is prepended here.
func UpdateMutation(id string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColKnowledgeBaseID}
	vals := []interface{}{id}
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Update(TableName, cols, vals)
}

// BuildInsertMap prepares every column for insertion. tagsJSON is nil when
// the knowledge base has no tags.
func BuildInsertMap(id, displayName, description string, tagsJSON *string, configJSON string, createdAt, updatedAt time.Time) map[string]interface{} {
	m := map[string]interface{}{
		ColKnowledgeBaseID: id,
		ColDisplayName:     displayName,
		ColDescription:     description,
		ColConfigJSON:      configJSON,
		ColCreatedAt:       createdAt,
		ColUpdatedAt:       updatedAt,
	}
	if tagsJSON != nil {
		m[ColTagsJSON] = *tagsJSON
	} else {
		m[ColTagsJSON] = nil
	}
	return m
}
