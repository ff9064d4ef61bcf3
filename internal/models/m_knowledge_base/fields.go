package m_knowledge_base

// Column names of the knowledge_bases table.
const (
	TableName = "knowledge_bases"

	ColKnowledgeBaseID = "knowledge_base_id"
	ColDisplayName     = "display_name"
	ColDescription     = "description"
	ColTagsJSON        = "tags_json"
	ColConfigJSON      = "config_json"
	ColCreatedAt       = "created_at"
	ColUpdatedAt       = "updated_at"
)

// Columns lists every column in select order.
var Columns = []string{
	ColKnowledgeBaseID,
	ColDisplayName,
	ColDescription,
	ColTagsJSON,
	ColConfigJSON,
	ColCreatedAt,
	ColUpdatedAt,
}
