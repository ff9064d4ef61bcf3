package shared

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
)

// MarshalDomainEventPayload converts a domain event into the JSON payload
// stored in the outbox. Secrets never appear in payloads: update events carry
// the applied mask paths, not the new values.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.KnowledgeBaseCreatedEvent:
		payload = map[string]interface{}{
			"knowledge_base_id": e.KnowledgeBaseID,
			"display_name":      e.DisplayName,
			"created_at":        e.CreatedAt,
		}
	case *domain.KnowledgeBaseUpdatedEvent:
		payload = map[string]interface{}{
			"knowledge_base_id": e.KnowledgeBaseID,
			"update_mask":       e.Paths,
			"updated_at":        e.UpdatedAt,
		}
	default:
		return "", fmt.Errorf("marshal outbox payload: unsupported event %T", ev)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}
