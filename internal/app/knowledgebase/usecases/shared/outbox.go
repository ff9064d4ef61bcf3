package shared

import (
	"time"

	"github.com/google/uuid"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/contracts"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/models/m_outbox"
	commitplan "github.com/murkotick/knowledge-base-service/internal/pkg/committer"
)

// AddOutboxEvents enriches events and adds their outbox inserts to plan.
func AddOutboxEvents(plan *commitplan.Plan, repo contracts.OutboxRepo, events []domain.DomainEvent, now time.Time) error {
	for _, ev := range events {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		plan.Add(repo.InsertMut(&contracts.OutboxEvent{
			EventID:      uuid.New().String(),
			EventType:    ev.EventType(),
			AggregateID:  ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       m_outbox.StatusPending,
			CreatedAtUTC: now,
		}))
	}
	return nil
}
