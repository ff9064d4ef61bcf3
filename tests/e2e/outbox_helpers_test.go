package e2e

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
)

type outboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	Status      string
	CreatedAt   time.Time
}

// updateMask decodes the paths recorded in a knowledge_base.updated payload.
func (e outboxEvent) updateMask(t *testing.T) []string {
	t.Helper()
	var p struct {
		UpdateMask []string `json:"update_mask"`
	}
	require.NoError(t, json.Unmarshal([]byte(e.Payload), &p))
	return p.UpdateMask
}

func mustFetchOutboxEvents(ctx context.Context, t *testing.T, client *spanner.Client, aggregateID string) []outboxEvent {
	t.Helper()
	events, err := fetchOutboxEvents(ctx, client, aggregateID)
	require.NoError(t, err)
	return events
}

func fetchOutboxEvents(ctx context.Context, client *spanner.Client, aggregateID string) ([]outboxEvent, error) {
	stmt := spanner.Statement{
		SQL: `SELECT event_id, event_type, aggregate_id, payload, status, created_at
        FROM outbox_events
        WHERE aggregate_id = @id
        ORDER BY created_at ASC, event_id ASC`,
		Params: map[string]any{"id": aggregateID},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []outboxEvent
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var e outboxEvent
		if err := row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &e.Payload, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}
