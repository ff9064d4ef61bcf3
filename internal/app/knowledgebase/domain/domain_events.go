package domain

import "time"

// DomainEvent is implemented by every knowledge-base event written to the outbox.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// KnowledgeBaseCreatedEvent is raised when a knowledge base is created.
type KnowledgeBaseCreatedEvent struct {
	KnowledgeBaseID string
	DisplayName     string
	CreatedAt       time.Time
}

func (e *KnowledgeBaseCreatedEvent) EventType() string     { return "knowledge_base.created" }
func (e *KnowledgeBaseCreatedEvent) AggregateID() string   { return e.KnowledgeBaseID }
func (e *KnowledgeBaseCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// KnowledgeBaseUpdatedEvent is raised when an update mask is applied.
type KnowledgeBaseUpdatedEvent struct {
	KnowledgeBaseID string
	// Paths is the applied update mask.
	Paths     []string
	UpdatedAt time.Time
}

func (e *KnowledgeBaseUpdatedEvent) EventType() string     { return "knowledge_base.updated" }
func (e *KnowledgeBaseUpdatedEvent) AggregateID() string   { return e.KnowledgeBaseID }
func (e *KnowledgeBaseUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }
