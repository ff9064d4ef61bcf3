package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
)

// KnowledgeBaseRepo is the write-side repository for knowledge bases.
// Methods return Spanner mutations; they do not apply them.
type KnowledgeBaseRepo interface {
	// InsertMut returns a mutation inserting the entity.
	InsertMut(e *domain.Entity) (*spanner.Mutation, error)

	// UpdateMut returns a mutation writing the entity's dirty columns, or nil when nothing changed.
	UpdateMut(e *domain.Entity) (*spanner.Mutation, error)
}
