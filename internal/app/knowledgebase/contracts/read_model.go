package contracts

import (
	"context"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
	commitplan "github.com/murkotick/knowledge-base-service/internal/pkg/committer"
)

type ReadModel interface {
	// GetKnowledgeBase returns domain.ErrKnowledgeBaseNotFound for an unknown id.
	GetKnowledgeBase(ctx context.Context, id string) (*dto.KnowledgeBaseDTO, error)

	// GetKnowledgeBaseForUpdate reads the row inside txn, the transaction that
	// will write it back.
	GetKnowledgeBaseForUpdate(ctx context.Context, txn commitplan.Txn, id string) (*dto.KnowledgeBaseDTO, error)
}
