package contracts

import (
	"context"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
)

// Updater is the RPC collaborator that ships an update request to the
// knowledge-base service. Errors are returned as produced by the transport;
// retries, if any, are the implementation's concern.
type Updater interface {
	Update(ctx context.Context, req *dto.UpdateRequest) (*domain.KnowledgeBase, error)
}
