package get_knowledge_base

import (
	"context"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/contracts"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/usecases/shared"
)

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

func (h *Handler) Execute(ctx context.Context, id string) (*domain.KnowledgeBase, error) {
	if id == "" {
		return nil, domain.ErrMissingID
	}
	row, err := h.readModel.GetKnowledgeBase(ctx, id)
	if err != nil {
		return nil, err
	}
	return shared.KnowledgeBaseFromDTO(row)
}
