package queries

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/queries/get_knowledge_base"
	commitplan "github.com/murkotick/knowledge-base-service/internal/pkg/committer"
)

// SpannerReadModel satisfies contracts.ReadModel by composing the individual queries.
type SpannerReadModel struct {
	getQ *get_knowledge_base.SpannerGetKnowledgeBaseQuery
}

func NewSpannerReadModel(client *spanner.Client) *SpannerReadModel {
	return &SpannerReadModel{
		getQ: get_knowledge_base.NewSpannerGetKnowledgeBaseQuery(client),
	}
}

func (rm *SpannerReadModel) GetKnowledgeBase(ctx context.Context, id string) (*dto.KnowledgeBaseDTO, error) {
	return rm.getQ.GetKnowledgeBase(ctx, id)
}

func (rm *SpannerReadModel) GetKnowledgeBaseForUpdate(ctx context.Context, txn commitplan.Txn, id string) (*dto.KnowledgeBaseDTO, error) {
	return rm.getQ.GetKnowledgeBaseForUpdate(ctx, txn, id)
}
