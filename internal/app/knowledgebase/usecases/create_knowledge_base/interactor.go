package create_knowledge_base

import (
	"context"

	"github.com/google/uuid"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/contracts"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/usecases/shared"
	"github.com/murkotick/knowledge-base-service/internal/pkg/clock"
	commitplan "github.com/murkotick/knowledge-base-service/internal/pkg/committer"
)

// Request carries the resource to create. Any ID in it is ignored.
type Request struct {
	KnowledgeBase domain.KnowledgeBase
}

type Interactor struct {
	Repo       contracts.KnowledgeBaseRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	Clock      clock.Clock
}

func NewInteractor(repo contracts.KnowledgeBaseRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{
		Repo:       repo,
		OutboxRepo: outboxRepo,
		Committer:  committer,
		Clock:      clk,
	}
}

// Execute stores a new knowledge base and its creation event in one commit
// and returns the stored resource.
func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.KnowledgeBase, error) {
	now := it.Clock.Now()

	entity, err := domain.NewEntity(uuid.New().String(), req.KnowledgeBase, now)
	if err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	mut, err := it.Repo.InsertMut(entity)
	if err != nil {
		return nil, err
	}
	plan.Add(mut)

	if err := shared.AddOutboxEvents(plan, it.OutboxRepo, entity.DomainEvents(), now); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return nil, err
	}

	kb := entity.KnowledgeBase()
	return &kb, nil
}
