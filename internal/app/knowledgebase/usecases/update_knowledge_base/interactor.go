package update_knowledge_base

import (
	"context"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/contracts"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/usecases/shared"
	"github.com/murkotick/knowledge-base-service/internal/pkg/clock"
	commitplan "github.com/murkotick/knowledge-base-service/internal/pkg/committer"
	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

// Request is a masked update: KnowledgeBase is the complete edited resource
// and Paths names the fields to take from it.
type Request struct {
	ID            string
	KnowledgeBase *domain.KnowledgeBase
	Paths         []fieldmask.Path
}

// Interactor applies update masks to stored knowledge bases.
type Interactor struct {
	Repo       contracts.KnowledgeBaseRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	ReadModel  contracts.ReadModel
	Clock      clock.Clock
}

func NewInteractor(repo contracts.KnowledgeBaseRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, readModel contracts.ReadModel, clk clock.Clock) *Interactor {
	return &Interactor{
		Repo:       repo,
		OutboxRepo: outboxRepo,
		Committer:  committer,
		ReadModel:  readModel,
		Clock:      clk,
	}
}

// Execute returns the stored resource after the update. An empty mask
// writes nothing and returns the resource as stored.
// The row is read, merged and written back in one transaction.
func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.KnowledgeBase, error) {
	if req.ID == "" {
		return nil, domain.ErrMissingID
	}
	if len(req.Paths) > 0 && req.KnowledgeBase == nil {
		return nil, domain.ErrMissingResource
	}

	var out domain.KnowledgeBase
	err := it.Committer.Transact(ctx, func(ctx context.Context, txn commitplan.Txn) (*commitplan.Plan, error) {
		now := it.Clock.Now()

		// 1. Load aggregate inside the transaction
		row, err := it.ReadModel.GetKnowledgeBaseForUpdate(ctx, txn, req.ID)
		if err != nil {
			return nil, err
		}
		entity, err := shared.EntityFromDTO(row)
		if err != nil {
			return nil, err
		}

		plan := commitplan.NewPlan()
		if len(req.Paths) > 0 {
			// 2. Apply the mask
			if err := entity.ApplyUpdate(*req.KnowledgeBase, req.Paths, now); err != nil {
				return nil, err
			}

			// 3. Collect mutations: dirty columns plus outbox events
			mut, err := it.Repo.UpdateMut(entity)
			if err != nil {
				return nil, err
			}
			plan.Add(mut)
			if err := shared.AddOutboxEvents(plan, it.OutboxRepo, entity.DomainEvents(), now); err != nil {
				return nil, err
			}
		}

		out = entity.KnowledgeBase()
		return plan, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
