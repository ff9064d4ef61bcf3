package contracts

import (
	"context"

	commitplan "github.com/murkotick/knowledge-base-service/internal/pkg/committer"
)

// Committer applies mutation plans atomically. Usecases depend on this
// interface so tests can capture plans without a database.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error

	// Transact commits the plan built from reads made in the same
	// transaction. build may be called more than once.
	Transact(ctx context.Context, build commitplan.BuildFunc) error
}
