package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
)

// ErrNoClient indicates an Adapter built without a Spanner client.
var ErrNoClient = errors.New("committer: spanner client is nil")

// Adapter applies plans in a single Spanner read-write transaction.
type Adapter struct {
	client *spanner.Client
	logger *zap.Logger
}

func NewAdapter(client *spanner.Client, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{client: client, logger: logger}
}

func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if a.client == nil {
		return ErrNoClient
	}

	commitTS, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("commit %d mutations: %w", plan.Len(), err)
	}
	a.logger.Debug("plan committed", zap.Int("mutations", plan.Len()), zap.Time("commit_ts", commitTS))
	return nil
}

// Txn is the read side of a read-write transaction.
// *spanner.ReadWriteTransaction satisfies it.
type Txn interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

// BuildFunc reads through txn and returns the mutations to commit in the same
// transaction. It runs again from scratch whenever Spanner aborts and retries
// the transaction, so it must not keep state between calls.
type BuildFunc func(ctx context.Context, txn Txn) (*Plan, error)

// Transact runs build inside one read-write transaction and commits the plan it
// returns. Rows read through txn are locked until commit, so a write planned
// from them cannot overwrite a concurrent change.
func (a *Adapter) Transact(ctx context.Context, build BuildFunc) error {
	if a.client == nil {
		return ErrNoClient
	}

	var n int
	commitTS, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		plan, err := build(ctx, tx)
		if err != nil {
			return err
		}
		if plan == nil || plan.IsEmpty() {
			return nil
		}
		n = plan.Len()
		return tx.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("transact: %w", err)
	}
	a.logger.Debug("transaction committed", zap.Int("mutations", n), zap.Time("commit_ts", commitTS))
	return nil
}
