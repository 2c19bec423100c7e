package service

import (
	"context"
	"errors"
	"fmt"
)

// ErrTransactionFailed wraps any failure that aborted a multi-document
// workflow. The underlying cause is preserved for diagnostics; none of the
// workflow's writes survive.
var ErrTransactionFailed = errors.New("transaction failed, all changes reverted")

// TxRunner runs fn inside one atomic unit. Every repository write issued
// with the context fn receives commits or aborts together; the scope is
// closed on every exit path. Implemented for MongoDB sessions in
// repository/mongo.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// runAtomically wraps TxRunner failures into the service error taxonomy.
// Workflows never retry: financial and contractual operations must not be
// silently re-attempted.
func runAtomically(ctx context.Context, runner TxRunner, fn func(ctx context.Context) error) error {
	if err := runner.WithinTransaction(ctx, fn); err != nil {
		return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}
	return nil
}
