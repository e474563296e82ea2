// Package db carries the transaction plumbing shared by the gorm
// repositories. Write use cases batch their property mutations through
// RunInTransaction; etag recompute and cache sync run after the commit.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager wraps a gorm handle and threads open transactions
// through the context so repositories join them transparently.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside a transaction. The transaction handle rides
// in fn's context; any repository called with that context writes through it.
// An error from fn rolls everything back.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// GetTx returns the transaction carried by ctx, or the base handle when the
// caller is not inside one.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return tm.db.WithContext(ctx)
}

// GetTxFromContext is the repository-side accessor: it yields the in-flight
// transaction when one rides in ctx and falls back to defaultDB otherwise.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
