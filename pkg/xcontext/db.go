package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type txHolder struct {
	tx   *gorm.DB
	done bool
}

// DB returns the running transaction of the context if it exists, otherwise,
// returns the database connection.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && !holder.done {
		return holder.tx.WithContext(ctx)
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db.WithContext(ctx)
}

// WithDBTransaction begins a transaction. All repositories using DB(ctx) with
// the returned context work on this transaction until it is committed or
// rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	db, _ := ctx.Value(dbKey{}).(*gorm.DB)
	return context.WithValue(ctx, dbTxKey{}, &txHolder{tx: db.Begin()})
}

func WithCommitDBTransaction(ctx context.Context) error {
	holder, ok := ctx.Value(dbTxKey{}).(*txHolder)
	if !ok || holder.done {
		return nil
	}

	holder.done = true
	return holder.tx.Commit().Error
}

// WithRollbackDBTransaction rolls back the transaction if it hasn't been
// committed yet. It is safe to defer right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	holder, ok := ctx.Value(dbTxKey{}).(*txHolder)
	if !ok || holder.done {
		return
	}

	holder.done = true
	holder.tx.Rollback()
}
