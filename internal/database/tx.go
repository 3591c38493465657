package database

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

type commitHooksKey struct{}

// commitHooks collects work that must only happen once a transaction has
// committed. A single request goroutine owns it.
type commitHooks struct {
	fns []func(context.Context)
}

// WithTx returns a context carrying tx. Repositories pick it up through Conn.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction stored in ctx, if any.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// Conn returns the transaction in ctx when present, otherwise db. The result is bound to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// AfterCommit runs fn once the transaction started by InTx in ctx commits,
// and drops it on rollback. Without such a transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func(context.Context)) {
	if hooks, ok := ctx.Value(commitHooksKey{}).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn(ctx)
}

// InTx runs fn inside a single transaction. A transaction already present in
// ctx is joined instead of nested. fn's error or panic rolls everything back.
// Hooks registered through AfterCommit run after the outermost commit.
func InTx(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	hooks := &commitHooks{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(WithTx(ctx, tx), commitHooksKey{}, hooks))
	})
	if err != nil {
		return err
	}
	for _, hook := range hooks.fns {
		hook(context.WithoutCancel(ctx))
	}
	return nil
}
