// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/database"

	"gorm.io/gorm"
)

// writer returns the transaction in ctx or the primary connection.
func writer(ctx context.Context, primary *gorm.DB) *gorm.DB {
	return database.Conn(ctx, primary)
}

// reader prefers the transaction in ctx, then the read replica, then the primary.
func reader(ctx context.Context, primary *gorm.DB) *gorm.DB {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}
	if db := database.GetReadDB(); db != nil {
		return db.WithContext(ctx)
	}
	return primary.WithContext(ctx)
}

// inTx reports whether ctx carries a transaction. Cache reads are skipped
// inside one so a transaction always sees its own writes.
func inTx(ctx context.Context) bool {
	_, ok := database.TxFromContext(ctx)
	return ok
}

// dropAfterCommit removes cached keys once the write in ctx has committed.
func dropAfterCommit(ctx context.Context, keys ...string) {
	database.AfterCommit(ctx, func(ctx context.Context) {
		for _, key := range keys {
			cache.Invalidate(ctx, key)
		}
	})
}

// dropPostsAfterCommit removes every cached post once ctx commits. Cached
// posts embed their author, so user writes use it too.
func dropPostsAfterCommit(ctx context.Context) {
	database.AfterCommit(ctx, cache.InvalidateAllPosts)
}

// TxManager runs a unit of work inside one database transaction.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager returns a TxManager backed by db.
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.InTx(ctx, m.db, fn)
}
