package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ctxKey string

const (
	// txKey is the context key for the active transaction
	txKey ctxKey = "gorm_tx"
)

// WithTx adds a transaction handle to context
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext extracts the active transaction from context
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok
}

// conn returns the transaction bound to ctx, or the base handle
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// inTx reports whether ctx carries a transaction
func inTx(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// forUpdate adds a row lock when running inside a transaction. Dialects
// without row locks (sqlite) drop the clause.
func forUpdate(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !inTx(ctx) {
			return db
		}
		return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
}

// SearchScope matches term case-insensitively against the given columns
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		parts := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			parts[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}

// DateRangeScope filters column to [start, end). A nil bound is open.
func DateRangeScope(column string, start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where(column+" >= ?", start.UTC())
		}
		if end != nil {
			db = db.Where(column+" < ?", end.UTC())
		}
		return db
	}
}

// orderBy builds a safe ORDER BY from a whitelist
func orderBy(sortBy, sortOrder string, allowed map[string]bool, fallback string) string {
	col := fallback
	if allowed[sortBy] {
		col = sortBy
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// IsDuplicateKey reports a unique constraint violation across drivers
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
