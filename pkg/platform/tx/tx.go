package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok && s.closed {
		return nil, false
	}
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Runner is the ledger's transactional boundary. Every mutating operation runs
// inside RunInTx and every query inside View, giving one global order of
// operations and all-or-nothing commits.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

type scopeKey struct{}

// scope tracks the bookkeeping of one running transaction.
type scope struct {
	readOnly bool
	closed   bool
	undo     []func()
	after    []func()
}

// scopeFrom returns the transaction ctx belongs to, if it is still running.
// Contexts captured by after-commit hooks see no transaction.
func scopeFrom(ctx context.Context) (*scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*scope)
	if !ok || s.closed {
		return nil, false
	}
	return s, true
}

// InTx reports whether ctx belongs to a running read-write transaction.
func InTx(ctx context.Context) bool {
	s, ok := scopeFrom(ctx)
	return ok && !s.readOnly
}

// OnRollback registers an undo step for an in-memory write. Steps run in
// reverse registration order when the transaction aborts. Outside a
// transaction the call is a no-op.
func OnRollback(ctx context.Context, undo func()) {
	if s, ok := scopeFrom(ctx); ok && !s.readOnly {
		s.undo = append(s.undo, undo)
	}
}

// AfterCommit registers fn to run once the outermost transaction commits.
// Outside a transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	if s, ok := scopeFrom(ctx); ok && !s.readOnly {
		s.after = append(s.after, fn)
		return
	}
	fn()
}

func (s *scope) rollback() {
	s.closed = true
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
	s.undo = nil
	s.after = nil
}

// finish closes the scope and hands back its after-commit hooks.
func (s *scope) finish() []func() {
	s.closed = true
	after := s.after
	s.undo = nil
	s.after = nil
	return after
}

func (s *scope) commit() {
	for _, fn := range s.finish() {
		fn()
	}
}
