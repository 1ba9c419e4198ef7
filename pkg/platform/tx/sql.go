package tx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ledgerLockKey is the advisory lock every mutating transaction takes so
// writes are applied in a single global order.
const ledgerLockKey int64 = 0x696e75

var errWriteInView = errors.New("write transaction requested inside a read-only view")

// SQL runs operations in PostgreSQL transactions. The *sql.Tx travels in the
// context (see WithTx) and stores pick it up through From.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

func (t *SQL) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s, ok := scopeFrom(ctx); ok {
		if s.readOnly {
			return errWriteInView
		}
		return fn(ctx)
	}

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	s := &scope{}
	defer func() {
		if r := recover(); r != nil {
			_ = sqlTx.Rollback()
			panic(r)
		}
	}()

	if _, err := sqlTx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		_ = sqlTx.Rollback()
		return fmt.Errorf("acquire ledger lock: %w", err)
	}

	txCtx := context.WithValue(WithTx(ctx, sqlTx), scopeKey{}, s)
	if err := fn(txCtx); err != nil {
		_ = sqlTx.Rollback()
		s.rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		s.rollback()
		return fmt.Errorf("commit tx: %w", err)
	}
	s.commit()
	return nil
}

func (t *SQL) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := scopeFrom(ctx); ok {
		return fn(ctx)
	}
	sqlTx, err := t.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return fmt.Errorf("begin read tx: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()
	// Readers hold the ledger lock shared, writers exclusive.
	if _, err := sqlTx.ExecContext(ctx, `SELECT pg_advisory_xact_lock_shared($1)`, ledgerLockKey); err != nil {
		return fmt.Errorf("acquire ledger read lock: %w", err)
	}
	s := &scope{readOnly: true}
	defer func() { s.closed = true }()
	return fn(context.WithValue(WithTx(ctx, sqlTx), scopeKey{}, s))
}
