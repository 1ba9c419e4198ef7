package tx

import (
	"context"
	"sync"
)

// InMemory serializes operations with one process-wide lock. Writers are
// exclusive; readers share. In-memory stores register undo steps through
// OnRollback so an aborted operation leaves no trace.
type InMemory struct {
	mu sync.RWMutex
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (t *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s, ok := scopeFrom(ctx); ok {
		if s.readOnly {
			return errWriteInView
		}
		// Joined transactions share the outer scope.
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	after, err := t.run(ctx, fn)
	if err != nil {
		return err
	}
	for _, hook := range after {
		hook()
	}
	return nil
}

// run executes fn under the write lock and returns the after-commit hooks so
// they run once the lock is released.
func (t *InMemory) run(ctx context.Context, fn func(ctx context.Context) error) (after []func(), err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &scope{}
	defer func() {
		if r := recover(); r != nil {
			s.rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, scopeKey{}, s)); err != nil {
		s.rollback()
		return nil, err
	}
	return s.finish(), nil
}

func (t *InMemory) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := scopeFrom(ctx); ok {
		return fn(ctx)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := &scope{readOnly: true}
	defer func() { s.closed = true }()
	return fn(context.WithValue(ctx, scopeKey{}, s))
}
