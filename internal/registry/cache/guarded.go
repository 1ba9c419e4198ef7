package cache

import (
	"context"
	"log/slog"

	id "inu/pkg/domain"
	"inu/pkg/platform/circuit"
)

// Cache is the owner cache contract shared by OwnerCache and Guarded.
type Cache interface {
	Get(ctx context.Context, name string) (id.AccountID, bool, error)
	Set(ctx context.Context, name string, owner id.AccountID) error
	Invalidate(ctx context.Context, name string) error
}

// Guarded bypasses the wrapped cache while its breaker is open. Reads and
// fills become silent misses; invalidations are always attempted so no
// stale owner survives an outage.
type Guarded struct {
	next    Cache
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(next Cache, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Get(ctx context.Context, name string) (id.AccountID, bool, error) {
	if !g.breaker.Allow() {
		return id.ZeroAccount, false, nil
	}
	owner, ok, err := g.next.Get(ctx, name)
	g.record(ctx, err)
	return owner, ok, err
}

func (g *Guarded) Set(ctx context.Context, name string, owner id.AccountID) error {
	if !g.breaker.Allow() {
		return nil
	}
	err := g.next.Set(ctx, name, owner)
	g.record(ctx, err)
	return err
}

func (g *Guarded) Invalidate(ctx context.Context, name string) error {
	err := g.next.Invalidate(ctx, name)
	g.record(ctx, err)
	return err
}

func (g *Guarded) record(ctx context.Context, err error) {
	if err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "owner cache circuit opened", "breaker", g.breaker.Name(), "error", err)
		}
		return
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "owner cache circuit closed", "breaker", g.breaker.Name())
	}
}
