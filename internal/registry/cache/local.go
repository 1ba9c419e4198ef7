package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	id "inu/pkg/domain"
)

// Local is an in-process owner cache. Only a single replica may use it:
// invalidations are not seen by other processes.
type Local struct {
	cache *gocache.Cache
}

// NewLocal creates a local cache whose entries expire after ttl. Expired
// entries are swept every 2*ttl.
func NewLocal(ttl time.Duration) *Local {
	return &Local{cache: gocache.New(ttl, 2*ttl)}
}

func (l *Local) Get(_ context.Context, name string) (id.AccountID, bool, error) {
	value, found := l.cache.Get(name)
	if !found {
		return id.ZeroAccount, false, nil
	}
	owner, ok := value.(id.AccountID)
	if !ok {
		l.cache.Delete(name)
		return id.ZeroAccount, false, nil
	}
	return owner, true, nil
}

func (l *Local) Set(_ context.Context, name string, owner id.AccountID) error {
	l.cache.SetDefault(name, owner)
	return nil
}

func (l *Local) Invalidate(_ context.Context, name string) error {
	l.cache.Delete(name)
	return nil
}
