package primary

import (
	"context"
	"sync"

	id "inu/pkg/domain"
	"inu/pkg/platform/tx"
)

// InMemory is the primary-domain index: one optional name per account.
type InMemory struct {
	mu      sync.RWMutex
	primary map[id.AccountID]string
}

func NewInMemory() *InMemory {
	return &InMemory{primary: make(map[id.AccountID]string)}
}

// Get returns the account's primary name and whether one is set.
func (s *InMemory) Get(_ context.Context, account id.AccountID) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.primary[account]
	return name, ok, nil
}

func (s *InMemory) Set(ctx context.Context, account id.AccountID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.primary[account]
	s.primary[account] = name
	tx.OnRollback(ctx, s.restore(account, prev, had))
	return nil
}

func (s *InMemory) Clear(ctx context.Context, account id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.primary[account]
	if !had {
		return nil
	}
	delete(s.primary, account)
	tx.OnRollback(ctx, s.restore(account, prev, had))
	return nil
}

func (s *InMemory) restore(account id.AccountID, prev string, had bool) func() {
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if had {
			s.primary[account] = prev
			return
		}
		delete(s.primary, account)
	}
}
