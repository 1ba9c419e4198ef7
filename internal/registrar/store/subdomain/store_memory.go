package subdomain

import (
	"context"
	"sync"

	"inu/internal/registrar/models"
	id "inu/pkg/domain"
	"inu/pkg/platform/sentinel"
	"inu/pkg/platform/tx"
)

// ledger is the subdomain state of one parent domain.
type ledger struct {
	records map[string]*models.SubdomainRecord
	order   []string
	holders map[id.AccountID]bool
}

// InMemory keeps subdomain records, their creation order and the holder
// index for every parent domain.
type InMemory struct {
	mu      sync.RWMutex
	ledgers map[string]*ledger
}

func NewInMemory() *InMemory {
	return &InMemory{ledgers: make(map[string]*ledger)}
}

func (s *InMemory) ledgerFor(parent string) *ledger {
	l, ok := s.ledgers[parent]
	if !ok {
		l = &ledger{
			records: make(map[string]*models.SubdomainRecord),
			holders: make(map[id.AccountID]bool),
		}
		s.ledgers[parent] = l
	}
	return l
}

// Create appends record to its parent's sequence. The record's Position must
// equal the current count.
func (s *InMemory) Create(ctx context.Context, record *models.SubdomainRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.ledgerFor(record.Parent)
	if _, ok := l.records[record.Name]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if record.Position != len(l.order) {
		return sentinel.ErrInvalidState
	}
	stored := *record
	l.records[stored.Name] = &stored
	l.order = append(l.order, stored.Name)

	tx.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(l.records, stored.Name)
		l.order = l.order[:len(l.order)-1]
	})
	return nil
}

func (s *InMemory) Find(_ context.Context, parent, name string) (*models.SubdomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.ledgers[parent]; ok {
		if record, ok := l.records[name]; ok {
			found := *record
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// Update replaces the owner, profile and timestamp of an existing record.
func (s *InMemory) Update(ctx context.Context, record *models.SubdomainRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[record.Parent]
	if !ok {
		return sentinel.ErrNotFound
	}
	current, ok := l.records[record.Name]
	if !ok {
		return sentinel.ErrNotFound
	}
	prev := *current
	current.Owner = record.Owner
	current.Profile = record.Profile
	current.UpdatedAt = record.UpdatedAt

	tx.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		*current = prev
	})
	return nil
}

func (s *InMemory) Count(_ context.Context, parent string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.ledgers[parent]; ok {
		return len(l.order), nil
	}
	return 0, nil
}

// List returns the parent's subdomain names in creation order.
func (s *InMemory) List(_ context.Context, parent string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	if l, ok := s.ledgers[parent]; ok {
		out = append(out, l.order...)
	}
	return out, nil
}

func (s *InMemory) At(_ context.Context, parent string, index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ledgers[parent]
	if !ok || index < 0 || index >= len(l.order) {
		return "", sentinel.ErrNotFound
	}
	return l.order[index], nil
}

func (s *InMemory) HasHolder(_ context.Context, parent string, account id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.ledgers[parent]; ok {
		return l.holders[account], nil
	}
	return false, nil
}

// SetHolder marks or unmarks account as holding a subdomain of parent.
func (s *InMemory) SetHolder(ctx context.Context, parent string, account id.AccountID, holds bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.ledgerFor(parent)
	prev := l.holders[account]
	if holds {
		l.holders[account] = true
	} else {
		delete(l.holders, account)
	}

	tx.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if prev {
			l.holders[account] = true
			return
		}
		delete(l.holders, account)
	})
	return nil
}
