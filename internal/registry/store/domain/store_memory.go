package domain

import (
	"context"
	"sync"
	"time"

	"inu/internal/registry/models"
	id "inu/pkg/domain"
	"inu/pkg/platform/sentinel"
	"inu/pkg/platform/tx"
)

// InMemory keeps domain records keyed by name and by sequence id. Writes
// register undo steps with the surrounding transaction.
type InMemory struct {
	mu     sync.RWMutex
	byName map[string]*models.DomainRecord
	bySeq  []*models.DomainRecord
}

func NewInMemory() *InMemory {
	return &InMemory{byName: make(map[string]*models.DomainRecord)}
}

func (s *InMemory) Create(ctx context.Context, record *models.DomainRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[record.Name]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if record.SequenceID != uint64(len(s.bySeq)) {
		return sentinel.ErrInvalidState
	}
	stored := *record
	s.byName[record.Name] = &stored
	s.bySeq = append(s.bySeq, &stored)

	tx.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.byName, stored.Name)
		s.bySeq = s.bySeq[:len(s.bySeq)-1]
	})
	return nil
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.byName[name]; ok {
		found := *record
		return &found, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindBySequenceID(_ context.Context, sequenceID uint64) (*models.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sequenceID >= uint64(len(s.bySeq)) {
		return nil, sentinel.ErrNotFound
	}
	found := *s.bySeq[sequenceID]
	return &found, nil
}

func (s *InMemory) UpdateOwner(ctx context.Context, sequenceID uint64, owner id.AccountID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sequenceID >= uint64(len(s.bySeq)) {
		return sentinel.ErrNotFound
	}
	record := s.bySeq[sequenceID]
	prevOwner, prevUpdated := record.Owner, record.UpdatedAt
	record.ApplyTransfer(owner, now)

	tx.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		record.Owner = prevOwner
		record.UpdatedAt = prevUpdated
	})
	return nil
}

func (s *InMemory) NextSequenceID(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.bySeq)), nil
}

// ListByOwner returns the owner's records in creation order.
func (s *InMemory) ListByOwner(_ context.Context, owner id.AccountID) ([]*models.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.DomainRecord
	for _, record := range s.bySeq {
		if record.Owner == owner {
			found := *record
			out = append(out, &found)
		}
	}
	return out, nil
}
