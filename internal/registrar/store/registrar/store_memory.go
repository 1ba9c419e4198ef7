package registrar

import (
	"context"
	"sync"
	"time"

	"inu/internal/registrar/models"
	"inu/pkg/platform/sentinel"
	"inu/pkg/platform/tx"
)

// InMemory keeps one registrar record per parent domain.
type InMemory struct {
	mu         sync.RWMutex
	registrars map[string]*models.Registrar
}

func NewInMemory() *InMemory {
	return &InMemory{registrars: make(map[string]*models.Registrar)}
}

func (s *InMemory) Create(ctx context.Context, registrar *models.Registrar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrars[registrar.ParentDomain]; ok {
		return sentinel.ErrAlreadyUsed
	}
	stored := *registrar
	s.registrars[stored.ParentDomain] = &stored

	tx.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.registrars, stored.ParentDomain)
	})
	return nil
}

func (s *InMemory) FindByParent(_ context.Context, parent string) (*models.Registrar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if registrar, ok := s.registrars[parent]; ok {
		found := *registrar
		return &found, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) UpdateOwnerInfo(ctx context.Context, parent string, info models.OwnerInfo, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	registrar, ok := s.registrars[parent]
	if !ok {
		return sentinel.ErrNotFound
	}
	prevInfo, prevUpdated := registrar.OwnerInfo, registrar.UpdatedAt
	registrar.OwnerInfo = info
	registrar.UpdatedAt = now

	tx.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		registrar.OwnerInfo = prevInfo
		registrar.UpdatedAt = prevUpdated
	})
	return nil
}
