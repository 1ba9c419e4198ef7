package memory

import (
	"context"
	"sync"

	audit "inu/pkg/platform/audit"
	"inu/pkg/platform/tx"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	events    []audit.Event
	retention int
}

type Option func(*InMemoryStore)

// WithRetention keeps only the n most recent events. Zero keeps everything.
func WithRetention(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.retention = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Append(ctx context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted *audit.Event
	if s.retention > 0 && len(s.events) >= s.retention {
		oldest := s.events[0]
		evicted = &oldest
		s.events = s.events[1:]
	}
	s.events = append(s.events, event)

	tx.OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.events = s.events[:len(s.events)-1]
		if evicted != nil {
			s.events = append([]audit.Event{*evicted}, s.events...)
		}
	})
	return nil
}

// ListAll returns every event in emission order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}

// ListBySubject returns the events recorded for one name.
func (s *InMemoryStore) ListBySubject(_ context.Context, parent, subject string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, event := range s.events {
		if event.Parent == parent && event.Subject == subject {
			out = append(out, event)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
