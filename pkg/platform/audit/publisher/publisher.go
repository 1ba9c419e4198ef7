// Package publisher emits ledger audit events with fail-closed semantics.
//
// Emit runs inside the ledger transaction: the event is written to the audit
// store (outbox) in the same commit as the ownership change, and a failed
// write aborts the operation.
package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	audit "inu/pkg/platform/audit"
	"inu/pkg/requestcontext"
)

// Publisher emits audit events synchronously.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a publisher over store.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit fills request-scoped fields and writes the event.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Action == "" {
		return fmt.Errorf("audit event requires Action")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	event.Category = audit.AuditEvent(event.Action).Category()

	if err := p.store.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit event persistence failed",
				"action", event.Action,
				"subject", event.Subject,
				"request_id", event.RequestID,
				"error", err,
			)
		}
		return fmt.Errorf("audit persistence failed: %w", err)
	}
	return nil
}
