// Package relay moves committed audit events from the outbox to the event
// stream. Delivery is at-least-once: entries are marked only after the
// producer acknowledged them.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Entry is one outbox row awaiting publication.
type Entry struct {
	ID        string
	Key       string
	EventType string
	Payload   []byte
}

// Outbox is the source of unpublished entries.
type Outbox interface {
	FetchUnpublished(ctx context.Context, limit int) ([]Entry, error)
	MarkPublished(ctx context.Context, ids []string, at time.Time) error
}

// Producer publishes one entry to the stream.
type Producer interface {
	Publish(ctx context.Context, key string, eventType string, payload []byte) error
}

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Relay polls the outbox and forwards entries in creation order.
type Relay struct {
	outbox    Outbox
	producer  Producer
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type Option func(*Relay)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithInterval(interval time.Duration) Option {
	return func(r *Relay) {
		if interval > 0 {
			r.interval = interval
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func New(outbox Outbox, producer Producer, opts ...Option) *Relay {
	r := &Relay{
		outbox:    outbox,
		producer:  producer,
		logger:    slog.Default(),
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays until ctx is cancelled. Failed batches are retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
			}
		}
	}
}

// RelayOnce forwards one batch and returns how many entries were published.
// Publication stops at the first failure so ordering is preserved.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	entries, err := r.outbox.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	published := make([]string, 0, len(entries))
	var publishErr error
	for _, entry := range entries {
		if err := r.producer.Publish(ctx, entry.Key, entry.EventType, entry.Payload); err != nil {
			publishErr = fmt.Errorf("publish outbox entry %s: %w", entry.ID, err)
			break
		}
		published = append(published, entry.ID)
	}

	if err := r.outbox.MarkPublished(ctx, published, time.Now()); err != nil {
		return 0, err
	}
	if len(published) > 0 {
		r.logger.DebugContext(ctx, "outbox entries relayed", "count", len(published))
	}
	return len(published), publishErr
}
