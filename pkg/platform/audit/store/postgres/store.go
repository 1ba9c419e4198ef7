package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	audit "inu/pkg/platform/audit"
	txcontext "inu/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table in the caller's transaction and
// published to Kafka by the outbox relay.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Payload is the JSON structure written to the outbox and published to Kafka.
type Payload struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Actor     string `json:"actor,omitempty"`
	Subject   string `json:"subject"`
	Parent    string `json:"parent,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Append writes an audit event to the outbox table for Kafka publishing.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := event.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	payload := Payload{
		ID:        eventID,
		Category:  string(audit.AuditEvent(event.Action).Category()),
		Timestamp: timestamp.UTC().Format(time.RFC3339Nano),
		Action:    event.Action,
		Actor:     event.Actor.String(),
		Subject:   event.Subject,
		Parent:    event.Parent,
		From:      event.From.String(),
		To:        event.To.String(),
		Detail:    event.Detail,
		RequestID: event.RequestID,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	// Subdomain events are keyed by their parent so one registrar's history
	// stays ordered within a partition.
	aggregateType := "domain"
	aggregateID := event.Subject
	if event.Parent != "" {
		aggregateType = "registrar"
		aggregateID = event.Parent
	}

	_, err = s.execer(ctx).ExecContext(ctx, `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		eventID, aggregateType, aggregateID, event.Action, payloadBytes, timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}
