package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"inu/pkg/platform/audit/relay"
)

// FetchUnpublished returns up to limit outbox entries not yet relayed, oldest first.
func (s *Store) FetchUnpublished(ctx context.Context, limit int) ([]relay.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, aggregate_id, event_type, payload
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at, id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch outbox: %w", err)
	}
	defer rows.Close()

	var entries []relay.Entry
	for rows.Next() {
		var entry relay.Entry
		if err := rows.Scan(&entry.ID, &entry.Key, &entry.EventType, &entry.Payload); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps relayed entries so they are not sent again.
func (s *Store) MarkPublished(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE outbox SET published_at = $2 WHERE id = ANY($1::uuid[])`,
		pq.Array(ids), at,
	)
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
