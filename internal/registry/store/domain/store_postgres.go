package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inu/internal/platform/postgres"
	"inu/internal/registry/models"
	id "inu/pkg/domain"
	"inu/pkg/platform/sentinel"
)

// PostgresStore persists domain records in the domains table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, record *models.DomainRecord) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO domains (sequence_id, name, owner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		int64(record.SequenceID), record.Name, record.Owner.String(), record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert domain: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.DomainRecord, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT sequence_id, name, owner, created_at, updated_at
		FROM domains WHERE name = $1`, name)
	return scanDomain(row)
}

func (s *PostgresStore) FindBySequenceID(ctx context.Context, sequenceID uint64) (*models.DomainRecord, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT sequence_id, name, owner, created_at, updated_at
		FROM domains WHERE sequence_id = $1`, int64(sequenceID))
	return scanDomain(row)
}

func (s *PostgresStore) UpdateOwner(ctx context.Context, sequenceID uint64, owner id.AccountID, now time.Time) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE domains SET owner = $2, updated_at = $3 WHERE sequence_id = $1`,
		int64(sequenceID), owner.String(), now,
	)
	if err != nil {
		return fmt.Errorf("update domain owner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update domain owner: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) NextSequenceID(ctx context.Context) (uint64, error) {
	var next int64
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sequence_id) + 1, 0) FROM domains`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next sequence id: %w", err)
	}
	return uint64(next), nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner id.AccountID) ([]*models.DomainRecord, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT sequence_id, name, owner, created_at, updated_at
		FROM domains WHERE owner = $1 ORDER BY sequence_id`, owner.String())
	if err != nil {
		return nil, fmt.Errorf("list domains by owner: %w", err)
	}
	defer rows.Close()

	var out []*models.DomainRecord
	for rows.Next() {
		record, err := scanDomain(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list domains by owner: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDomain(row scanner) (*models.DomainRecord, error) {
	var (
		record models.DomainRecord
		seq    int64
		owner  string
	)
	err := row.Scan(&seq, &record.Name, &owner, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan domain: %w", err)
	}
	record.SequenceID = uint64(seq)
	record.Owner = id.AccountID(owner)
	return &record, nil
}
