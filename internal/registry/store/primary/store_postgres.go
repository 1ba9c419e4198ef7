package primary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inu/internal/platform/postgres"
	id "inu/pkg/domain"
)

// PostgresStore persists the primary-domain index in primary_domains.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, account id.AccountID) (string, bool, error) {
	var name string
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT name FROM primary_domains WHERE account = $1`, account.String()).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get primary domain: %w", err)
	}
	return name, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, account id.AccountID, name string) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO primary_domains (account, name) VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE SET name = EXCLUDED.name`,
		account.String(), name,
	)
	if err != nil {
		return fmt.Errorf("set primary domain: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, account id.AccountID) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM primary_domains WHERE account = $1`, account.String())
	if err != nil {
		return fmt.Errorf("clear primary domain: %w", err)
	}
	return nil
}
