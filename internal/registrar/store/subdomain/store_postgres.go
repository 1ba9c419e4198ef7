package subdomain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inu/internal/platform/postgres"
	"inu/internal/registrar/models"
	id "inu/pkg/domain"
	"inu/pkg/platform/sentinel"
)

// PostgresStore persists subdomains in the subdomains and subdomain_holders tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, record *models.SubdomainRecord) error {
	p := record.Profile
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO subdomains (parent_domain, name, owner, description, website, email, avatar, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.Parent, record.Name, record.Owner.String(),
		p.Description, p.Website, p.Email, p.Avatar,
		record.Position, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert subdomain: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, parent, name string) (*models.SubdomainRecord, error) {
	var (
		record models.SubdomainRecord
		owner  string
	)
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT parent_domain, name, owner, description, website, email, avatar, position, created_at, updated_at
		FROM subdomains WHERE parent_domain = $1 AND name = $2`, parent, name).Scan(
		&record.Parent, &record.Name, &owner,
		&record.Profile.Description, &record.Profile.Website,
		&record.Profile.Email, &record.Profile.Avatar,
		&record.Position, &record.CreatedAt, &record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find subdomain: %w", err)
	}
	record.Owner = id.AccountID(owner)
	return &record, nil
}

func (s *PostgresStore) Update(ctx context.Context, record *models.SubdomainRecord) error {
	p := record.Profile
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE subdomains
		SET owner = $3, description = $4, website = $5, email = $6, avatar = $7, updated_at = $8
		WHERE parent_domain = $1 AND name = $2`,
		record.Parent, record.Name, record.Owner.String(),
		p.Description, p.Website, p.Email, p.Avatar, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subdomain: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update subdomain: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context, parent string) (int, error) {
	var count int
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subdomains WHERE parent_domain = $1`, parent).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count subdomains: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) List(ctx context.Context, parent string) ([]string, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT name FROM subdomains WHERE parent_domain = $1 ORDER BY position`, parent)
	if err != nil {
		return nil, fmt.Errorf("list subdomains: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan subdomain: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subdomains: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) At(ctx context.Context, parent string, index int) (string, error) {
	var name string
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT name FROM subdomains WHERE parent_domain = $1 AND position = $2`, parent, index).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("subdomain at: %w", err)
	}
	return name, nil
}

func (s *PostgresStore) HasHolder(ctx context.Context, parent string, account id.AccountID) (bool, error) {
	var holds bool
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM subdomain_holders WHERE parent_domain = $1 AND account = $2)`,
		parent, account.String()).Scan(&holds)
	if err != nil {
		return false, fmt.Errorf("check subdomain holder: %w", err)
	}
	return holds, nil
}

func (s *PostgresStore) SetHolder(ctx context.Context, parent string, account id.AccountID, holds bool) error {
	query := `DELETE FROM subdomain_holders WHERE parent_domain = $1 AND account = $2`
	if holds {
		query = `INSERT INTO subdomain_holders (parent_domain, account) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	}
	if _, err := postgres.Conn(ctx, s.db).ExecContext(ctx, query, parent, account.String()); err != nil {
		return fmt.Errorf("set subdomain holder: %w", err)
	}
	return nil
}
