package registrar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inu/internal/platform/postgres"
	"inu/internal/registrar/models"
	id "inu/pkg/domain"
	"inu/pkg/platform/sentinel"
)

// PostgresStore persists registrars in the registrars table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, registrar *models.Registrar) error {
	info := registrar.OwnerInfo
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO registrars (parent_domain, administrator, description, website, email, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		registrar.ParentDomain, registrar.Administrator.String(),
		info.Description, info.Website, info.Email, info.Avatar,
		registrar.CreatedAt, registrar.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert registrar: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByParent(ctx context.Context, parent string) (*models.Registrar, error) {
	var (
		registrar models.Registrar
		admin     string
	)
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT parent_domain, administrator, description, website, email, avatar, created_at, updated_at
		FROM registrars WHERE parent_domain = $1`, parent).Scan(
		&registrar.ParentDomain, &admin,
		&registrar.OwnerInfo.Description, &registrar.OwnerInfo.Website,
		&registrar.OwnerInfo.Email, &registrar.OwnerInfo.Avatar,
		&registrar.CreatedAt, &registrar.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registrar: %w", err)
	}
	registrar.Administrator = id.AccountID(admin)
	return &registrar, nil
}

func (s *PostgresStore) UpdateOwnerInfo(ctx context.Context, parent string, info models.OwnerInfo, now time.Time) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE registrars
		SET description = $2, website = $3, email = $4, avatar = $5, updated_at = $6
		WHERE parent_domain = $1`,
		parent, info.Description, info.Website, info.Email, info.Avatar, now,
	)
	if err != nil {
		return fmt.Errorf("update owner info: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update owner info: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
