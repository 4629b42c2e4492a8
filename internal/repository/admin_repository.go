package repository

import (
	"context"

	"summit-registration/internal/model"
	"summit-registration/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	// EnsureUser seeds or updates an account; used at startup so the
	// configured admin always exists.
	EnsureUser(ctx context.Context, username, passwordHash, role string) error
}

type AdminRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &AdminRepositoryImpl{
		pool: pool,
	}
}

func (r *AdminRepositoryImpl) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM admin_users
		WHERE username = $1
	`

	var admin model.AdminUser
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, err
	}

	return &admin, nil
}

func (r *AdminRepositoryImpl) EnsureUser(ctx context.Context, username, passwordHash, role string) error {
	query := `
		INSERT INTO admin_users (username, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role
	`

	_, err := r.pool.Exec(ctx, query, username, passwordHash, role)
	return err
}
