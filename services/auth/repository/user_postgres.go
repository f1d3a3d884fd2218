package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/services/auth"
)

const usersSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY,
		mobile     VARCHAR(10) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// UserPostgresRepo stores users in PostgreSQL
type UserPostgresRepo struct {
	db *sqlx.DB
}

// NewUserPostgresRepo creates a Postgres-backed user directory
func NewUserPostgresRepo(db *sqlx.DB) *UserPostgresRepo {
	return &UserPostgresRepo{db: db}
}

// EnsureSchema creates the users table if it does not exist
func (r *UserPostgresRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, usersSchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// FindByMobile retrieves a user by mobile number
func (r *UserPostgresRepo) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	query := `
		SELECT id, mobile, created_at
		FROM users
		WHERE mobile = $1
	`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, mobile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Create inserts a user. A concurrent insert of the same mobile yields ErrUserExists.
func (r *UserPostgresRepo) Create(ctx context.Context, mobile string) (*models.User, error) {
	query := `
		INSERT INTO users (id, mobile, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (mobile) DO NOTHING
		RETURNING id, mobile, created_at
	`

	var user models.User
	err := r.db.QueryRowxContext(ctx, query, uuid.NewString(), mobile, time.Now().UTC()).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}
