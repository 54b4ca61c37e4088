package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aeterna-motors/booking-api/internal/logger"
	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email, or nil if none exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	// Log with query in single line
	logger.Log.Infow("user read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID returns the user with the given id, or nil if none exists.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, name, email, password_hash, created_at
		FROM users
		WHERE user_id = $1
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the stored record. A duplicate email
// is reported as ErrEmailExists via the users_email_key constraint.
func (r *UserWriteRepository) Save(ctx context.Context, name, email, passwordHash string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING user_id, name, email, password_hash, created_at
	`
	args := []any{name, email, passwordHash}

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	// Log with query in single line
	logger.Log.Infow("user write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name, email},
		"error", err,
	)

	if _, ok := uniqueViolation(err); ok {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
