package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

	CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT users_email_key UNIQUE (email)
	);

	CREATE TABLE IF NOT EXISTS bookings (
		booking_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL,
		model VARCHAR(100) NOT NULL,
		user_id UUID REFERENCES users(user_id),
		status VARCHAR(20) NOT NULL,
		reference_id VARCHAR(9) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT bookings_reference_id_key UNIQUE (reference_id)
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	user, err := repo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserWriteRepository_Save_DuplicateEmail(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash")
	assert.NoError(t, err)

	user, err := repo.Save(ctx, "Other Alice", "alice@example.com", "$2a$10$otherhash")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Nil(t, user)
}

func TestUserReadRepository(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, "Charlie", "charlie@example.com", "$2a$10$hash")
	assert.NoError(t, err)

	t.Run("GetByEmail", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "charlie@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, saved.UserID, user.UserID)
		assert.Equal(t, "Charlie", user.Name)
	})

	t.Run("GetByEmailNotFound", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByID", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, saved.UserID)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie@example.com", user.Email)
	})
}
