package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"lumina/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists user accounts in the users table.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgres creates a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("lumina/internal/users"),
	}
}

func (s *PostgresStore) Create(ctx context.Context, user User) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Create")
	defer span.End()

	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, sentinel.ErrConflict
		}
		span.RecordError(err)
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (User, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.FindByUsername")
	defer span.End()

	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE lower(username) = lower($1)
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username), span)
}

func (s *PostgresStore) FindByID(ctx context.Context, userID int64) (User, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.FindByID")
	defer span.End()

	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, userID), span)
}

func (s *PostgresStore) scanUser(row *sql.Row, span trace.Span) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, sentinel.ErrNotFound
		}
		span.RecordError(err)
		return User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}
