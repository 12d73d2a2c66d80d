package admins

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

// PostgresStore persists admin accounts in the admins table.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgres creates a PostgreSQL-backed admin store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("lumina/internal/admins"),
	}
}

func (s *PostgresStore) Create(ctx context.Context, admin Admin) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Create")
	defer span.End()

	query := `
		INSERT INTO admins (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		admin.Username, admin.PasswordHash, admin.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, sentinel.ErrConflict
		}
		span.RecordError(err)
		return 0, fmt.Errorf("insert admin: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) FindByUsername(ctx context.Context, username string) (Admin, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.FindByUsername")
	defer span.End()

	query := `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE lower(username) = lower($1)
	`
	var admin Admin
	err := s.db.QueryRowContext(ctx, query, username).
		Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, sentinel.ErrNotFound
		}
		span.RecordError(err)
		return Admin{}, fmt.Errorf("query admin: %w", err)
	}
	return admin, nil
}
