package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"lumina/pkg/platform/sentinel"
	txcontext "lumina/pkg/platform/tx"
)

// PostgresStore persists photo metadata in the photos table.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgres creates a PostgreSQL-backed photo store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("lumina/internal/photos"),
	}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, photo Photo) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Create")
	defer span.End()

	query := `
		INSERT INTO photos (user_id, title, file_path, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := s.execer(ctx).QueryRowContext(ctx, query,
		photo.UserID, photo.Title, photo.FilePath, photo.CreatedAt,
	).Scan(&id)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("insert photo: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, photoID int64) (Photo, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Get")
	defer span.End()

	query := `
		SELECT id, user_id, title, file_path, created_at
		FROM photos
		WHERE id = $1
	`
	var photo Photo
	err := s.db.QueryRowContext(ctx, query, photoID).Scan(
		&photo.ID, &photo.UserID, &photo.Title, &photo.FilePath, &photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Photo{}, sentinel.ErrNotFound
		}
		span.RecordError(err)
		return Photo{}, fmt.Errorf("query photo: %w", err)
	}
	return photo, nil
}

func (s *PostgresStore) Delete(ctx context.Context, photoID int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Delete")
	defer span.End()

	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, photoID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("delete photo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete photo rows affected: %w", err)
	}
	return affected > 0, nil
}
