package likes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"lumina/pkg/platform/sentinel"
	txcontext "lumina/pkg/platform/tx"
)

// pq error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgresStore persists like relations in the likes table. The
// (user_id, photo_id) unique index is the concurrency guard for toggles.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgres creates a PostgreSQL-backed like store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("lumina/internal/likes"),
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

func (s *PostgresStore) Insert(ctx context.Context, userID, photoID int64, at time.Time) error {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Insert")
	defer span.End()

	query := `INSERT INTO likes (user_id, photo_id, created_at) VALUES ($1, $2, $3)`
	_, err := s.execer(ctx).ExecContext(ctx, query, userID, photoID, at)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		span.RecordError(err)
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID, photoID int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Delete")
	defer span.End()

	query := `DELETE FROM likes WHERE user_id = $1 AND photo_id = $2`
	res, err := s.execer(ctx).ExecContext(ctx, query, userID, photoID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("delete like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete like rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) Exists(ctx context.Context, userID, photoID int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Exists")
	defer span.End()

	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND photo_id = $2)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, photoID).Scan(&exists); err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CountForPhoto(ctx context.Context, photoID int64) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.CountForPhoto")
	defer span.End()

	query := `SELECT COUNT(*) FROM likes WHERE photo_id = $1`
	var count int64
	if err := s.db.QueryRowContext(ctx, query, photoID).Scan(&count); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) DeleteForPhoto(ctx context.Context, photoID int64) error {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.DeleteForPhoto")
	defer span.End()

	query := `DELETE FROM likes WHERE photo_id = $1`
	if _, err := s.execer(ctx).ExecContext(ctx, query, photoID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete likes for photo: %w", err)
	}
	return nil
}
