package comments

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	txcontext "lumina/pkg/platform/tx"
)

// PostgresStore persists comments in the comments table.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgres creates a PostgreSQL-backed comment store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("lumina/internal/comments"),
	}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Insert(ctx context.Context, comment Comment) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Insert")
	defer span.End()

	query := `
		INSERT INTO comments (photo_id, user_id, comment_text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		comment.PhotoID, comment.UserID, comment.Text, comment.CreatedAt,
	).Scan(&id)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) ListForPhoto(ctx context.Context, photoID int64, limit int) ([]Comment, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.ListForPhoto")
	defer span.End()

	query := `
		SELECT id, photo_id, user_id, comment_text, created_at
		FROM comments
		WHERE photo_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, photoID, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PhotoID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func (s *PostgresStore) CountForPhoto(ctx context.Context, photoID int64) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.CountForPhoto")
	defer span.End()

	query := `SELECT COUNT(*) FROM comments WHERE photo_id = $1`
	var count int64
	if err := s.db.QueryRowContext(ctx, query, photoID).Scan(&count); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) DeleteForPhoto(ctx context.Context, photoID int64) error {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.DeleteForPhoto")
	defer span.End()

	query := `DELETE FROM comments WHERE photo_id = $1`
	if _, err := s.execer(ctx).ExecContext(ctx, query, photoID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete comments for photo: %w", err)
	}
	return nil
}
