package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	txcontext "lumina/pkg/platform/tx"
)

// PostgresStore persists activity entries in the activity_log table.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgres creates a PostgreSQL-backed activity store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("lumina/internal/activity"),
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

// Append inserts one entry and returns the database-assigned ID. The id
// sequence makes write order observable to readers.
func (s *PostgresStore) Append(ctx context.Context, entry Entry) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Append")
	defer span.End()
	span.SetAttributes(attribute.String("activity.action", string(entry.Action)))

	query := `
		INSERT INTO activity_log (
			user_id, admin_id, action_type, description,
			target_type, target_id, status, ip_address, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := s.execer(ctx).QueryRowContext(ctx, query,
		nullInt64(entry.UserID),
		nullInt64(entry.AdminID),
		string(entry.Action),
		entry.Description,
		nullString(entry.TargetType),
		nullInt64(entry.TargetID),
		string(entry.Status),
		nullString(entry.IP),
		entry.CreatedAt,
	).Scan(&id)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("insert activity entry: %w", err)
	}
	return id, nil
}

// buildWhere compiles the filter predicate into a parameterized WHERE clause,
// ANDing only the present fields.
func buildWhere(filter Filter) (string, []any) {
	var clauses []string
	var args []any

	add := func(expr string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}

	if filter.Action != nil {
		add("action_type = $%d", string(*filter.Action))
	}
	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.UserID != nil {
		add("user_id = $%d", *filter.UserID)
	}
	if filter.DateFrom != nil {
		add("created_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("created_at <= $%d", *filter.DateTo)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List returns one page of matching entries, most recent first.
func (s *PostgresStore) List(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.List")
	defer span.End()

	where, args := buildWhere(filter)
	query := `
		SELECT id, user_id, admin_id, action_type, description,
		       target_type, target_id, status, ip_address, created_at
		FROM activity_log` + where + fmt.Sprintf(`
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query activity entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of entries the same predicate matches.
func (s *PostgresStore) Count(ctx context.Context, filter Filter) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.Count")
	defer span.End()

	where, args := buildWhere(filter)
	query := `SELECT COUNT(*) FROM activity_log` + where

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("count activity entries: %w", err)
	}
	return count, nil
}

// CountByAction aggregates per-action counts over [since, until].
func (s *PostgresStore) CountByAction(ctx context.Context, userID *int64, since, until time.Time) ([]ActionCount, error) {
	ctx, span := s.tracer.Start(ctx, "PostgresStore.CountByAction")
	defer span.End()

	query := `
		SELECT action_type, COUNT(*)
		FROM activity_log
		WHERE created_at >= $1 AND created_at <= $2
	`
	args := []any{since, until}
	if userID != nil {
		args = append(args, *userID)
		query += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	query += `
		GROUP BY action_type
		ORDER BY COUNT(*) DESC, action_type ASC
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("aggregate activity entries: %w", err)
	}
	defer rows.Close()

	var result []ActionCount
	for rows.Next() {
		var row ActionCount
		var action string
		if err := rows.Scan(&action, &row.Count); err != nil {
			return nil, fmt.Errorf("scan action count: %w", err)
		}
		row.Action = Action(action)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action counts: %w", err)
	}
	return result, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry

	for rows.Next() {
		var (
			e          Entry
			userID     sql.NullInt64
			adminID    sql.NullInt64
			action     string
			targetType sql.NullString
			targetID   sql.NullInt64
			status     string
			ip         sql.NullString
		)
		err := rows.Scan(
			&e.ID, &userID, &adminID, &action, &e.Description,
			&targetType, &targetID, &status, &ip, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}

		e.Action = Action(action)
		e.Status = Status(status)
		if userID.Valid {
			e.UserID = &userID.Int64
		}
		if adminID.Valid {
			e.AdminID = &adminID.Int64
		}
		if targetType.Valid {
			e.TargetType = targetType.String
		}
		if targetID.Valid {
			e.TargetID = &targetID.Int64
		}
		if ip.Valid {
			e.IP = ip.String
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity entries: %w", err)
	}
	return entries, nil
}

func nullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
