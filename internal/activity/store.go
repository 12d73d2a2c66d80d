package activity

import (
	"context"
	"time"
)

// Store persists activity entries. Implementations are append-only: there is
// no update or delete. Stores return sentinel errors; the service translates
// them into domain errors.
type Store interface {
	// Append writes one entry and returns the store-assigned ID.
	// IDs are strictly increasing in commit order.
	Append(ctx context.Context, entry Entry) (int64, error)

	// List returns entries matching the filter, most recent first
	// (created_at desc, id desc), bounded by limit/offset.
	List(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error)

	// Count returns the number of entries matching the same predicate List uses.
	Count(ctx context.Context, filter Filter) (int64, error)

	// CountByAction aggregates per-action counts over [since, until],
	// optionally restricted to one user actor. Results are sorted by count
	// descending, ties broken by action ascending.
	CountByAction(ctx context.Context, userID *int64, since, until time.Time) ([]ActionCount, error)
}
