package activity

import (
	"context"
	"errors"
	"time"

	activitymetrics "lumina/internal/activity/metrics"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/sentinel"
	"lumina/pkg/requestcontext"
)

// Service is the write and read surface of the activity log. Record appends
// exactly one entry per call; List, Count, and Stats never mutate state.
type Service struct {
	store   Store
	metrics *activitymetrics.Metrics
}

func NewService(store Store, metrics *activitymetrics.Metrics) *Service {
	return &Service{store: store, metrics: metrics}
}

// Record validates and appends one entry, returning the assigned ID. The
// timestamp always comes from the request-scoped clock, never from the
// caller; the client IP is attached from context when the caller left it
// empty. One attempt only - a failed write is reported, not retried.
//
// Record is deliberately not idempotent: two identical calls produce two
// distinct entries.
func (s *Service) Record(ctx context.Context, entry Entry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}

	entry.ID = 0
	entry.CreatedAt = requestcontext.Now(ctx)
	if entry.IP == "" {
		entry.IP = requestcontext.ClientIP(ctx)
	}

	id, err := s.store.Append(ctx, entry)
	if err != nil {
		s.metrics.IncrementWriteFailure()
		if errors.Is(err, sentinel.ErrUnavailable) {
			return 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "activity store unavailable")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record activity entry")
	}

	s.metrics.IncrementRecorded(string(entry.Action), string(entry.Status))
	return id, nil
}

// List returns one page of entries matching the filter, most recent first.
func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error) {
	start := time.Now()
	defer s.metrics.ObserveList(start)

	if limit < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "limit must not be negative")
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.store.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list activity entries")
	}
	return entries, nil
}

// Count returns how many entries match the filter predicate.
func (s *Service) Count(ctx context.Context, filter Filter) (int64, error) {
	count, err := s.store.Count(ctx, filter)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to count activity entries")
	}
	return count, nil
}

// Stats aggregates per-action counts over the trailing window ending at the
// request-scoped now, optionally restricted to one user. Results come back
// sorted by count descending so callers can truncate to a top-N directly.
func (s *Service) Stats(ctx context.Context, userID *int64, window time.Duration) ([]ActionCount, error) {
	if window <= 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "window must be positive")
	}

	until := requestcontext.Now(ctx)
	since := until.Add(-window)

	counts, err := s.store.CountByAction(ctx, userID, since, until)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to aggregate activity entries")
	}
	return counts, nil
}
