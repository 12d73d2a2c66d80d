package activity

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryStore keeps entries in process memory. It backs unit tests and
// mirrors the Postgres store's ordering and predicate semantics exactly.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

func (s *InMemoryStore) Append(_ context.Context, entry Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, entry)
	return entry.ID, nil
}

func (s *InMemoryStore) List(_ context.Context, filter Filter, limit, offset int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return []Entry{}, nil
	}
	matched = matched[offset:]
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return append([]Entry{}, matched...), nil
}

func (s *InMemoryStore) Count(_ context.Context, filter Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, e := range s.entries {
		if filter.Matches(e) {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) CountByAction(_ context.Context, userID *int64, since, until time.Time) ([]ActionCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Action]int64)
	for _, e := range s.entries {
		if e.CreatedAt.Before(since) || e.CreatedAt.After(until) {
			continue
		}
		if userID != nil && (e.UserID == nil || *e.UserID != *userID) {
			continue
		}
		counts[e.Action]++
	}

	result := make([]ActionCount, 0, len(counts))
	for action, count := range counts {
		result = append(result, ActionCount{Action: action, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Action < result[j].Action
	})
	return result, nil
}
