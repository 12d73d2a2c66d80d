package photos

import (
	"context"
	"sync"

	"lumina/pkg/platform/sentinel"
)

// InMemoryStore keeps photo metadata in process memory for unit tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	rows   map[int64]Photo
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[int64]Photo), nextID: 1}
}

func (s *InMemoryStore) Create(_ context.Context, photo Photo) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo.ID = s.nextID
	s.nextID++
	s.rows[photo.ID] = photo
	return photo.ID, nil
}

func (s *InMemoryStore) Get(_ context.Context, photoID int64) (Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	photo, ok := s.rows[photoID]
	if !ok {
		return Photo{}, sentinel.ErrNotFound
	}
	return photo, nil
}

func (s *InMemoryStore) Delete(_ context.Context, photoID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[photoID]; !ok {
		return false, nil
	}
	delete(s.rows, photoID)
	return true, nil
}
