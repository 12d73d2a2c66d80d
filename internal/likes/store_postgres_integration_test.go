//go:build integration

package likes_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"lumina/internal/likes"
	"lumina/pkg/platform/sentinel"
	"lumina/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *likes.PostgresStore
	ctx      context.Context
	now      time.Time

	userID  int64
	photoID int64
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = likes.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) SetupTest() {
	// Truncate in dependency order.
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "likes", "photos", "users"))
	s.userID = s.seedUser("alice")
	s.photoID = s.seedPhoto(s.userID, "Sunset")
}

func (s *PostgresStoreSuite) seedUser(username string) int64 {
	var id int64
	err := s.postgres.DB.QueryRowContext(s.ctx, `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, 'x', $3)
		RETURNING id
	`, username, username+"@example.com", s.now).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *PostgresStoreSuite) seedPhoto(userID int64, title string) int64 {
	var id int64
	err := s.postgres.DB.QueryRowContext(s.ctx, `
		INSERT INTO photos (user_id, title, file_path, created_at)
		VALUES ($1, $2, '/uploads/x.jpg', $3)
		RETURNING id
	`, userID, title, s.now).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *PostgresStoreSuite) TestInsertDeleteRoundTrip() {
	s.Require().NoError(s.store.Insert(s.ctx, s.userID, s.photoID, s.now))

	exists, err := s.store.Exists(s.ctx, s.userID, s.photoID)
	s.Require().NoError(err)
	s.True(exists)

	count, err := s.store.CountForPhoto(s.ctx, s.photoID)
	s.Require().NoError(err)
	s.Equal(int64(1), count)

	deleted, err := s.store.Delete(s.ctx, s.userID, s.photoID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.store.Delete(s.ctx, s.userID, s.photoID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *PostgresStoreSuite) TestInsertDuplicateMapsConflict() {
	s.Require().NoError(s.store.Insert(s.ctx, s.userID, s.photoID, s.now))

	err := s.store.Insert(s.ctx, s.userID, s.photoID, s.now)
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

// TestConcurrentInsertSamePair drives the unique index with concurrent inserts
// for the same pair: exactly one row lands, every loser sees the conflict
// sentinel.
func (s *PostgresStoreSuite) TestConcurrentInsertSamePair() {
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Insert(s.ctx, s.userID, s.photoID, s.now)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one insert should win")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get the conflict sentinel")

	count, err := s.store.CountForPhoto(s.ctx, s.photoID)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *PostgresStoreSuite) TestDeleteForPhotoRemovesAllRelations() {
	other := s.seedUser("bob")
	secondPhoto := s.seedPhoto(s.userID, "Dunes")

	s.Require().NoError(s.store.Insert(s.ctx, s.userID, s.photoID, s.now))
	s.Require().NoError(s.store.Insert(s.ctx, other, s.photoID, s.now))
	s.Require().NoError(s.store.Insert(s.ctx, s.userID, secondPhoto, s.now))

	s.Require().NoError(s.store.DeleteForPhoto(s.ctx, s.photoID))

	count, err := s.store.CountForPhoto(s.ctx, s.photoID)
	s.Require().NoError(err)
	s.Zero(count)

	count, err = s.store.CountForPhoto(s.ctx, secondPhoto)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}
