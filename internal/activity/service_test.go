package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/sentinel"
	"lumina/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	service *Service
	ctx     context.Context
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.service = NewService(s.store, nil)
	s.now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) TestRecordStampsEntryFromContext() {
	ctx := requestcontext.WithClientMetadata(s.ctx, "203.0.113.9", "Firefox 140 (Linux)")

	id, err := s.service.Record(ctx, UserEntry(7, ActionLogin, "User logged in", StatusSuccess))
	s.Require().NoError(err)
	s.Positive(id)

	entries, err := s.store.List(ctx, Filter{}, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(s.now, entries[0].CreatedAt)
	s.Equal("203.0.113.9", entries[0].IP)
}

func (s *ServiceSuite) TestRecordKeepsExplicitIP() {
	ctx := requestcontext.WithClientMetadata(s.ctx, "203.0.113.9", "")

	entry := UserEntry(7, ActionLogin, "User logged in", StatusSuccess)
	entry.IP = "198.51.100.4"
	_, err := s.service.Record(ctx, entry)
	s.Require().NoError(err)

	entries, err := s.store.List(ctx, Filter{}, 10, 0)
	s.Require().NoError(err)
	s.Equal("198.51.100.4", entries[0].IP)
}

func (s *ServiceSuite) TestRecordIgnoresCallerAssignedID() {
	entry := UserEntry(7, ActionLogin, "User logged in", StatusSuccess)
	entry.ID = 999

	id, err := s.service.Record(s.ctx, entry)
	s.Require().NoError(err)
	s.Equal(int64(1), id, "store assigns the ID, caller's value is discarded")
}

func (s *ServiceSuite) TestRecordIsNotIdempotent() {
	entry := UserEntry(7, ActionLogin, "User logged in", StatusSuccess)

	first, err := s.service.Record(s.ctx, entry)
	s.Require().NoError(err)
	second, err := s.service.Record(s.ctx, entry)
	s.Require().NoError(err)

	s.NotEqual(first, second)
	count, err := s.store.Count(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func (s *ServiceSuite) TestRecordRejectsInvalidEntries() {
	_, err := s.service.Record(s.ctx, UserEntry(7, Action("bogus"), "desc", StatusSuccess))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	count, err := s.store.Count(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Zero(count, "rejected entries must not reach the store")
}

func (s *ServiceSuite) TestRecordMapsStoreErrors() {
	s.Run("unavailable store", func() {
		svc := NewService(failingStore{err: sentinel.ErrUnavailable}, nil)
		_, err := svc.Record(s.ctx, UserEntry(7, ActionLogin, "desc", StatusSuccess))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("unexpected store error", func() {
		svc := NewService(failingStore{err: errors.New("disk on fire")}, nil)
		_, err := svc.Record(s.ctx, UserEntry(7, ActionLogin, "desc", StatusSuccess))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestListValidatesArguments() {
	_, err := s.service.List(s.ctx, Filter{}, -1, 0)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	// Negative offsets are clamped, not rejected.
	entries, err := s.service.List(s.ctx, Filter{}, 10, -5)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestStatsWindow() {
	mustRecord := func(e Entry, at time.Time) {
		ctx := requestcontext.WithTime(context.Background(), at)
		_, err := s.service.Record(ctx, e)
		s.Require().NoError(err)
	}

	mustRecord(UserEntry(1, ActionLogin, "in window", StatusSuccess), s.now.Add(-time.Hour))
	mustRecord(UserEntry(1, ActionLogin, "in window", StatusSuccess), s.now.Add(-6*24*time.Hour))
	mustRecord(UserEntry(1, ActionUploadPhoto, "in window", StatusSuccess), s.now.Add(-time.Minute))
	mustRecord(UserEntry(1, ActionLogin, "too old", StatusSuccess), s.now.Add(-8*24*time.Hour))

	counts, err := s.service.Stats(s.ctx, nil, 7*24*time.Hour)
	s.Require().NoError(err)
	s.Require().Len(counts, 2)
	s.Equal(ActionLogin, counts[0].Action)
	s.Equal(int64(2), counts[0].Count)
	s.Equal(ActionUploadPhoto, counts[1].Action)
	s.Equal(int64(1), counts[1].Count)
}

func (s *ServiceSuite) TestStatsRejectsNonPositiveWindow() {
	_, err := s.service.Stats(s.ctx, nil, 0)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

// failingStore rejects every operation with a fixed error.
type failingStore struct {
	err error
}

func (f failingStore) Append(context.Context, Entry) (int64, error) { return 0, f.err }
func (f failingStore) List(context.Context, Filter, int, int) ([]Entry, error) {
	return nil, f.err
}
func (f failingStore) Count(context.Context, Filter) (int64, error) { return 0, f.err }
func (f failingStore) CountByAction(context.Context, *int64, time.Time, time.Time) ([]ActionCount, error) {
	return nil, f.err
}
