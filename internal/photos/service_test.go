package photos_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"lumina/internal/activity"
	"lumina/internal/comments"
	"lumina/internal/likes"
	"lumina/internal/photos"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/requestcontext"
)

type PhotoServiceSuite struct {
	suite.Suite
	photos   *photos.InMemoryStore
	likes    *likes.InMemoryStore
	comments *comments.InMemoryStore
	activity *activity.InMemoryStore
	service  *photos.Service
	ctx      context.Context
	now      time.Time
}

func TestPhotoServiceSuite(t *testing.T) {
	suite.Run(t, new(PhotoServiceSuite))
}

func (s *PhotoServiceSuite) SetupTest() {
	s.photos = photos.NewInMemoryStore()
	s.likes = likes.NewInMemoryStore()
	s.comments = comments.NewInMemoryStore()
	s.activity = activity.NewInMemoryStore()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	hook := activity.NewHook(activity.NewService(s.activity, nil), logger)
	s.service = photos.NewService(s.photos, s.likes, s.comments, hook, nil)

	s.now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *PhotoServiceSuite) lastEntry() activity.Entry {
	entries, err := s.activity.List(s.ctx, activity.Filter{}, 1, 0)
	s.Require().NoError(err)
	s.Require().NotEmpty(entries)
	return entries[0]
}

func (s *PhotoServiceSuite) TestUploadRecordsSuccess() {
	photo, err := s.service.Upload(s.ctx, 7, "Sunset", "/uploads/sunset.jpg")
	s.Require().NoError(err)
	s.Positive(photo.ID)
	s.Equal(s.now, photo.CreatedAt)

	entry := s.lastEntry()
	s.Equal(activity.ActionUploadPhoto, entry.Action)
	s.Equal(activity.StatusSuccess, entry.Status)
	s.Equal("user:7", entry.ActorLabel())
	s.Equal("photos", entry.TargetType)
	s.Require().NotNil(entry.TargetID)
	s.Equal(photo.ID, *entry.TargetID)
}

func (s *PhotoServiceSuite) TestUploadRejectsBlankTitleButRecordsAttempt() {
	_, err := s.service.Upload(s.ctx, 7, "   ", "/uploads/x.jpg")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	entry := s.lastEntry()
	s.Equal(activity.ActionUploadPhoto, entry.Action)
	s.Equal(activity.StatusFailed, entry.Status)
}

func (s *PhotoServiceSuite) TestDeleteOwnRequiresOwnership() {
	photo, err := s.service.Upload(s.ctx, 7, "Sunset", "/uploads/sunset.jpg")
	s.Require().NoError(err)

	err = s.service.DeleteOwn(s.ctx, 8, photo.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	// The photo is still there.
	_, err = s.service.Get(s.ctx, photo.ID)
	s.Require().NoError(err)
}

func (s *PhotoServiceSuite) TestDeleteOwnCascadesLikesAndComments() {
	photo, err := s.service.Upload(s.ctx, 7, "Sunset", "/uploads/sunset.jpg")
	s.Require().NoError(err)
	s.Require().NoError(s.likes.Insert(s.ctx, 1, photo.ID, s.now))
	s.Require().NoError(s.likes.Insert(s.ctx, 2, photo.ID, s.now))
	_, err = s.comments.Insert(s.ctx, comments.Comment{PhotoID: photo.ID, UserID: 1, Text: "Nice", CreatedAt: s.now})
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteOwn(s.ctx, 7, photo.ID))

	_, err = s.service.Get(s.ctx, photo.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	likeCount, err := s.likes.CountForPhoto(s.ctx, photo.ID)
	s.Require().NoError(err)
	s.Zero(likeCount, "like relations must not outlive the photo")

	commentCount, err := s.comments.CountForPhoto(s.ctx, photo.ID)
	s.Require().NoError(err)
	s.Zero(commentCount, "comments must not outlive the photo")

	entry := s.lastEntry()
	s.Equal(activity.ActionDeletePhoto, entry.Action)
	s.Equal(activity.StatusSuccess, entry.Status)
}

func (s *PhotoServiceSuite) TestDeleteOwnUnknownPhoto() {
	err := s.service.DeleteOwn(s.ctx, 7, 999)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *PhotoServiceSuite) TestAdminDeleteRecordsModeration() {
	photo, err := s.service.Upload(s.ctx, 7, "Sunset", "/uploads/sunset.jpg")
	s.Require().NoError(err)

	s.Require().NoError(s.service.AdminDelete(s.ctx, 2, photo.ID))

	entry := s.lastEntry()
	s.Equal(activity.ActionAdminDeletePhoto, entry.Action)
	s.Equal("admin:2", entry.ActorLabel())
	s.Require().NotNil(entry.TargetID)
	s.Equal(photo.ID, *entry.TargetID)
}
