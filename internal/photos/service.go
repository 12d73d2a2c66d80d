package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lumina/internal/activity"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/sentinel"
	"lumina/pkg/platform/tx"
	"lumina/pkg/requestcontext"
)

// LikesCleaner removes the like relations attached to a photo. Satisfied by
// the likes store; declared here so photo deletion can cascade without the
// packages importing each other.
type LikesCleaner interface {
	DeleteForPhoto(ctx context.Context, photoID int64) error
}

// CommentsCleaner removes the comments attached to a photo. Satisfied by the
// comments store, declared here for the same reason as LikesCleaner.
type CommentsCleaner interface {
	DeleteForPhoto(ctx context.Context, photoID int64) error
}

// Service manages photo metadata and records every upload and deletion in the
// activity log. The recording hook runs after the primary effect and can
// never fail it.
type Service struct {
	photos   Store
	likes    LikesCleaner
	comments CommentsCleaner
	hook     *activity.Hook
	tx       tx.Runner
}

func NewService(photos Store, likes LikesCleaner, comments CommentsCleaner, hook *activity.Hook, runner tx.Runner) *Service {
	if runner == nil {
		runner = tx.NoopRunner{}
	}
	return &Service{photos: photos, likes: likes, comments: comments, hook: hook, tx: runner}
}

// Upload records photo metadata after the file itself has been stored
// externally.
func (s *Service) Upload(ctx context.Context, userID int64, title, filePath string) (Photo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionUploadPhoto,
			"Failed upload attempt - missing title", activity.StatusFailed))
		return Photo{}, dErrors.New(dErrors.CodeBadRequest, "title is required")
	}

	photo := Photo{
		UserID:    userID,
		Title:     title,
		FilePath:  filePath,
		CreatedAt: requestcontext.Now(ctx),
	}
	id, err := s.photos.Create(ctx, photo)
	if err != nil {
		s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionUploadPhoto,
			fmt.Sprintf("Failed upload of %q - store error", title), activity.StatusFailed))
		return Photo{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to save photo")
	}
	photo.ID = id

	s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionUploadPhoto,
		fmt.Sprintf("Uploaded photo %q", title),
		activity.StatusSuccess).WithTarget("photos", id))
	return photo, nil
}

// Get returns one photo.
func (s *Service) Get(ctx context.Context, photoID int64) (Photo, error) {
	photo, err := s.photos.Get(ctx, photoID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Photo{}, dErrors.New(dErrors.CodeNotFound, "photo not found")
		}
		return Photo{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load photo")
	}
	return photo, nil
}

// DeleteOwn deletes a photo owned by the calling user.
func (s *Service) DeleteOwn(ctx context.Context, userID, photoID int64) error {
	photo, err := s.Get(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return dErrors.New(dErrors.CodeForbidden, "photo belongs to another user")
	}

	if err := s.remove(ctx, photoID); err != nil {
		s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionDeletePhoto,
			fmt.Sprintf("Failed deletion of photo %q", photo.Title), activity.StatusFailed))
		return err
	}

	s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionDeletePhoto,
		fmt.Sprintf("Deleted photo %q", photo.Title),
		activity.StatusSuccess).WithTarget("photos", photoID))
	return nil
}

// AdminDelete deletes any photo as a moderation action.
func (s *Service) AdminDelete(ctx context.Context, adminID, photoID int64) error {
	photo, err := s.Get(ctx, photoID)
	if err != nil {
		return err
	}

	if err := s.remove(ctx, photoID); err != nil {
		s.hook.Record(ctx, activity.AdminEntry(adminID, activity.ActionAdminDeletePhoto,
			fmt.Sprintf("Failed moderation deletion of photo %q", photo.Title), activity.StatusFailed))
		return err
	}

	s.hook.Record(ctx, activity.AdminEntry(adminID, activity.ActionAdminDeletePhoto,
		fmt.Sprintf("Removed photo %q (owner user:%d)", photo.Title, photo.UserID),
		activity.StatusSuccess).WithTarget("photos", photoID))
	return nil
}

// remove deletes the photo row, its like relations, and its comments in one
// transaction.
func (s *Service) remove(ctx context.Context, photoID int64) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.likes.DeleteForPhoto(txCtx, photoID); err != nil {
			return err
		}
		if err := s.comments.DeleteForPhoto(txCtx, photoID); err != nil {
			return err
		}
		deleted, err := s.photos.Delete(txCtx, photoID)
		if err != nil {
			return err
		}
		if !deleted {
			return sentinel.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "photo not found")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to delete photo")
	}
	return nil
}
