package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"lumina/internal/activity"
	"lumina/internal/photos"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/sentinel"
	"lumina/pkg/requestcontext"
)

const defaultListLimit = 5

// PhotoGetter is the slice of the photos module commenting needs: target
// existence plus title for the activity description.
type PhotoGetter interface {
	Get(ctx context.Context, photoID int64) (photos.Photo, error)
}

// Service manages photo comments. Every posted comment is recorded in the
// activity log through the hook.
type Service struct {
	comments Store
	photos   PhotoGetter
	hook     *activity.Hook
}

func NewService(comments Store, photos PhotoGetter, hook *activity.Hook) *Service {
	return &Service{comments: comments, photos: photos, hook: hook}
}

// Add posts a comment on a photo.
func (s *Service) Add(ctx context.Context, userID, photoID int64, text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > maxTextLength {
		s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionComment,
			fmt.Sprintf("Failed comment attempt on photo %d - empty or too long", photoID),
			activity.StatusFailed))
		return Comment{}, dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("comment text must be 1 to %d characters", maxTextLength))
	}

	photo, err := s.photos.Get(ctx, photoID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionComment,
				fmt.Sprintf("Failed comment attempt - photo %d not found", photoID),
				activity.StatusFailed))
			return Comment{}, dErrors.New(dErrors.CodeNotFound, "photo not found")
		}
		return Comment{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load photo")
	}

	comment := Comment{
		PhotoID:   photo.ID,
		UserID:    userID,
		Text:      text,
		CreatedAt: requestcontext.Now(ctx),
	}
	id, err := s.comments.Insert(ctx, comment)
	if err != nil {
		return Comment{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to save comment")
	}
	comment.ID = id

	s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionComment,
		fmt.Sprintf("Commented on photo %q", photo.Title),
		activity.StatusSuccess).WithTarget("photos", photo.ID))
	return comment, nil
}

// ListForPhoto returns the newest comments on a photo plus the total count.
// A non-positive limit falls back to the default.
func (s *Service) ListForPhoto(ctx context.Context, photoID int64, limit int) ([]Comment, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	comments, err := s.comments.ListForPhoto(ctx, photoID, limit)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list comments")
	}
	total, err := s.comments.CountForPhoto(ctx, photoID)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to count comments")
	}
	return comments, total, nil
}
