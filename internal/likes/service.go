package likes

import (
	"context"
	"errors"
	"fmt"

	"lumina/internal/activity"
	likesmetrics "lumina/internal/likes/metrics"
	"lumina/internal/photos"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/sentinel"
	"lumina/pkg/requestcontext"
)

// PhotoGetter is the slice of the photos module the toggle needs: target
// existence plus title/owner for the activity description.
type PhotoGetter interface {
	Get(ctx context.Context, photoID int64) (photos.Photo, error)
}

// Service implements the like/unlike toggle. Every flip emits an activity
// entry through the hook; the relation row is the current snapshot, the
// activity log the full history.
type Service struct {
	likes   Store
	photos  PhotoGetter
	hook    *activity.Hook
	metrics *likesmetrics.Metrics
}

func NewService(likes Store, photos PhotoGetter, hook *activity.Hook, metrics *likesmetrics.Metrics) *Service {
	return &Service{likes: likes, photos: photos, hook: hook, metrics: metrics}
}

// Toggle flips the like relation for (userID, photoID) and returns the side
// it landed on plus the photo's recomputed like count.
//
// The check-then-act sequence is safe under concurrent callers because the
// store's uniqueness constraint arbitrates: an insert that loses the race
// comes back as a conflict and is reconciled to a successful "on" outcome
// without emitting a second event - the winning request already recorded the
// flip.
func (s *Service) Toggle(ctx context.Context, userID, photoID int64) (ToggleResult, error) {
	photo, err := s.photos.Get(ctx, photoID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionLikePhoto,
				fmt.Sprintf("Failed like attempt - photo %d not found", photoID),
				activity.StatusFailed))
			return ToggleResult{}, dErrors.New(dErrors.CodeNotFound, "photo not found")
		}
		return ToggleResult{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load photo")
	}

	exists, err := s.likes.Exists(ctx, userID, photoID)
	if err != nil {
		return ToggleResult{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to check like")
	}

	var state ToggleState
	if exists {
		state, err = s.toggleOff(ctx, userID, photo)
	} else {
		state, err = s.toggleOn(ctx, userID, photo)
	}
	if err != nil {
		return ToggleResult{}, err
	}

	count, err := s.likes.CountForPhoto(ctx, photoID)
	if err != nil {
		return ToggleResult{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to count likes")
	}

	s.metrics.IncrementToggle(string(state))
	return ToggleResult{State: state, Count: count}, nil
}

func (s *Service) toggleOn(ctx context.Context, userID int64, photo photos.Photo) (ToggleState, error) {
	err := s.likes.Insert(ctx, userID, photo.ID, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Lost the race to a concurrent toggle from the same user. The
			// relation is on and the winner emitted the event; reconcile
			// silently.
			s.metrics.IncrementRaceResolved()
			return StateOn, nil
		}
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to insert like")
	}

	s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionLikePhoto,
		fmt.Sprintf("Liked photo %q", photo.Title),
		activity.StatusSuccess).WithTarget("photos", photo.ID))
	return StateOn, nil
}

func (s *Service) toggleOff(ctx context.Context, userID int64, photo photos.Photo) (ToggleState, error) {
	// A concurrent unlike may have removed the row already; either way the
	// relation is off, so the deleted flag only gates the event.
	deleted, err := s.likes.Delete(ctx, userID, photo.ID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to delete like")
	}
	if deleted {
		s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionUnlikePhoto,
			fmt.Sprintf("Unliked photo %q", photo.Title),
			activity.StatusSuccess).WithTarget("photos", photo.ID))
	}
	return StateOff, nil
}
