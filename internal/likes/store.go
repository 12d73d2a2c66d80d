package likes

import (
	"context"
	"time"
)

// Store persists like relations. The (user_id, photo_id) uniqueness guarantee
// lives here, at the storage layer - application logic relies on Insert
// returning sentinel.ErrConflict when it loses a race, never on having seen a
// consistent Exists result first.
type Store interface {
	// Insert creates the relation row. Returns sentinel.ErrConflict if the
	// pair already exists.
	Insert(ctx context.Context, userID, photoID int64, at time.Time) error

	// Delete removes the relation row if present, reporting whether a row
	// was actually deleted.
	Delete(ctx context.Context, userID, photoID int64) (bool, error)

	// Exists reports whether the relation currently holds.
	Exists(ctx context.Context, userID, photoID int64) (bool, error)

	// CountForPhoto recomputes the number of likes on a photo.
	CountForPhoto(ctx context.Context, photoID int64) (int64, error)

	// DeleteForPhoto removes every like on a photo. Used when the photo
	// itself is deleted; runs inside the photo deletion transaction.
	DeleteForPhoto(ctx context.Context, photoID int64) error
}
