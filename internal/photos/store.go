package photos

import "context"

// Store persists photo metadata. Implementations return sentinel.ErrNotFound
// for missing photos.
type Store interface {
	Create(ctx context.Context, photo Photo) (int64, error)
	Get(ctx context.Context, photoID int64) (Photo, error)
	Delete(ctx context.Context, photoID int64) (bool, error)
}
