package comments

import "context"

// Store persists photo comments. ListForPhoto returns the newest comments
// first.
type Store interface {
	Insert(ctx context.Context, comment Comment) (int64, error)
	ListForPhoto(ctx context.Context, photoID int64, limit int) ([]Comment, error)
	CountForPhoto(ctx context.Context, photoID int64) (int64, error)
	DeleteForPhoto(ctx context.Context, photoID int64) error
}
