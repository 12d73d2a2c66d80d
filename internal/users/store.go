package users

import "context"

// Store persists user accounts. Create returns sentinel.ErrConflict when the
// username or email is already taken; lookups return sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, user User) (int64, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, userID int64) (User, error)
}
