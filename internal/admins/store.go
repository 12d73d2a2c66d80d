package admins

import "context"

// Store persists admin accounts. Create returns sentinel.ErrConflict when the
// username is already taken; lookups return sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, admin Admin) (int64, error)
	FindByUsername(ctx context.Context, username string) (Admin, error)
}
