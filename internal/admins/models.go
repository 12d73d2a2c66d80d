package admins

import "time"

// Admin is a moderation account. Admin accounts are provisioned out of band;
// there is no self-service registration for them.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
