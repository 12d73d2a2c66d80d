package users

import "time"

// User is an account that can own photos and like them. Only the fields the
// activity log and authentication need are kept; profile rendering is outside
// this service.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
