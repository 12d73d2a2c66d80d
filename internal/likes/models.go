package likes

import "time"

// Like is the current-snapshot relation between a user and a photo. At most
// one row exists per (user, photo) pair; the full history of flips lives in
// the activity log, not here.
type Like struct {
	ID        int64
	UserID    int64
	PhotoID   int64
	CreatedAt time.Time
}

// ToggleState is the resulting side of a toggle flip.
type ToggleState string

const (
	StateOn  ToggleState = "on"
	StateOff ToggleState = "off"
)

// ToggleResult reports the outcome of one toggle call: the side the relation
// landed on and the photo's recomputed like count.
type ToggleResult struct {
	State ToggleState `json:"state"`
	Count int64       `json:"count"`
}
