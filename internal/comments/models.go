package comments

import "time"

// maxTextLength matches the input limit the upload form enforces client-side.
const maxTextLength = 500

// Comment is one user comment on a photo.
type Comment struct {
	ID        int64     `json:"id"`
	PhotoID   int64     `json:"photo_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
