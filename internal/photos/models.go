package photos

import "time"

// Photo is the metadata record of an uploaded photo. File storage and
// validation live outside this service; only the bookkeeping that the
// activity log and the like toggle depend on is kept here.
type Photo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	FilePath  string    `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}
