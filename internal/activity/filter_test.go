package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func actionPtr(a Action) *Action    { return &a }
func statusPtr(s Status) *Status    { return &s }
func int64Ptr(v int64) *int64       { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestFilterMatches(t *testing.T) {
	at := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	entry := UserEntry(7, ActionUploadPhoto, "Uploaded photo", StatusSuccess)
	entry.CreatedAt = at

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter matches everything", filter: Filter{}, want: true},
		{name: "matching action", filter: Filter{Action: actionPtr(ActionUploadPhoto)}, want: true},
		{name: "different action", filter: Filter{Action: actionPtr(ActionLogin)}, want: false},
		{
			name:   "unknown action matches nothing",
			filter: Filter{Action: actionPtr(Action("password_change"))},
			want:   false,
		},
		{name: "matching status", filter: Filter{Status: statusPtr(StatusSuccess)}, want: true},
		{name: "different status", filter: Filter{Status: statusPtr(StatusFailed)}, want: false},
		{name: "matching user", filter: Filter{UserID: int64Ptr(7)}, want: true},
		{name: "different user", filter: Filter{UserID: int64Ptr(8)}, want: false},
		{
			name:   "date range containing entry",
			filter: Filter{DateFrom: timePtr(at.Add(-time.Hour)), DateTo: timePtr(at.Add(time.Hour))},
			want:   true,
		},
		{
			name:   "entry before range",
			filter: Filter{DateFrom: timePtr(at.Add(time.Minute))},
			want:   false,
		},
		{
			name:   "entry after range",
			filter: Filter{DateTo: timePtr(at.Add(-time.Minute))},
			want:   false,
		},
		{
			name:   "bounds are inclusive",
			filter: Filter{DateFrom: timePtr(at), DateTo: timePtr(at)},
			want:   true,
		},
		{
			name: "all conditions ANDed",
			filter: Filter{
				Action: actionPtr(ActionUploadPhoto),
				Status: statusPtr(StatusFailed), // mismatch
				UserID: int64Ptr(7),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(entry))
		})
	}
}

func TestFilterUserIDNeverMatchesSystemOrAdminEntries(t *testing.T) {
	filter := Filter{UserID: int64Ptr(7)}

	system := SystemEntry(ActionLogin, "Failed login", StatusFailed)
	assert.False(t, filter.Matches(system))

	admin := AdminEntry(7, ActionAdminLogin, "Admin logged in", StatusSuccess)
	assert.False(t, filter.Matches(admin), "admin ID must not satisfy a user filter")
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2026, 3, 15, 14, 30, 45, 123, time.UTC)

	start := DayStart(at)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), start)

	end := DayEnd(at)
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC), end)
}
