package activity

import (
	"fmt"
	"time"

	dErrors "lumina/pkg/domain-errors"
)

// Action identifies what happened. The set is closed: entries carrying an
// unknown action are rejected at the writer, and filters on unknown values
// simply match nothing.
type Action string

const (
	ActionLogin            Action = "login"
	ActionLogout           Action = "logout"
	ActionRegister         Action = "register"
	ActionUploadPhoto      Action = "upload_photo"
	ActionDeletePhoto      Action = "delete_photo"
	ActionLikePhoto        Action = "like_photo"
	ActionUnlikePhoto      Action = "unlike_photo"
	ActionComment          Action = "comment"
	ActionAdminLogin       Action = "admin_login"
	ActionAdminDeletePhoto Action = "admin_delete_photo"
)

var knownActions = map[Action]struct{}{
	ActionLogin:            {},
	ActionLogout:           {},
	ActionRegister:         {},
	ActionUploadPhoto:      {},
	ActionDeletePhoto:      {},
	ActionLikePhoto:        {},
	ActionUnlikePhoto:      {},
	ActionComment:          {},
	ActionAdminLogin:       {},
	ActionAdminDeletePhoto: {},
}

// Valid reports enum membership.
func (a Action) Valid() bool {
	_, ok := knownActions[a]
	return ok
}

// Status is the outcome of the recorded action.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusWarning Status = "warning"
)

// Valid reports enum membership.
func (s Status) Valid() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusWarning
}

// Entry is one immutable activity record. The store assigns ID; the recorder
// assigns CreatedAt. Nothing updates or deletes an Entry once written.
type Entry struct {
	ID          int64
	UserID      *int64
	AdminID     *int64
	Action      Action
	Description string
	TargetType  string
	TargetID    *int64
	Status      Status
	IP          string
	CreatedAt   time.Time
}

// Validate enforces the record invariants: known action and status, at most
// one actor kind, and a target that is either fully present or fully absent.
func (e Entry) Validate() error {
	if !e.Action.Valid() {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unknown action %q", e.Action))
	}
	if !e.Status.Valid() {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unknown status %q", e.Status))
	}
	if e.UserID != nil && e.AdminID != nil {
		return dErrors.New(dErrors.CodeBadRequest, "entry cannot carry both a user and an admin actor")
	}
	if (e.TargetType == "") != (e.TargetID == nil) {
		return dErrors.New(dErrors.CodeBadRequest, "target type and target id must be set together")
	}
	return nil
}

// ActorLabel renders the actor for display: "user:7", "admin:2", or "system".
func (e Entry) ActorLabel() string {
	switch {
	case e.UserID != nil:
		return fmt.Sprintf("user:%d", *e.UserID)
	case e.AdminID != nil:
		return fmt.Sprintf("admin:%d", *e.AdminID)
	default:
		return "system"
	}
}

// UserEntry builds an entry attributed to a user.
func UserEntry(userID int64, action Action, description string, status Status) Entry {
	return Entry{UserID: &userID, Action: action, Description: description, Status: status}
}

// AdminEntry builds an entry attributed to an admin.
func AdminEntry(adminID int64, action Action, description string, status Status) Entry {
	return Entry{AdminID: &adminID, Action: action, Description: description, Status: status}
}

// SystemEntry builds an entry with no actor.
func SystemEntry(action Action, description string, status Status) Entry {
	return Entry{Action: action, Description: description, Status: status}
}

// WithTarget attaches the affected resource to an entry.
func (e Entry) WithTarget(targetType string, targetID int64) Entry {
	e.TargetType = targetType
	e.TargetID = &targetID
	return e
}

// ActionCount is one row of an aggregation result.
type ActionCount struct {
	Action Action `json:"action"`
	Count  int64  `json:"count"`
}
