package admins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lumina/internal/activity"
	"lumina/internal/token"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/sentinel"
	"lumina/pkg/requestcontext"
)

// Admin sessions are shorter-lived than user sessions.
const accessTokenTTL = 8 * time.Hour

// Service handles admin credential checks and token issuance. Every login
// outcome is recorded in the activity log through the hook.
type Service struct {
	admins Store
	tokens *token.Service
	hook   *activity.Hook
}

func NewService(admins Store, tokens *token.Service, hook *activity.Hook) *Service {
	return &Service{admins: admins, tokens: tokens, hook: hook}
}

// Login verifies admin credentials and issues an admin-role access token.
func (s *Service) Login(ctx context.Context, username, password string) (Admin, string, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.hook.Record(ctx, activity.SystemEntry(activity.ActionAdminLogin,
				fmt.Sprintf("Failed admin login - unknown username %q", username),
				activity.StatusFailed))
			return Admin{}, "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return Admin{}, "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load admin")
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		s.hook.Record(ctx, activity.AdminEntry(admin.ID, activity.ActionAdminLogin,
			"Failed admin login - wrong password", activity.StatusFailed))
		return Admin{}, "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	accessToken, err := s.tokens.Generate(admin.ID, token.RoleAdmin, accessTokenTTL)
	if err != nil {
		return Admin{}, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.hook.Record(ctx, activity.AdminEntry(admin.ID, activity.ActionAdminLogin,
		fmt.Sprintf("Admin %s logged in (%s)", admin.Username, clientNote(ctx)),
		activity.StatusSuccess))
	return admin, accessToken, nil
}

func clientNote(ctx context.Context) string {
	ua := requestcontext.UserAgent(ctx)
	if ua == "" {
		return "unknown client"
	}
	return ua
}
