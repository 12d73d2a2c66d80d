package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lumina/internal/activity"
	"lumina/internal/token"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/sentinel"
	"lumina/pkg/requestcontext"
)

const accessTokenTTL = 24 * time.Hour

// Service handles account registration and credential checks. Every outcome,
// success or failure, is recorded in the activity log through the hook; the
// recording never changes the outcome itself.
type Service struct {
	users  Store
	tokens *token.Service
	hook   *activity.Hook
}

func NewService(users Store, tokens *token.Service, hook *activity.Hook) *Service {
	return &Service{users: users, tokens: tokens, hook: hook}
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || len(password) < 8 {
		return User{}, dErrors.New(dErrors.CodeBadRequest,
			"username, email, and a password of at least 8 characters are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx),
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.hook.Record(ctx, activity.SystemEntry(activity.ActionRegister,
				fmt.Sprintf("Failed registration - username %q or email already taken", username),
				activity.StatusFailed))
			return User{}, dErrors.New(dErrors.CodeConflict, "username or email already taken")
		}
		return User{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to create user")
	}
	user.ID = id

	s.hook.Record(ctx, activity.UserEntry(id, activity.ActionRegister,
		fmt.Sprintf("New user registered: %s (%s)", username, clientNote(ctx)),
		activity.StatusSuccess))
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.hook.Record(ctx, activity.SystemEntry(activity.ActionLogin,
				fmt.Sprintf("Failed login - unknown username %q", username),
				activity.StatusFailed))
			return User{}, "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return User{}, "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.hook.Record(ctx, activity.UserEntry(user.ID, activity.ActionLogin,
			"Failed login - wrong password", activity.StatusFailed))
		return User{}, "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	accessToken, err := s.tokens.Generate(user.ID, token.RoleUser, accessTokenTTL)
	if err != nil {
		return User{}, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.hook.Record(ctx, activity.UserEntry(user.ID, activity.ActionLogin,
		fmt.Sprintf("User %s logged in (%s)", user.Username, clientNote(ctx)),
		activity.StatusSuccess))
	return user, accessToken, nil
}

// Logout records the end of a session. Tokens are stateless, so this is pure
// bookkeeping for the activity trail.
func (s *Service) Logout(ctx context.Context, userID int64) {
	s.hook.Record(ctx, activity.UserEntry(userID, activity.ActionLogout,
		"User logged out", activity.StatusSuccess))
}

// clientNote renders the client metadata captured by middleware for use in
// activity descriptions.
func clientNote(ctx context.Context) string {
	ua := requestcontext.UserAgent(ctx)
	if ua == "" {
		return "unknown client"
	}
	return ua
}
