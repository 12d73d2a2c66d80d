package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/internal/token"
	"lumina/pkg/requestcontext"
)

func newAuthTestStack(t *testing.T) (*token.Service, *slog.Logger) {
	t.Helper()
	return token.NewService("test-key", "lumina-test"), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRequireUserSetsPrincipal(t *testing.T) {
	tokens, logger := newAuthTestStack(t)

	var gotUserID int64
	var hadUser bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, hadUser = requestcontext.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	signed, err := tokens.Generate(7, token.RoleUser, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	RequireUser(tokens, logger)(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hadUser)
	assert.Equal(t, int64(7), gotUserID)
}

func TestRequireUserRejectsMissingToken(t *testing.T) {
	tokens, logger := newAuthTestStack(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequireUser(tokens, logger)(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserRejectsAdminToken(t *testing.T) {
	tokens, logger := newAuthTestStack(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for the wrong role")
	})

	signed, err := tokens.Generate(2, token.RoleAdmin, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	RequireUser(tokens, logger)(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminSetsPrincipal(t *testing.T) {
	tokens, logger := newAuthTestStack(t)

	var gotAdminID int64
	var hadAdmin bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdminID, hadAdmin = requestcontext.AdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	signed, err := tokens.Generate(2, token.RoleAdmin, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	RequireAdmin(tokens, logger)(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, hadAdmin)
	assert.Equal(t, int64(2), gotAdminID)
}

func TestRequireAdminRejectsExpiredToken(t *testing.T) {
	tokens, logger := newAuthTestStack(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	})

	signed, err := tokens.Generate(2, token.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	RequireAdmin(tokens, logger)(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
