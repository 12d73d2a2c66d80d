package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"lumina/internal/token"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/httputil"
	"lumina/pkg/requestcontext"
)

// TokenValidator verifies bearer tokens. Satisfied by *token.Service.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

// RequireUser authenticates a user principal from the Authorization header and
// places the user ID into the request context. Handlers read it once and pass
// it explicitly into services.
func RequireUser(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return requirePrincipal(validator, logger, token.RoleUser)
}

// RequireAdmin authenticates an admin principal and places the admin ID into
// the request context.
func RequireAdmin(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return requirePrincipal(validator, logger, token.RoleAdmin)
}

func requirePrincipal(validator TokenValidator, logger *slog.Logger, want token.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			bearer := r.Header.Get("Authorization")
			if !strings.HasPrefix(bearer, "Bearer ") {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := validator.Validate(strings.TrimPrefix(bearer, "Bearer "))
			if err != nil {
				logger.WarnContext(ctx, "token rejected",
					"request_id", requestcontext.RequestID(ctx),
					"error", err.Error(),
				)
				httputil.WriteError(w, err)
				return
			}
			if claims.Role != want {
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "insufficient role"))
				return
			}

			actorID, err := claims.ActorID()
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			switch want {
			case token.RoleAdmin:
				ctx = requestcontext.WithAdminID(ctx, actorID)
			default:
				ctx = requestcontext.WithUserID(ctx, actorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
