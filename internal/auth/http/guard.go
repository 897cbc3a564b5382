package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	msgNoToken      = "Not authorized, no token"
	msgTokenFailed  = "Not authorized, token failed"
	msgAccessDenied = "Forbidden: Access denied"
	msgAdminOnly    = "Admin access only"
)

// SessionVerifier resolves a session token to its subject.
// *service.TokenService implements it.
type SessionVerifier interface {
	Verify(token string) (string, error)
}

// PrincipalLoader loads the principal for a user id.
// *service.AuthService implements it.
type PrincipalLoader interface {
	GetPrincipal(ctx context.Context, userID string) (domain.Principal, error)
}

// Protect requires a valid "Bearer <token>" session and attaches the
// caller's principal to the request context.
func Protect(tokens SessionVerifier, users PrincipalLoader) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := slogx.FromContext(r.Context())

			token, ok := httpx.BearerToken(r)
			if !ok {
				writeGuardError(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				l.Info("protect: token rejected", slog.Any("error", err))
				writeGuardError(w, http.StatusUnauthorized, msgTokenFailed)
				return
			}

			p, err := users.GetPrincipal(r.Context(), userID)
			if err != nil {
				l.Warn("protect: principal lookup failed", slog.String("user_id", userID), slog.Any("error", err))
				writeGuardError(w, http.StatusUnauthorized, msgTokenFailed)
				return
			}

			ctx := domain.WithPrincipal(r.Context(), p)
			ctx = httpx.WithUserID(ctx, p.ID)
			ctx = slogx.With(ctx, slog.String("user_id", p.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthorizeRoles admits principals whose role is in allowed. It must run
// after Protect.
func AuthorizeRoles(allowed domain.RoleSet) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := domain.PrincipalFromContext(r.Context())
			if !ok || !domain.RoleAllowed(p, allowed) {
				writeGuardError(w, http.StatusForbidden, msgAccessDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly admits principals carrying the admin marker. It must run after
// Protect.
func AdminOnly() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := domain.PrincipalFromContext(r.Context())
			if !ok || !domain.HasAdminMarker(p) {
				writeGuardError(w, http.StatusForbidden, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
