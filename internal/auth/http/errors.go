package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// writeError writes err as {success:false, error} using the status and
// message the service attached. Internal failures are logged with their
// cause; the client only sees the generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	se := service.AsError(err)
	if se.StatusCode >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("kind", string(se.Kind)),
			slog.Any("error", err),
		)
	}
	httpx.WriteJSON(w, se.StatusCode, authsdk.ErrorResponse{Success: false, Error: se.Message})
}

// writeBadBody reports an undecodable request body.
func writeBadBody(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
		Success: false,
		Error:   "Request body must be valid JSON",
	})
}

func writeGuardError(w http.ResponseWriter, status int, message string) {
	httpx.WriteJSON(w, status, authsdk.GuardErrorResponse{Message: message})
}

func toUser(p domain.Principal) authsdk.User {
	return authsdk.User{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		UserType:      string(p.UserType),
		Role:          string(p.Role),
		IsAdmin:       p.IsAdmin,
		EmailVerified: p.EmailVerified,
		VerifiedAt:    p.VerifiedAt,
		CreatedAt:     p.CreatedAt,
	}
}
