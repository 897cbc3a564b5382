package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

type VerifyEmailHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP redeems an email verification link.
//
//	@Summary		Verify email
//	@Tags			Auth
//	@Produce		json
//	@Param			token	path		string	true	"Verification token"
//	@Success		200		{object}	authsdk.MessageResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Invalid or expired verification token"
//	@Router			/auth/verify-email/{token} [get].
func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.AuthService.VerifyEmail(r.Context(), r.PathValue("token"))
	if err != nil {
		se := service.AsError(err)
		httpx.WriteJSON(w, se.StatusCode, map[string]string{"error": se.Message})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}
