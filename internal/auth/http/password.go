package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

type PasswordHandler struct {
	AuthService *service.AuthService
}

// HandleForgot sends a reset link.
//
//	@Summary		Request a password reset
//	@Description	Always answers with the same message whether or not an account matched.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ForgotPasswordRequest	true	"Login key of the account"
//	@Success		200		{object}	authsdk.MessageResponse
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Router			/auth/forgot-password [post].
func (h *PasswordHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ForgotPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	res, err := h.AuthService.ForgotPassword(r.Context(), service.ForgotPasswordInput{
		UserType: domain.UserType(req.UserType),
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleReset redeems a reset token.
//
//	@Summary		Reset password
//	@Description	Accepts {token, password} or encryptedData holding both.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResetPasswordRequest	true	"Reset token and new password"
//	@Success		200		{object}	authsdk.MessageResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Invalid or expired reset token, or invalid encrypted data"
//	@Router			/auth/reset-password [post].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	res, err := h.AuthService.ResetPassword(r.Context(), service.ResetPasswordInput{
		Token:         req.Token,
		Password:      req.Password,
		EncryptedData: req.EncryptedData,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}
