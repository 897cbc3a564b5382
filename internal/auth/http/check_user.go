package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const msgServerError = "Server Error"

type CheckUserHandler struct {
	AuthService *service.AuthService
}

// HandlePhone reports whether a phone number is taken.
//
//	@Summary		Check phone
//	@Tags			Lookup
//	@Produce		json
//	@Param			phone	path		string	true	"Phone number"
//	@Success		200		{object}	authsdk.CheckUserResponse
//	@Failure		500		{object}	authsdk.GuardErrorResponse
//	@Router			/auth/check-user/{phone} [get].
func (h *CheckUserHandler) HandlePhone(w http.ResponseWriter, r *http.Request) {
	res, err := h.AuthService.CheckUserExists(r.Context(), r.PathValue("phone"))
	if err != nil {
		slogx.FromContext(r.Context()).Error("check user failed", slog.Any("error", err))
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.GuardErrorResponse{Message: msgServerError})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleEmail looks an account up by email.
//
//	@Summary		Check email
//	@Tags			Lookup
//	@Produce		json
//	@Param			email	path		string	true	"Email address"
//	@Success		200		{object}	authsdk.CheckUserEmailResponse
//	@Failure		500		{object}	authsdk.GuardErrorResponse
//	@Router			/auth/check-user-email/{email} [get].
func (h *CheckUserHandler) HandleEmail(w http.ResponseWriter, r *http.Request) {
	res, err := h.AuthService.CheckUserByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		slogx.FromContext(r.Context()).Error("check user email failed", slog.Any("error", err))
		failed := false
		httpx.WriteJSON(w, http.StatusInternalServerError, authsdk.GuardErrorResponse{
			Success: &failed,
			Message: msgServerError,
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    res,
	})
}
