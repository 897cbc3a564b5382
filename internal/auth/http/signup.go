package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

type SignupHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP registers a new customer account.
//
//	@Summary		Register an account
//	@Description	Creates an Individual (phone) or Corporate (email) account. Admin accounts cannot self-register. The body may instead carry encryptedData, an envelope holding the same fields.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignupRequest	true	"Account details"
//	@Success		201		{object}	authsdk.SignupResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Validation failed, user exists, or invalid encrypted data"
//	@Failure		403		{object}	authsdk.ErrorResponse	"User type may not self-register"
//	@Failure		500		{object}	authsdk.ErrorResponse
//	@Router			/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w)
		return
	}

	res, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		UserType:      domain.UserType(req.UserType),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      req.Password,
		EncryptedData: req.EncryptedData,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, res)
}
