package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

type AccountHandler struct {
	AuthService *service.AuthService
}

// HandleMe returns the caller's own account.
//
//	@Summary		Current account
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse
//	@Failure		401	{object}	authsdk.GuardErrorResponse
//	@Router			/auth/me [get].
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		writeGuardError(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{Success: true, User: toUser(p)})
}

// HandleGet loads any account.
//
//	@Summary		Get account
//	@Description	Requires the admin or superadmin role.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	authsdk.UserResponse
//	@Failure		401	{object}	authsdk.GuardErrorResponse
//	@Failure		403	{object}	authsdk.GuardErrorResponse
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Router			/auth/users/{id} [get].
func (h *AccountHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.AuthService.GetPrincipal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{Success: true, User: toUser(p)})
}

// HandleConfirmEmail marks an account verified without a token.
//
//	@Summary		Confirm email
//	@Description	Requires the admin marker on the caller.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	authsdk.UserResponse
//	@Failure		401	{object}	authsdk.GuardErrorResponse
//	@Failure		403	{object}	authsdk.GuardErrorResponse
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Router			/auth/users/{id}/verify-email [post].
func (h *AccountHandler) HandleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	p, err := h.AuthService.ConfirmEmail(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{Success: true, User: toUser(p)})
}
