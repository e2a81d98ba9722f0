package http

import (
	"net/http"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/service"
	"github.com/aussiebroadwan/tweetbook/pkg/authsdk"
	"github.com/aussiebroadwan/tweetbook/pkg/httpx"
)

// IdentityHandler serves the register, login, refresh and revoke endpoints.
// Denials are 400 with {"errors": [...]}; store outages are 503.
type IdentityHandler struct {
	IdentityService *service.IdentityService
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Creates an account and returns an access token with its refresh token.
//	@Description	Passwords need at least 6 characters with a digit, a lowercase, an uppercase and a non alphanumeric character.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest		true	"email and password"
//	@Success		200		{object}	authsdk.AuthSuccessResponse	"token, refreshToken"
//	@Failure		400		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		429		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		503		{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/identity/register [post].
func (h *IdentityHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !bindJSON(w, r, &req) {
		return
	}

	res, err := h.IdentityService.Register(r.Context(), req.Email, req.Password)
	writeAuthResult(w, r, res, err)
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchanges email and password for a new token pair.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest		true	"email and password"
//	@Success		200		{object}	authsdk.AuthSuccessResponse	"token, refreshToken"
//	@Failure		400		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		429		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		503		{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/identity/login [post].
func (h *IdentityHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !bindJSON(w, r, &req) {
		return
	}

	res, err := h.IdentityService.Login(r.Context(), req.Email, req.Password)
	writeAuthResult(w, r, res, err)
}

// HandleRefresh godoc
//
//	@Summary		Refresh
//	@Description	Trades an expired access token and the refresh token issued with it for a new pair.
//	@Description	The refresh token is consumed; presenting it again fails.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest		true	"token, refreshToken"
//	@Success		200		{object}	authsdk.AuthSuccessResponse	"token, refreshToken"
//	@Failure		400		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		429		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		503		{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/identity/refresh [post].
func (h *IdentityHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshRequest
	if !bindJSON(w, r, &req) {
		return
	}

	res, err := h.IdentityService.Refresh(r.Context(), req.Token, req.RefreshToken)
	writeAuthResult(w, r, res, err)
}

// HandleRevoke godoc
//
//	@Summary		Revoke
//	@Description	Invalidates a refresh token.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body	authsdk.RevokeRequest	true	"refreshToken"
//	@Success		204		"Revoked"
//	@Failure		400		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		503		{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/identity/revoke [post].
func (h *IdentityHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RevokeRequest
	if !bindJSON(w, r, &req) {
		return
	}

	res, err := h.IdentityService.Revoke(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !res.Success {
		httpx.WriteErrors(w, http.StatusBadRequest, res.Errors...)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

func writeAuthResult(w http.ResponseWriter, r *http.Request, res domain.AuthenticationResult, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !res.Success {
		httpx.WriteErrors(w, http.StatusBadRequest, res.Errors...)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthSuccessResponse{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
	})
}
