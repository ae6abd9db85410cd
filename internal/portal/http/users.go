package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/service"
	"github.com/firmdesk/firmdesk/pkg/httpx"
	"github.com/firmdesk/firmdesk/pkg/jwtx"
	"github.com/firmdesk/firmdesk/pkg/portalsdk"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

type UsersHandler struct {
	IdentityService *service.IdentityService
	Signer          *jwtx.EdDSASigner
	Issuer          string
	SessionTTL      time.Duration
}

// HandleRegister godoc
//
//	@Summary		Register a new user
//	@Description	Creates an unconfirmed user account. The confirmation token is returned to the caller, which owns delivery to the user's mailbox.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	portalsdk.RegisterResponse	"user, confirmation_token"
//	@Failure		400		{object}	portalsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	portalsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.IdentityService.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeBadRequest(w, "Invalid email address")
		case errors.Is(err, service.ErrWeakPassword):
			writeBadRequest(w, "Password does not meet the minimum length")
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, portalsdk.ErrorCodeConflict, "Email already registered")
		default:
			writeServerError(w, r, err, "Failed to register user")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.RegisterResponse{
		User:              toUser(user),
		ConfirmationToken: token,
	})
}

// HandleConfirm godoc
//
//	@Summary	Confirm an email address
//	@Tags		Identity
//	@Accept		json
//	@Produce	json
//	@Param		request	body		portalsdk.ConfirmEmailRequest	true	"Confirmation token"
//	@Success	200		{object}	portalsdk.User
//	@Failure	400		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Failure	410		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Router		/v1/users/confirm [post].
func (h *UsersHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.ConfirmEmailRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		writeBadRequest(w, "token is required")
		return
	}

	user, err := h.IdentityService.ConfirmEmail(r.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Unknown confirmation token")
		case errors.Is(err, service.ErrConfirmationExpired):
			writeError(w, http.StatusGone, portalsdk.ErrorCodeGone, "Confirmation token expired")
		default:
			writeServerError(w, r, err, "Failed to confirm email")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// HandleLogin godoc
//
//	@Summary		Establish a session
//	@Description	Verifies credentials and returns a signed session token.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	portalsdk.LoginResponse	"session_token, expires_at, user"
//	@Failure		401		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req portalsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.IdentityService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, portalsdk.ErrorCodeUnauthorized, "Invalid email or password")
			return
		}
		writeServerError(w, r, err, "Failed to authenticate")
		return
	}

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(user.ID, user.Email, user.DisplayName, h.Issuer, h.SessionTTL, now)
	token, err := h.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", "err", err)
		writeServerError(w, r, err, "Failed to establish session")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.LoginResponse{
		SessionToken: token,
		ExpiresAt:    claims.ExpiresAt.Time,
		User:         toUser(user),
	})
}

// HandleResetRequest godoc
//
//	@Summary		Request a password reset
//	@Description	Mints a reset token for the account. The caller owns delivery; unknown emails 404 because this API is consumed by a trusted frontend, not end users directly.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.PasswordResetRequest	true	"Account email"
//	@Success		200		{object}	portalsdk.PasswordResetResponse	"reset_token"
//	@Failure		404		{object}	portalsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/users/password-reset/request [post].
func (h *UsersHandler) HandleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.PasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.IdentityService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "No account with that email")
			return
		}
		writeServerError(w, r, err, "Failed to create reset token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.PasswordResetResponse{ResetToken: token})
}

// HandleResetConfirm godoc
//
//	@Summary	Complete a password reset
//	@Tags		Identity
//	@Accept		json
//	@Produce	json
//	@Param		request	body	portalsdk.PasswordResetConfirmRequest	true	"Reset token and new password"
//	@Success	204
//	@Failure	400	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Failure	410	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Router		/v1/users/password-reset/confirm [post].
func (h *UsersHandler) HandleResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.PasswordResetConfirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.IdentityService.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			writeBadRequest(w, "Password does not meet the minimum length")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Unknown reset token")
		case errors.Is(err, service.ErrResetExpired):
			writeError(w, http.StatusGone, portalsdk.ErrorCodeGone, "Reset token expired")
		default:
			writeServerError(w, r, err, "Failed to reset password")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe godoc
//
//	@Summary	Current user
//	@Tags		Identity
//	@Produce	json
//	@Success	200	{object}	portalsdk.User
//	@Failure	401	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	user, err := h.IdentityService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "User not found")
			return
		}
		writeServerError(w, r, err, "Failed to load user")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}
