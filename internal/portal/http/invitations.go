package http

import (
	"errors"
	"net/http"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/service"
	"github.com/firmdesk/firmdesk/pkg/httpx"
	"github.com/firmdesk/firmdesk/pkg/portalsdk"
)

type InvitationsHandler struct {
	Router *Router
}

// HandleIssue godoc
//
//	@Summary		Issue an invitation
//	@Description	Mints a 7-day invitation token for an email address to join the organization. The raw token appears in this response exactly once.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Organization ID"
//	@Param			request	body		portalsdk.IssueInvitationRequest	true	"Invited email and role"
//	@Success		201		{object}	portalsdk.IssueInvitationResponse	"invitation, token"
//	@Failure		400		{object}	portalsdk.ErrorResponse				"error, error_description"
//	@Failure		403		{object}	portalsdk.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/orgs/{id}/invitations [post].
func (h *InvitationsHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	var req portalsdk.IssueInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, token, err := h.Router.InvitationService.Issue(r.Context(), req.Email, orgID, userID, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeBadRequest(w, "Invalid email address")
		case errors.Is(err, service.ErrInvalidRole):
			writeBadRequest(w, "role must be admin or staff")
		case errors.Is(err, service.ErrOrgNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Organization not found")
		case errors.Is(err, service.ErrNotOrgAdmin):
			writeError(w, http.StatusForbidden, portalsdk.ErrorCodeForbidden, "Only organization admins can invite")
		default:
			writeServerError(w, r, err, "Failed to issue invitation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, portalsdk.IssueInvitationResponse{
		Invitation: toInvitation(inv),
		Token:      token,
	})
}

// HandleList godoc
//
//	@Summary		List invitations for an organization
//	@Description	status=pending (default) lists open invitations newest first; status=expired lists lapsed, unaccepted ones.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id		path	string	true	"Organization ID"
//	@Param			status	query	string	false	"pending or expired"
//	@Success		200		{array}	portalsdk.Invitation
//	@Failure		403		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/orgs/{id}/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	if !h.Router.requireAdmin(w, r, userID, orgID) {
		return
	}

	var (
		invs []domain.Invitation
		err  error
	)
	switch status := r.URL.Query().Get("status"); status {
	case "", "pending":
		invs, err = h.Router.InvitationService.PendingFor(r.Context(), orgID)
	case "expired":
		invs, err = h.Router.InvitationService.ExpiredFor(r.Context(), orgID)
	default:
		writeBadRequest(w, "status must be pending or expired")
		return
	}
	if err != nil {
		writeServerError(w, r, err, "Failed to list invitations")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvitations(invs))
}

// HandleLookup godoc
//
//	@Summary		Preview an invitation by token
//	@Description	Lets the join page show what is being offered before the user authenticates. The token acts as the credential.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string	true	"Raw invitation token"
//	@Success		200		{object}	portalsdk.Invitation
//	@Failure		404		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/invitations/lookup [get].
func (h *InvitationsHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeBadRequest(w, "token is required")
		return
	}

	inv, err := h.Router.InvitationService.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Unknown invitation token")
			return
		}
		writeServerError(w, r, err, "Failed to look up invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInvitation(inv))
}

// HandleAccept godoc
//
//	@Summary		Accept an invitation
//	@Description	Redeems the token for the authenticated user and grants the invited role. Acceptance and grant happen atomically.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.AcceptInvitationRequest	true	"Raw invitation token"
//	@Success		201		{object}	portalsdk.Membership
//	@Failure		404		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Failure		410		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req portalsdk.AcceptInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		writeBadRequest(w, "token is required")
		return
	}

	m, err := h.Router.InvitationService.Accept(r.Context(), req.Token, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Unknown invitation token")
		case errors.Is(err, service.ErrInvitationExpired):
			writeError(w, http.StatusGone, portalsdk.ErrorCodeGone, "Invitation has expired")
		case errors.Is(err, service.ErrInvitationAccepted):
			writeError(w, http.StatusConflict, portalsdk.ErrorCodeConflict, "Invitation has already been accepted")
		case errors.Is(err, service.ErrDuplicateMembership):
			writeError(w, http.StatusConflict, portalsdk.ErrorCodeConflict, "You already belong to this organization")
		default:
			writeServerError(w, r, err, "Failed to accept invitation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toMembership(m))
}

// HandleCancel godoc
//
//	@Summary	Cancel an invitation
//	@Tags		Invitations
//	@Param		id	path	string	true	"Invitation ID"
//	@Success	204
//	@Failure	403	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Failure	409	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/invitations/{id} [delete].
func (h *InvitationsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	invID := r.PathValue("id")

	inv, err := h.Router.Store.Invitations().GetInvitationByID(r.Context(), invID)
	if err != nil {
		writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Invitation not found")
		return
	}
	if !h.Router.requireAdmin(w, r, userID, inv.OrgID) {
		return
	}

	if err := h.Router.InvitationService.Cancel(r.Context(), invID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Invitation not found")
		case errors.Is(err, service.ErrInvalidState):
			writeError(w, http.StatusConflict, portalsdk.ErrorCodeInvalidState, "Accepted invitations cannot be cancelled")
		default:
			writeServerError(w, r, err, "Failed to cancel invitation")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
