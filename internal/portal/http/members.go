package http

import (
	"errors"
	"net/http"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/service"
	"github.com/firmdesk/firmdesk/pkg/httpx"
	"github.com/firmdesk/firmdesk/pkg/portalsdk"
)

type MembersHandler struct {
	Router *Router
}

// HandleList godoc
//
//	@Summary		List organization members
//	@Description	Returns the roster partitioned by role. Every member appears under exactly one key.
//	@Tags			Memberships
//	@Produce		json
//	@Param			id	path		string	true	"Organization ID"
//	@Success		200	{object}	portalsdk.MembersResponse
//	@Failure		403	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/orgs/{id}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	if !h.Router.requireMember(w, r, userID, orgID) {
		return
	}

	admins, err := h.Router.OrgService.Admins(r.Context(), orgID)
	if err != nil {
		writeServerError(w, r, err, "Failed to list admins")
		return
	}
	staff, err := h.Router.OrgService.Staff(r.Context(), orgID)
	if err != nil {
		writeServerError(w, r, err, "Failed to list staff")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.MembersResponse{
		Admins: toUsers(admins),
		Staff:  toUsers(staff),
	})
}

// HandleGrant godoc
//
//	@Summary	Grant a membership directly
//	@Tags		Memberships
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Organization ID"
//	@Param		request	body		portalsdk.GrantMembershipRequest	true	"User and role"
//	@Success	201		{object}	portalsdk.Membership
//	@Failure	409		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/orgs/{id}/members [post].
func (h *MembersHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	if !h.Router.requireAdmin(w, r, userID, orgID) {
		return
	}

	var req portalsdk.GrantMembershipRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeBadRequest(w, "user_id is required")
		return
	}

	if _, err := h.Router.IdentityService.GetUser(r.Context(), req.UserID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "User not found")
			return
		}
		writeServerError(w, r, err, "Failed to load user")
		return
	}

	m, err := h.Router.MembershipService.Grant(r.Context(), req.UserID, orgID, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			writeBadRequest(w, "role must be admin or staff")
		case errors.Is(err, service.ErrDuplicateMembership):
			writeError(w, http.StatusConflict, portalsdk.ErrorCodeConflict, "User already belongs to this organization")
		default:
			writeServerError(w, r, err, "Failed to grant membership")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toMembership(m))
}

// HandleRevoke godoc
//
//	@Summary		Revoke a membership
//	@Description	Removes the user's grant in the organization. Revoking an absent membership is a no-op.
//	@Tags			Memberships
//	@Param			id		path	string	true	"Organization ID"
//	@Param			user_id	path	string	true	"User ID"
//	@Success		204
//	@Failure		403	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/orgs/{id}/members/{user_id} [delete].
func (h *MembersHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")
	target := r.PathValue("user_id")

	if !h.Router.requireAdmin(w, r, userID, orgID) {
		return
	}

	if err := h.Router.MembershipService.Revoke(r.Context(), target, orgID); err != nil {
		writeServerError(w, r, err, "Failed to revoke membership")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
