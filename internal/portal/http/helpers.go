// Package http exposes the portal services over a versioned JSON API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/service"
	"github.com/firmdesk/firmdesk/pkg/httpx"
	"github.com/firmdesk/firmdesk/pkg/portalsdk"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

func writeError(w http.ResponseWriter, code int, errCode, desc string) {
	httpx.WriteJSON(w, code, portalsdk.ErrorResponse{
		Error:            errCode,
		ErrorDescription: desc,
	})
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	writeError(w, http.StatusBadRequest, portalsdk.ErrorCodeInvalidRequest, desc)
}

func writeServerError(w http.ResponseWriter, r *http.Request, err error, desc string) {
	slogx.FromContext(r.Context()).Error(desc, "err", err)
	writeError(w, http.StatusInternalServerError, portalsdk.ErrorCodeServerError, desc)
}

// decodeJSON parses the request body into v, rejecting unknown garbage with
// a uniform 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return false
	}
	return true
}

// actingUser returns the authenticated user ID or writes a 401.
func actingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, portalsdk.ErrorCodeUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

// requireMember writes a 403 unless userID holds any role in orgID. Unknown
// orgs 404 before the membership check so the two cases stay distinct for
// legitimate members.
func (rt *Router) requireMember(w http.ResponseWriter, r *http.Request, userID, orgID string) bool {
	if _, err := rt.OrgService.Get(r.Context(), orgID); err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Organization not found")
		} else {
			writeServerError(w, r, err, "Failed to load organization")
		}
		return false
	}

	ok, err := rt.MembershipService.IsMember(r.Context(), userID, orgID)
	if err != nil {
		writeServerError(w, r, err, "Failed to check membership")
		return false
	}
	if !ok {
		writeError(w, http.StatusForbidden, portalsdk.ErrorCodeForbidden, "Not a member of this organization")
		return false
	}
	return true
}

// requireAdmin is requireMember with the admin role.
func (rt *Router) requireAdmin(w http.ResponseWriter, r *http.Request, userID, orgID string) bool {
	if _, err := rt.OrgService.Get(r.Context(), orgID); err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Organization not found")
		} else {
			writeServerError(w, r, err, "Failed to load organization")
		}
		return false
	}

	ok, err := rt.MembershipService.IsAdmin(r.Context(), userID, orgID)
	if err != nil {
		writeServerError(w, r, err, "Failed to check membership")
		return false
	}
	if !ok {
		writeError(w, http.StatusForbidden, portalsdk.ErrorCodeForbidden, "Admin role required")
		return false
	}
	return true
}

// Wire-type mappers. Handlers never hand domain structs to the encoder, so
// schema changes stay deliberate.

func toUser(u domain.User) portalsdk.User {
	return portalsdk.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Confirmed:   u.Confirmed(),
		CreatedAt:   u.CreatedAt,
		ConfirmedAt: u.ConfirmedAt,
	}
}

func toUsers(users []domain.User) []portalsdk.User {
	out := make([]portalsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	return out
}

func toOrg(o domain.Org) portalsdk.Org {
	return portalsdk.Org{
		ID:        o.ID,
		Name:      o.Name,
		Kind:      string(o.Kind),
		ParentID:  o.ParentID,
		CreatedAt: o.CreatedAt,
	}
}

func toMembership(m domain.Membership) portalsdk.Membership {
	return portalsdk.Membership{
		ID:     m.ID,
		UserID: m.UserID,
		OrgID:  m.OrgID,
		Role:   m.Role.String(),
	}
}

func toInvitation(inv domain.Invitation) portalsdk.Invitation {
	return portalsdk.Invitation{
		ID:         inv.ID,
		Email:      inv.Email,
		OrgID:      inv.OrgID,
		Role:       inv.Role.String(),
		InvitedBy:  inv.InvitedBy,
		ExpiresAt:  inv.ExpiresAt,
		AcceptedAt: inv.AcceptedAt,
		CreatedAt:  inv.CreatedAt,
	}
}

func toInvitations(invs []domain.Invitation) []portalsdk.Invitation {
	out := make([]portalsdk.Invitation, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvitation(inv))
	}
	return out
}

func toDocument(d domain.Document) portalsdk.Document {
	return portalsdk.Document{
		ID:          d.ID,
		OrgID:       d.OrgID,
		UploadedBy:  d.UploadedBy,
		Status:      string(d.Status),
		Category:    string(d.Category),
		ViewedBy:    d.ViewedBy,
		ViewedAt:    d.ViewedAt,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		FileSize:    d.FileSize,
		CreatedAt:   d.CreatedAt,
	}
}

func toThread(t domain.Thread) portalsdk.Thread {
	return portalsdk.Thread{
		ID:             t.ID,
		OrgID:          t.OrgID,
		Title:          t.Title,
		Status:         string(t.Status),
		ClosedBy:       t.ClosedBy,
		ClosedAt:       t.ClosedAt,
		LastActivityAt: t.LastActivityAt,
		CreatedAt:      t.CreatedAt,
	}
}

func toMessage(m domain.Message) portalsdk.Message {
	return portalsdk.Message{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		AuthorID:  m.AuthorID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
