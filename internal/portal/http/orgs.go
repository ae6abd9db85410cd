package http

import (
	"errors"
	"net/http"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/service"
	"github.com/firmdesk/firmdesk/pkg/httpx"
	"github.com/firmdesk/firmdesk/pkg/portalsdk"
)

type OrgsHandler struct {
	Router *Router
}

// HandleCreateFirm godoc
//
//	@Summary		Create a firm
//	@Description	Creates a root organization; the acting user becomes its first admin atomically.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.CreateFirmRequest	true	"Firm name"
//	@Success		201		{object}	portalsdk.Org
//	@Failure		400		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/orgs/firms [post].
func (h *OrgsHandler) HandleCreateFirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req portalsdk.CreateFirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	org, err := h.Router.OrgService.CreateFirm(r.Context(), req.Name, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBlankOrgName):
			writeBadRequest(w, "Organization name cannot be blank")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Acting user not found")
		default:
			writeServerError(w, r, err, "Failed to create firm")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toOrg(org))
}

// HandleCreateClient godoc
//
//	@Summary	Create a client organization under a firm
//	@Tags		Organizations
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Firm ID"
//	@Param		request	body		portalsdk.CreateClientRequest	true	"Client name"
//	@Success	201		{object}	portalsdk.Org
//	@Failure	400		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Failure	403		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/orgs/{id}/clients [post].
func (h *OrgsHandler) HandleCreateClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	firmID := r.PathValue("id")

	if !h.Router.requireAdmin(w, r, userID, firmID) {
		return
	}

	var req portalsdk.CreateClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	org, err := h.Router.OrgService.CreateClient(r.Context(), req.Name, firmID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBlankOrgName):
			writeBadRequest(w, "Organization name cannot be blank")
		case errors.Is(err, service.ErrNotAFirm):
			writeBadRequest(w, "Clients can only be created under a firm")
		case errors.Is(err, service.ErrOrgNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Firm not found")
		default:
			writeServerError(w, r, err, "Failed to create client organization")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toOrg(org))
}

// HandleGet godoc
//
//	@Summary	Fetch an organization
//	@Tags		Organizations
//	@Produce	json
//	@Param		id	path		string	true	"Organization ID"
//	@Success	200	{object}	portalsdk.Org
//	@Failure	404	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/orgs/{id} [get].
func (h *OrgsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	if !h.Router.requireMember(w, r, userID, orgID) {
		return
	}

	org, err := h.Router.OrgService.Get(r.Context(), orgID)
	if err != nil {
		writeServerError(w, r, err, "Failed to load organization")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrg(org))
}

// HandleListClients godoc
//
//	@Summary	List a firm's client organizations
//	@Tags		Organizations
//	@Produce	json
//	@Param		id	path	string	true	"Firm ID"
//	@Success	200	{array}	portalsdk.Org
//	@Failure	403	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/orgs/{id}/clients [get].
func (h *OrgsHandler) HandleListClients(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	firmID := r.PathValue("id")

	if !h.Router.requireMember(w, r, userID, firmID) {
		return
	}

	clients, err := h.Router.OrgService.Clients(r.Context(), firmID)
	if err != nil {
		writeServerError(w, r, err, "Failed to list clients")
		return
	}

	out := make([]portalsdk.Org, 0, len(clients))
	for _, c := range clients {
		out = append(out, toOrg(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
