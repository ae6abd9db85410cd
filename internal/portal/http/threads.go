package http

import (
	"errors"
	"net/http"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/service"
	"github.com/firmdesk/firmdesk/pkg/httpx"
	"github.com/firmdesk/firmdesk/pkg/portalsdk"
)

type ThreadsHandler struct {
	Router *Router
}

// HandleCreate godoc
//
//	@Summary	Open a discussion thread
//	@Tags		Threads
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Organization ID"
//	@Param		request	body		portalsdk.CreateThreadRequest	true	"Thread title"
//	@Success	201		{object}	portalsdk.Thread
//	@Failure	400		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/orgs/{id}/threads [post].
func (h *ThreadsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	if !h.Router.requireMember(w, r, userID, orgID) {
		return
	}

	var req portalsdk.CreateThreadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	thread, err := h.Router.ThreadService.Create(r.Context(), orgID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlankTitle):
			writeBadRequest(w, "Thread title cannot be blank")
		case errors.Is(err, service.ErrOrgNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Organization not found")
		default:
			writeServerError(w, r, err, "Failed to create thread")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toThread(thread))
}

// HandleListByOrg godoc
//
//	@Summary		List an organization's threads
//	@Description	Ordered by most recent activity.
//	@Tags			Threads
//	@Produce		json
//	@Param			id	path	string	true	"Organization ID"
//	@Success		200	{array}	portalsdk.Thread
//	@Failure		403	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/orgs/{id}/threads [get].
func (h *ThreadsHandler) HandleListByOrg(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	if !h.Router.requireMember(w, r, userID, orgID) {
		return
	}

	threads, err := h.Router.ThreadService.ListThreads(r.Context(), orgID)
	if err != nil {
		writeServerError(w, r, err, "Failed to list threads")
		return
	}

	out := make([]portalsdk.Thread, 0, len(threads))
	for _, t := range threads {
		out = append(out, toThread(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// getForMember loads the thread and checks org membership.
func (h *ThreadsHandler) getForMember(w http.ResponseWriter, r *http.Request, userID string) (domain.Thread, bool) {
	thread, err := h.Router.ThreadService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrThreadNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Thread not found")
		} else {
			writeServerError(w, r, err, "Failed to load thread")
		}
		return domain.Thread{}, false
	}
	if !h.Router.requireMember(w, r, userID, thread.OrgID) {
		return domain.Thread{}, false
	}
	return thread, true
}

// HandleGet godoc
//
//	@Summary	Fetch a thread
//	@Tags		Threads
//	@Produce	json
//	@Param		id	path		string	true	"Thread ID"
//	@Success	200	{object}	portalsdk.Thread
//	@Failure	404	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/threads/{id} [get].
func (h *ThreadsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	thread, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toThread(thread))
}

// HandlePostMessage godoc
//
//	@Summary		Post a message
//	@Description	Appends a message and bumps the thread's activity; a resolved thread reopens automatically.
//	@Tags			Threads
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Thread ID"
//	@Param			request	body		portalsdk.PostMessageRequest	true	"Message body"
//	@Success		201		{object}	portalsdk.Message
//	@Failure		400		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/threads/{id}/messages [post].
func (h *ThreadsHandler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	thread, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}

	var req portalsdk.PostMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Router.ThreadService.PostMessage(r.Context(), thread.ID, userID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			writeBadRequest(w, "Message body cannot be empty")
		case errors.Is(err, service.ErrThreadNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Thread not found")
		default:
			writeServerError(w, r, err, "Failed to post message")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toMessage(msg))
}

// HandleListMessages godoc
//
//	@Summary	List a thread's messages
//	@Tags		Threads
//	@Produce	json
//	@Param		id	path	string	true	"Thread ID"
//	@Success	200	{array}	portalsdk.Message
//	@Failure	404	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/threads/{id}/messages [get].
func (h *ThreadsHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	thread, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}

	msgs, err := h.Router.ThreadService.ListMessages(r.Context(), thread.ID)
	if err != nil {
		writeServerError(w, r, err, "Failed to list messages")
		return
	}

	out := make([]portalsdk.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessage(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleResolve godoc
//
//	@Summary		Resolve a thread
//	@Description	open to resolved, recording the acting user as closer. Resolving an already-resolved thread conflicts.
//	@Tags			Threads
//	@Param			id	path	string	true	"Thread ID"
//	@Success		204
//	@Failure		409	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/threads/{id}/resolve [post].
func (h *ThreadsHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	thread, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}

	if err := h.Router.ThreadService.Resolve(r.Context(), thread.ID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidState):
			writeError(w, http.StatusConflict, portalsdk.ErrorCodeInvalidState, "Thread is already resolved")
		case errors.Is(err, service.ErrThreadNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Thread not found")
		default:
			writeServerError(w, r, err, "Failed to resolve thread")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleReopen godoc
//
//	@Summary	Reopen a resolved thread
//	@Tags		Threads
//	@Param		id	path	string	true	"Thread ID"
//	@Success	204
//	@Failure	409	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/threads/{id}/reopen [post].
func (h *ThreadsHandler) HandleReopen(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	thread, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}

	if err := h.Router.ThreadService.Reopen(r.Context(), thread.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidState):
			writeError(w, http.StatusConflict, portalsdk.ErrorCodeInvalidState, "Thread is already open")
		case errors.Is(err, service.ErrThreadNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Thread not found")
		default:
			writeServerError(w, r, err, "Failed to reopen thread")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
