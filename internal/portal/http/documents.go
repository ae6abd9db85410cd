package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/service"
	"github.com/firmdesk/firmdesk/pkg/httpx"
	"github.com/firmdesk/firmdesk/pkg/portalsdk"
)

// maxUploadBytes caps document uploads at 32 MiB.
const maxUploadBytes = 32 << 20

type DocumentsHandler struct {
	Router *Router
}

// HandleUpload godoc
//
//	@Summary		Upload a document
//	@Description	Multipart upload under the "file" field. Archives are rejected; only document and image types are accepted.
//	@Tags			Documents
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Organization ID"
//	@Param			file	formData	file	true	"Document content"
//	@Success		201		{object}	portalsdk.Document
//	@Failure		400		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Failure		415		{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/orgs/{id}/documents [post].
func (h *DocumentsHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	if !h.Router.requireMember(w, r, userID, orgID) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, `multipart "file" field is required`)
		return
	}
	defer file.Close()

	meta := domain.FileMeta{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	doc, err := h.Router.DocumentService.Upload(r.Context(), orgID, userID, meta, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			writeError(w, http.StatusUnsupportedMediaType, portalsdk.ErrorCodeUnsupportedFile,
				"File type not accepted; archives are always rejected")
		case errors.Is(err, service.ErrOrgNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Organization not found")
		default:
			writeServerError(w, r, err, "Failed to upload document")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toDocument(doc))
}

// HandleList godoc
//
//	@Summary	List an organization's documents
//	@Tags		Documents
//	@Produce	json
//	@Param		id	path	string	true	"Organization ID"
//	@Success	200	{array}	portalsdk.Document
//	@Failure	403	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/orgs/{id}/documents [get].
func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	orgID := r.PathValue("id")

	if !h.Router.requireMember(w, r, userID, orgID) {
		return
	}

	docs, err := h.Router.DocumentService.List(r.Context(), orgID)
	if err != nil {
		writeServerError(w, r, err, "Failed to list documents")
		return
	}

	out := make([]portalsdk.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocument(d))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// getForMember loads the document and checks the acting user belongs to its
// org. Used by every per-document endpoint.
func (h *DocumentsHandler) getForMember(w http.ResponseWriter, r *http.Request, userID string) (domain.Document, bool) {
	doc, err := h.Router.DocumentService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Document not found")
		} else {
			writeServerError(w, r, err, "Failed to load document")
		}
		return domain.Document{}, false
	}
	if !h.Router.requireMember(w, r, userID, doc.OrgID) {
		return domain.Document{}, false
	}
	return doc, true
}

// HandleGet godoc
//
//	@Summary	Fetch document metadata
//	@Tags		Documents
//	@Produce	json
//	@Param		id	path		string	true	"Document ID"
//	@Success	200	{object}	portalsdk.Document
//	@Failure	404	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/documents/{id} [get].
func (h *DocumentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	doc, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDocument(doc))
}

// HandleContent godoc
//
//	@Summary	Download document content
//	@Tags		Documents
//	@Produce	octet-stream
//	@Param		id	path	string	true	"Document ID"
//	@Success	200	{file}	binary
//	@Failure	404	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/documents/{id}/content [get].
func (h *DocumentsHandler) HandleContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	doc, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}

	_, rc, err := h.Router.DocumentService.Open(r.Context(), doc.ID)
	if err != nil {
		writeServerError(w, r, err, "Failed to open document content")
		return
	}
	defer rc.Close()

	httpx.NoCache(w)
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.FileSize, 10))
	w.Header().Set("Content-Disposition", `attachment; filename=`+strconv.Quote(doc.FileName))
	_, _ = io.Copy(w, rc)
}

// HandleMarkViewed godoc
//
//	@Summary		Mark a document viewed
//	@Description	Records the uploaded to viewed transition with the acting user as reviewer. Idempotent; repeat calls keep the original reviewer.
//	@Tags			Documents
//	@Param			id	path	string	true	"Document ID"
//	@Success		204
//	@Failure		404	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/viewed [post].
func (h *DocumentsHandler) HandleMarkViewed(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	doc, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}

	if err := h.Router.DocumentService.MarkViewed(r.Context(), doc.ID, userID); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Document not found")
			return
		}
		writeServerError(w, r, err, "Failed to mark document viewed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCategorize godoc
//
//	@Summary	Set a document's category
//	@Tags		Documents
//	@Accept		json
//	@Param		id		path	string						true	"Document ID"
//	@Param		request	body	portalsdk.CategorizeRequest	true	"invoice, receipt, contract or other"
//	@Success	204
//	@Failure	400	{object}	portalsdk.ErrorResponse	"error, error_description"
//	@Security	BearerAuth
//	@Router		/v1/documents/{id}/category [put].
func (h *DocumentsHandler) HandleCategorize(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	doc, ok := h.getForMember(w, r, userID)
	if !ok {
		return
	}

	var req portalsdk.CategorizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.Router.DocumentService.Categorize(r.Context(), doc.ID, domain.DocumentCategory(req.Category))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			writeBadRequest(w, "category must be invoice, receipt, contract or other")
		case errors.Is(err, service.ErrDocumentNotFound):
			writeError(w, http.StatusNotFound, portalsdk.ErrorCodeNotFound, "Document not found")
		default:
			writeServerError(w, r, err, "Failed to categorize document")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
