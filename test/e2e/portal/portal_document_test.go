package portal_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/firmdesk/firmdesk/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

// TestDocumentUploadAndReview walks the review workflow: upload, download,
// mark viewed, categorize.
func TestDocumentUploadAndReview(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "reviewer@example.com", "Review Firm")

	const content = "%PDF-1.7 tiny fixture"
	doc, err := admin.UploadDocument(ctx, firm.ID, "statement.pdf", "application/pdf", strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, "uploaded", doc.Status)
	require.Equal(t, int64(len(content)), doc.FileSize)

	// Content round trip.
	body, err := admin.DownloadDocument(ctx, doc.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	require.Equal(t, content, string(data))

	err = admin.MarkDocumentViewed(ctx, doc.ID)
	require.NoError(t, err)

	// Marking again stays idempotent.
	err = admin.MarkDocumentViewed(ctx, doc.ID)
	require.NoError(t, err)

	err = admin.CategorizeDocument(ctx, doc.ID, "invoice")
	require.NoError(t, err)

	fetched, err := admin.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, "viewed", fetched.Status)
	require.Equal(t, "invoice", fetched.Category)
	require.NotNil(t, fetched.ViewedAt)
}

// TestDocumentTypeRestrictions verifies archives and unlisted types are
// rejected at upload.
func TestDocumentTypeRestrictions(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "gatekeeper@example.com", "Gate Firm")

	_, err := admin.UploadDocument(ctx, firm.ID, "bundle.zip", "application/zip", strings.NewReader("PK"))
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeUnsupportedFile,
		"archives are always rejected")

	_, err = admin.UploadDocument(ctx, firm.ID, "movie.mp4", "video/mp4", strings.NewReader("data"))
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeUnsupportedFile,
		"types outside the allow list are rejected")

	docs, err := admin.ListDocuments(ctx, firm.ID)
	require.NoError(t, err)
	require.Empty(t, docs, "rejected uploads must leave nothing behind")
}

// TestDocumentInvalidCategory verifies the category vocabulary is closed.
func TestDocumentInvalidCategory(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "cataloguer@example.com", "Catalogue Firm")

	doc, err := admin.UploadDocument(ctx, firm.ID, "notes.txt", "text/plain", strings.NewReader("notes"))
	require.NoError(t, err)

	err = admin.CategorizeDocument(ctx, doc.ID, "novel")
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeInvalidRequest)
}

// TestDocumentScopedToOrg verifies non-members cannot read another org's
// documents.
func TestDocumentScopedToOrg(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "insider@example.com", "Inside Firm")
	outsider, _ := provisionUser(t, client, "snoop@example.com", "Snoop")

	doc, err := admin.UploadDocument(ctx, firm.ID, "secret.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	_, err = outsider.GetDocument(ctx, doc.ID)
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeForbidden)

	_, err = outsider.DownloadDocument(ctx, doc.ID)
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeForbidden)
}
