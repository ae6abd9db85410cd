package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

// memFiles is an in-memory FileStorage for tests.
type memFiles struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemFiles() *memFiles {
	return &memFiles{blobs: map[string][]byte{}}
}

func (m *memFiles) Put(_ context.Context, key string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *memFiles) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memFiles) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func newDocumentService(t *testing.T) (*DocumentService, domain.Org, domain.User) {
	t.Helper()

	s := newTestStore(t)
	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)
	svc := &DocumentService{Store: s, Files: newMemFiles(), Notifier: NopNotifier{}}
	return svc, firm, owner
}

func TestUploadDocument(t *testing.T) {
	ctx := context.Background()
	svc, firm, owner := newDocumentService(t)

	t.Run("accepts a pdf and stores its content", func(t *testing.T) {
		meta := domain.FileMeta{Name: "q1-report.pdf", ContentType: "application/pdf", Size: 11}

		doc, err := svc.Upload(ctx, firm.ID, owner.ID, meta, strings.NewReader("pdf content"))
		require.NoError(t, err)
		require.Equal(t, domain.DocumentUploaded, doc.Status)
		require.Empty(t, doc.Category)

		got, rc, err := svc.Open(ctx, doc.ID)
		require.NoError(t, err)
		defer rc.Close()
		require.Equal(t, doc.ID, got.ID)

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.Equal(t, "pdf content", string(content))
	})

	t.Run("rejects archives even before the allow-list", func(t *testing.T) {
		for _, ct := range []string{"application/zip", "application/gzip", "application/x-tar"} {
			meta := domain.FileMeta{Name: "bundle", ContentType: ct, Size: 1}
			_, err := svc.Upload(ctx, firm.ID, owner.ID, meta, strings.NewReader("x"))
			require.ErrorIs(t, err, ErrUnsupportedFileType, ct)
		}
	})

	t.Run("rejects types outside the allow-list", func(t *testing.T) {
		meta := domain.FileMeta{Name: "tool.exe", ContentType: "application/x-msdownload", Size: 1}
		_, err := svc.Upload(ctx, firm.ID, owner.ID, meta, strings.NewReader("x"))
		require.ErrorIs(t, err, ErrUnsupportedFileType)
	})

	t.Run("rejects unknown orgs", func(t *testing.T) {
		meta := domain.FileMeta{Name: "a.pdf", ContentType: "application/pdf", Size: 1}
		_, err := svc.Upload(ctx, idx.New().String(), owner.ID, meta, strings.NewReader("x"))
		require.ErrorIs(t, err, ErrOrgNotFound)
	})
}

func TestMarkViewed(t *testing.T) {
	ctx := context.Background()
	svc, firm, owner := newDocumentService(t)

	meta := domain.FileMeta{Name: "invoice.pdf", ContentType: "application/pdf", Size: 1}
	doc, err := svc.Upload(ctx, firm.ID, owner.ID, meta, strings.NewReader("x"))
	require.NoError(t, err)

	reviewer := seedUser(t, svc.Store)
	require.NoError(t, svc.MarkViewed(ctx, doc.ID, reviewer.ID))

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DocumentViewed, got.Status)
	require.Equal(t, reviewer.ID, got.ViewedBy)
	require.NotNil(t, got.ViewedAt)

	// Second call is a no-op; original reviewer survives.
	other := seedUser(t, svc.Store)
	require.NoError(t, svc.MarkViewed(ctx, doc.ID, other.ID))

	again, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, reviewer.ID, again.ViewedBy)
	require.Equal(t, got.ViewedAt.Unix(), again.ViewedAt.Unix())

	require.ErrorIs(t, svc.MarkViewed(ctx, idx.New().String(), reviewer.ID), ErrDocumentNotFound)
}

func TestCategorize(t *testing.T) {
	ctx := context.Background()
	svc, firm, owner := newDocumentService(t)

	meta := domain.FileMeta{Name: "receipt.png", ContentType: "image/png", Size: 1}
	doc, err := svc.Upload(ctx, firm.ID, owner.ID, meta, strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Categorize(ctx, doc.ID, domain.CategoryReceipt))

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, domain.CategoryReceipt, got.Category)

	// Recategorizing works at any status.
	reviewer := seedUser(t, svc.Store)
	require.NoError(t, svc.MarkViewed(ctx, doc.ID, reviewer.ID))
	require.NoError(t, svc.Categorize(ctx, doc.ID, domain.CategoryOther))

	require.ErrorIs(t, svc.Categorize(ctx, doc.ID, domain.DocumentCategory("misc")), ErrInvalidCategory)
	require.ErrorIs(t, svc.Categorize(ctx, idx.New().String(), domain.CategoryOther), ErrDocumentNotFound)
}

func TestListDocuments(t *testing.T) {
	ctx := context.Background()
	svc, firm, owner := newDocumentService(t)

	first, err := svc.Upload(ctx, firm.ID, owner.ID,
		domain.FileMeta{Name: "a.pdf", ContentType: "application/pdf", Size: 1}, strings.NewReader("a"))
	require.NoError(t, err)
	second, err := svc.Upload(ctx, firm.ID, owner.ID,
		domain.FileMeta{Name: "b.pdf", ContentType: "application/pdf", Size: 1}, strings.NewReader("b"))
	require.NoError(t, err)

	docs, err := svc.List(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, second.ID, docs[0].ID)
	require.Equal(t, first.ID, docs[1].ID)
}
