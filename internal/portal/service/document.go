package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidCategory     = errors.New("invalid document category")
)

// FileStorage holds raw document bytes under opaque keys. The service only
// handles metadata; content streams straight through to the implementation.
type FileStorage interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// blockedContentTypes are rejected before the allow-list is consulted, so an
// archive never sneaks in even if a future allow-list entry would match it.
var blockedContentTypes = map[string]struct{}{
	"application/zip":              {},
	"application/x-zip-compressed": {},
	"application/x-tar":            {},
	"application/gzip":             {},
	"application/x-7z-compressed":  {},
	"application/x-rar-compressed": {},
}

var allowedContentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"text/csv":   {},
	"text/plain": {},
	"image/png":  {},
	"image/jpeg": {},
	"image/heic": {},
}

// DocumentService manages the upload and review workflow for client
// documents.
type DocumentService struct {
	Store    store.Store
	Files    FileStorage
	Notifier Notifier
}

// Upload validates the file metadata, stores the content and records the
// document in the uploaded state.
func (s *DocumentService) Upload(
	ctx context.Context,
	orgID, uploaderID string,
	meta domain.FileMeta,
	content io.Reader,
) (domain.Document, error) {
	log := slogx.FromContext(ctx)

	if _, blocked := blockedContentTypes[meta.ContentType]; blocked {
		log.Warn("blocked file type rejected",
			slog.String("content_type", meta.ContentType),
			slog.String("org_id", orgID),
		)
		return domain.Document{}, ErrUnsupportedFileType
	}
	if _, ok := allowedContentTypes[meta.ContentType]; !ok {
		return domain.Document{}, ErrUnsupportedFileType
	}

	if _, err := s.Store.Orgs().GetOrgByID(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Document{}, ErrOrgNotFound
		}
		return domain.Document{}, err
	}

	doc := domain.Document{
		ID:          idx.New().String(),
		OrgID:       orgID,
		UploadedBy:  uploaderID,
		Status:      domain.DocumentUploaded,
		FileName:    meta.Name,
		ContentType: meta.ContentType,
		FileSize:    meta.Size,
	}
	doc.StorageKey = fmt.Sprintf("%s/%s", orgID, doc.ID)

	if err := s.Files.Put(ctx, doc.StorageKey, content); err != nil {
		log.Error("failed to store document content", slog.Any("error", err))
		return domain.Document{}, err
	}

	if err := s.Store.Documents().CreateDocument(ctx, doc); err != nil {
		log.Error("failed to create document record", slog.Any("error", err))
		// Content without a record is unreachable; best effort cleanup.
		if derr := s.Files.Delete(ctx, doc.StorageKey); derr != nil {
			log.Warn("failed to remove orphaned content", slog.Any("error", derr))
		}
		return domain.Document{}, err
	}

	s.notify(ctx, Event{
		Kind:     EventDocumentUploaded,
		OrgID:    orgID,
		EntityID: doc.ID,
		ActorID:  uploaderID,
	})

	log.Info("document uploaded",
		slog.String("document_id", doc.ID),
		slog.String("org_id", orgID),
		slog.String("content_type", meta.ContentType),
		slog.Int64("size", meta.Size),
	)
	return doc, nil
}

// MarkViewed transitions the document from uploaded to viewed and records
// the reviewer. Calling it on an already-viewed document is a no-op; the
// original reviewer and timestamp are kept.
func (s *DocumentService) MarkViewed(ctx context.Context, documentID, reviewerID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Documents().MarkDocumentViewed(ctx, documentID, reviewerID, time.Now().UTC())
	if err == nil {
		log.Info("document viewed",
			slog.String("document_id", documentID),
			slog.String("reviewer_id", reviewerID),
		)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	// The guarded update matched nothing: either the document does not exist
	// or it is already viewed. Only the former is an error.
	doc, gerr := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if gerr != nil {
		if errors.Is(gerr, store.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return gerr
	}
	if doc.Status == domain.DocumentViewed {
		return nil
	}
	return err
}

// Categorize sets the document's category. Status does not gate this; firms
// file documents before and after review.
func (s *DocumentService) Categorize(ctx context.Context, documentID string, category domain.DocumentCategory) error {
	if !category.Valid() {
		return ErrInvalidCategory
	}

	err := s.Store.Documents().UpdateDocumentCategory(ctx, documentID, category)
	if errors.Is(err, store.ErrNotFound) {
		return ErrDocumentNotFound
	}
	return err
}

// Get fetches a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (domain.Document, error) {
	doc, err := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Document{}, ErrDocumentNotFound
		}
		return domain.Document{}, err
	}
	return doc, nil
}

// Open streams the stored content of a document.
func (s *DocumentService) Open(ctx context.Context, documentID string) (domain.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return domain.Document{}, nil, err
	}
	rc, err := s.Files.Open(ctx, doc.StorageKey)
	if err != nil {
		return domain.Document{}, nil, err
	}
	return doc, rc, nil
}

// List returns an org's documents, newest first.
func (s *DocumentService) List(ctx context.Context, orgID string) ([]domain.Document, error) {
	return s.Store.Documents().ListDocumentsByOrg(ctx, orgID)
}

func (s *DocumentService) notify(ctx context.Context, e Event) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, e)
	}
}
