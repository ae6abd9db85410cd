package domain

import "time"

// DocumentStatus is the two-state review machine. Transitions only run
// uploaded -> viewed, never backward.
type DocumentStatus string

const (
	DocumentUploaded DocumentStatus = "uploaded"
	DocumentViewed   DocumentStatus = "viewed"
)

// DocumentCategory is free-form bookkeeping; it never affects status.
type DocumentCategory string

const (
	CategoryInvoice  DocumentCategory = "invoice"
	CategoryReceipt  DocumentCategory = "receipt"
	CategoryContract DocumentCategory = "contract"
	CategoryOther    DocumentCategory = "other"
)

// Valid reports whether c is a known category.
func (c DocumentCategory) Valid() bool {
	switch c {
	case CategoryInvoice, CategoryReceipt, CategoryContract, CategoryOther:
		return true
	}
	return false
}

// FileMeta is the metadata the core validates; raw content never passes
// through it.
type FileMeta struct {
	Name        string
	ContentType string
	Size        int64
}

type Document struct {
	ID         string
	OrgID      string
	UploadedBy string
	Status     DocumentStatus
	Category   DocumentCategory // empty until categorized

	// Review bookkeeping, set on the uploaded -> viewed transition.
	ViewedBy string
	ViewedAt *time.Time

	FileName    string
	ContentType string
	FileSize    int64
	StorageKey  string // opaque handle into the file storage collaborator

	CreatedAt time.Time
	UpdatedAt time.Time
}
