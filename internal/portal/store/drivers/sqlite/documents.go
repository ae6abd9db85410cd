package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
)

type documentsRepo struct {
	db DBTX
}

const documentColumns = `id, org_id, uploaded_by, status, category, viewed_by,
	viewed_at, file_name, content_type, file_size, storage_key,
	created_at, updated_at`

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (
			id, org_id, uploaded_by, status, file_name, content_type,
			file_size, storage_key, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.OrgID, d.UploadedBy, string(domain.DocumentUploaded),
		d.FileName, d.ContentType, d.FileSize, d.StorageKey, now, now,
	)
	return mapConstraint(err)
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// MarkDocumentViewed is guarded on status so the transition never runs
// backward and a second call changes no rows.
func (r *documentsRepo) MarkDocumentViewed(ctx context.Context, documentID, reviewerID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE documents
		SET status = ?, viewed_by = ?, viewed_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(domain.DocumentViewed), reviewerID, at.UTC(), time.Now().UTC(),
		documentID, string(domain.DocumentUploaded),
	)
	if err != nil {
		return err
	}
	return requireRowChange(res)
}

func (r *documentsRepo) UpdateDocumentCategory(ctx context.Context, documentID string, category domain.DocumentCategory) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE documents SET category = ?, updated_at = ? WHERE id = ?`,
		string(category), time.Now().UTC(), documentID,
	)
	if err != nil {
		return err
	}
	return requireRowChange(res)
}

func (r *documentsRepo) ListDocumentsByOrg(ctx context.Context, orgID string) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents WHERE org_id = ?
		ORDER BY id DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var d domain.Document
	var status string
	var category, viewedBy sql.NullString
	var viewedAt sql.NullTime

	err := row.Scan(
		&d.ID, &d.OrgID, &d.UploadedBy, &status, &category, &viewedBy,
		&viewedAt, &d.FileName, &d.ContentType, &d.FileSize, &d.StorageKey,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}

	d.Status = domain.DocumentStatus(status)
	d.Category = domain.DocumentCategory(mapNullString(category))
	d.ViewedBy = mapNullString(viewedBy)
	d.ViewedAt = mapNullTimePtr(viewedAt)
	return d, nil
}
