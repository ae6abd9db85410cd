package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
)

type threadsRepo struct {
	db DBTX
}

const threadColumns = `id, org_id, title, status, closed_by, closed_at,
	last_activity_at, created_at, updated_at`

func (r *threadsRepo) CreateThread(ctx context.Context, t domain.Thread) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO threads (
			id, org_id, title, status, last_activity_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OrgID, t.Title, string(domain.ThreadOpen),
		t.LastActivityAt.UTC(), t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *threadsRepo) GetThreadByID(ctx context.Context, id string) (domain.Thread, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+threadColumns+` FROM threads WHERE id = ?`, id)
	return scanThread(row)
}

func (r *threadsRepo) ListThreadsByOrg(ctx context.Context, orgID string) ([]domain.Thread, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+threadColumns+`
		FROM threads WHERE org_id = ?
		ORDER BY last_activity_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Thread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ResolveThread is guarded on the thread currently being open; an
// already-resolved thread changes no rows.
func (r *threadsRepo) ResolveThread(ctx context.Context, threadID, closerID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE threads
		SET status = ?, closed_by = ?, closed_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(domain.ThreadResolved), closerID, at.UTC(), time.Now().UTC(),
		threadID, string(domain.ThreadOpen),
	)
	if err != nil {
		return err
	}
	return requireRowChange(res)
}

func (r *threadsRepo) ReopenThread(ctx context.Context, threadID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE threads
		SET status = ?, closed_by = NULL, closed_at = NULL, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(domain.ThreadOpen), time.Now().UTC(),
		threadID, string(domain.ThreadResolved),
	)
	if err != nil {
		return err
	}
	return requireRowChange(res)
}

func (r *threadsRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, thread_id, author_id, body, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.ThreadID, m.AuthorID, m.Body, m.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

// TouchThreadActivity bumps last_activity_at and flips a resolved thread
// back to open, clearing the closer fields.
func (r *threadsRepo) TouchThreadActivity(ctx context.Context, threadID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE threads
		SET last_activity_at = ?, status = ?, closed_by = NULL,
			closed_at = NULL, updated_at = ?
		WHERE id = ?`,
		at.UTC(), string(domain.ThreadOpen), time.Now().UTC(), threadID,
	)
	if err != nil {
		return err
	}
	return requireRowChange(res)
}

func (r *threadsRepo) ListMessages(ctx context.Context, threadID string) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, thread_id, author_id, body, created_at
		FROM messages WHERE thread_id = ?
		ORDER BY id`, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanThread(row rowScanner) (domain.Thread, error) {
	var t domain.Thread
	var status string
	var closedBy sql.NullString
	var closedAt sql.NullTime

	err := row.Scan(
		&t.ID, &t.OrgID, &t.Title, &status, &closedBy, &closedAt,
		&t.LastActivityAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Thread{}, mapNotFound(err)
	}

	t.Status = domain.ThreadStatus(status)
	t.ClosedBy = mapNullString(closedBy)
	t.ClosedAt = mapNullTimePtr(closedAt)
	return t, nil
}
