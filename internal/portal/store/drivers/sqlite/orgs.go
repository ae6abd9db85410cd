package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
)

type orgsRepo struct {
	db DBTX
}

func (r *orgsRepo) CreateOrg(ctx context.Context, o domain.Org) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orgs (id, name, kind, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, string(o.Kind), mapStringNull(o.ParentID), now, now,
	)
	return mapConstraint(err)
}

func (r *orgsRepo) GetOrgByID(ctx context.Context, id string) (domain.Org, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, kind, parent_id, created_at, updated_at
		FROM orgs WHERE id = ?`, id)
	return scanOrg(row)
}

func (r *orgsRepo) ListClients(ctx context.Context, firmID string) ([]domain.Org, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, kind, parent_id, created_at, updated_at
		FROM orgs WHERE parent_id = ?
		ORDER BY id DESC`, firmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Org
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrg(row rowScanner) (domain.Org, error) {
	var o domain.Org
	var kind string
	var parentID sql.NullString

	err := row.Scan(&o.ID, &o.Name, &kind, &parentID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Org{}, mapNotFound(err)
	}

	o.Kind = domain.OrgKind(kind)
	o.ParentID = mapNullString(parentID)
	return o, nil
}
