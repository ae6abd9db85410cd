package sqlite

import (
	"context"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
)

type membershipsRepo struct {
	db DBTX
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO memberships (id, user_id, org_id, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.OrgID, string(m.Role), now, now,
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembership(ctx context.Context, userID, orgID string) (domain.Membership, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, org_id, role, created_at, updated_at
		FROM memberships WHERE user_id = ? AND org_id = ?`, userID, orgID)

	var m domain.Membership
	var role string
	err := row.Scan(&m.ID, &m.UserID, &m.OrgID, &role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	m.Role = domain.Role(role)
	return m, nil
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, userID, orgID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM memberships WHERE user_id = ? AND org_id = ?`, userID, orgID)
	return err
}

func (r *membershipsRepo) ListOrgMembers(ctx context.Context, orgID string, role domain.Role) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+prefixedUserColumns+`
		FROM users u
		JOIN memberships m ON m.user_id = u.id
		WHERE m.org_id = ? AND m.role = ?
		ORDER BY m.id`, orgID, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) ListUserMemberships(ctx context.Context, userID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, org_id, role, created_at, updated_at
		FROM memberships WHERE user_id = ?
		ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var role string
		if err := rows.Scan(&m.ID, &m.UserID, &m.OrgID, &role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

const prefixedUserColumns = `u.id, u.email, u.display_name, u.password_hash,
	u.confirmed_at, u.confirm_token_hash, u.confirm_token_sent_at,
	u.reset_token_hash, u.reset_token_sent_at, u.created_at, u.updated_at`
